// Package http provides the HTTP transport layer: handlers, routing, and
// request/response mapping for the analysis API. Handlers translate service
// errors into structured JSON error responses and never contain analysis
// logic themselves.
package http
