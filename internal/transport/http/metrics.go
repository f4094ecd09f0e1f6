package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portcli/internal/services"
)

var (
	analysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portcli_analyses_total",
		Help: "Number of window analyses completed.",
	})
	scansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portcli_lookahead_scans_total",
		Help: "Number of lookahead occupancy scans completed.",
	})
	rowsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portcli_rows_parsed_total",
		Help: "Schedule rows successfully parsed into vessel calls.",
	})
	rowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portcli_rows_skipped_total",
		Help: "Schedule rows dropped for unparseable timestamps.",
	})
)

// MetricsHandler exposes the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func recordAnalysis(report *services.Report) {
	analysesTotal.Inc()
	rowsParsed.Add(float64(report.ValidRows))
	rowsSkipped.Add(float64(report.Skipped))
}

func recordScan(report *services.ScanReport) {
	scansTotal.Inc()
	rowsParsed.Add(float64(report.ValidRows))
	rowsSkipped.Add(float64(report.Skipped))
}
