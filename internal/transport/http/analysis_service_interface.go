package http

import (
	"context"
	"io"

	"portcli/internal/analysis"
	"portcli/internal/services"
)

// AnalysisServiceInterface defines the service surface the handlers depend
// on, kept narrow so tests can substitute a fake.
type AnalysisServiceInterface interface {
	AnalyzeReader(ctx context.Context, r io.Reader, w analysis.Window) (*services.Report, error)
	ScanReader(ctx context.Context, r io.Reader, params analysis.LookaheadParams) (*services.ScanReport, error)
}
