package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"portcli/internal/analysis"
	"portcli/internal/schedule"
)

// Report is the full output of one window analysis: the classified subsets
// with their totals, the per-berth occupancy, and the deadweight series.
// It is plain structured data; presentation lives elsewhere.
type Report struct {
	ID          string          `json:"id"`
	Window      analysis.Window `json:"window"`
	GeneratedAt time.Time       `json:"generated_at"`

	// Row accounting from ingestion.
	TotalRows int `json:"total_rows"`
	ValidRows int `json:"valid_rows"`
	Skipped   int `json:"skipped_rows"`

	Sets            analysis.ClassifiedSets  `json:"sets"`
	ArrivingTotals  analysis.SubsetTotals    `json:"arriving_totals"`
	InPortTotals    analysis.SubsetTotals    `json:"in_port_totals"`
	DepartingTotals analysis.SubsetTotals    `json:"departing_totals"`
	TotalOperations int                      `json:"total_operations"`
	Berths          []analysis.BerthSummary  `json:"berths"`
	Deadweight      analysis.DeadweightSeries `json:"deadweight"`
	DeadweightStats analysis.SeriesStats     `json:"deadweight_stats"`
}

// ScanReport is the output of one lookahead occupancy scan.
type ScanReport struct {
	ID          string                     `json:"id"`
	Params      analysis.LookaheadParams   `json:"params"`
	GeneratedAt time.Time                  `json:"generated_at"`
	TotalRows   int                        `json:"total_rows"`
	ValidRows   int                        `json:"valid_rows"`
	Skipped     int                        `json:"skipped_rows"`
	Berths      []string                   `json:"berths"`
	Samples     []analysis.OccupancySample `json:"samples"`
}

// AnalysisService runs the single-pass schedule analysis: ingest workbook,
// classify against the window, aggregate. It holds no state across calls.
type AnalysisService struct {
	logger *slog.Logger
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		logger: logger.With(slog.String("component", "analysis_service")),
	}
}

// AnalyzeFile loads a workbook from disk and analyzes it against the window.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string, w analysis.Window) (*Report, error) {
	sched, err := schedule.LoadFile(ctx, path, s.logger)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, sched, w)
}

// AnalyzeReader analyzes a workbook supplied as a stream (file upload path).
func (s *AnalysisService) AnalyzeReader(ctx context.Context, r io.Reader, w analysis.Window) (*Report, error) {
	sched, err := schedule.LoadReader(ctx, r, s.logger)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, sched, w)
}

// Analyze runs the classification and aggregation over already-parsed calls.
// Exposed so callers that loaded the schedule themselves (the CLI) can reuse
// the same pipeline.
func (s *AnalysisService) Analyze(ctx context.Context, sched *schedule.Schedule, w analysis.Window) (*Report, error) {
	return s.analyze(ctx, sched, w)
}

func (s *AnalysisService) analyze(ctx context.Context, sched *schedule.Schedule, w analysis.Window) (*Report, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	if len(sched.Calls) == 0 {
		return nil, fmt.Errorf("%w: %d rows read, %d skipped", ErrNoUsableData, sched.TotalRows, sched.Skipped)
	}

	sets := analysis.Classify(sched.Calls, w)
	series := analysis.ComputeDeadweightSeries(sched.Calls, w)

	report := &Report{
		ID:          uuid.New().String(),
		Window:      w,
		GeneratedAt: time.Now().UTC(),

		TotalRows: sched.TotalRows,
		ValidRows: len(sched.Calls),
		Skipped:   sched.Skipped,

		Sets:            sets,
		ArrivingTotals:  analysis.Totals(sets.Arriving),
		InPortTotals:    analysis.Totals(sets.InPort),
		DepartingTotals: analysis.Totals(sets.Departing),
		TotalOperations: sets.TotalOperations(),
		Berths:          analysis.BerthOccupancy(sets.InPort),
		Deadweight:      series,
		DeadweightStats: series.Stats(),
	}

	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("report_id", report.ID),
		slog.Time("window_start", w.Start),
		slog.Time("window_end", w.End),
		slog.Int("valid_rows", report.ValidRows),
		slog.Int("skipped_rows", report.Skipped),
		slog.Int("arriving", len(sets.Arriving)),
		slog.Int("in_port", len(sets.InPort)),
		slog.Int("departing", len(sets.Departing)))

	return report, nil
}

// ScanReader runs the lookahead occupancy scan over an uploaded workbook.
func (s *AnalysisService) ScanReader(ctx context.Context, r io.Reader, params analysis.LookaheadParams) (*ScanReport, error) {
	sched, err := schedule.LoadReader(ctx, r, s.logger)
	if err != nil {
		return nil, err
	}
	return s.Scan(ctx, sched, params)
}

// Scan runs the lookahead occupancy scan over already-parsed calls.
func (s *AnalysisService) Scan(ctx context.Context, sched *schedule.Schedule, params analysis.LookaheadParams) (*ScanReport, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScanParams, err)
	}
	if len(sched.Calls) == 0 {
		return nil, fmt.Errorf("%w: %d rows read, %d skipped", ErrNoUsableData, sched.TotalRows, sched.Skipped)
	}

	samples := analysis.LookaheadScan(sched.Calls, params)

	report := &ScanReport{
		ID:          uuid.New().String(),
		Params:      params,
		GeneratedAt: time.Now().UTC(),
		TotalRows:   sched.TotalRows,
		ValidRows:   len(sched.Calls),
		Skipped:     sched.Skipped,
		Berths:      analysis.ScanBerths(samples),
		Samples:     samples,
	}

	s.logger.InfoContext(ctx, "lookahead scan completed",
		slog.String("report_id", report.ID),
		slog.Duration("lookahead", params.Lookahead),
		slog.Duration("interval", params.Interval),
		slog.Int("samples", len(samples)),
		slog.Int("berths", len(report.Berths)))

	return report, nil
}
