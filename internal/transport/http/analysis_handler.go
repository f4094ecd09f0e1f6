package http

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"portcli/internal/analysis"
	apierrors "portcli/internal/errors"
	"portcli/internal/schedule"
	"portcli/internal/services"
	"portcli/internal/validation"
)

// AnalysisHandler handles schedule analysis HTTP requests
type AnalysisHandler struct {
	service   AnalysisServiceInterface
	logger    *slog.Logger
	validate  *validator.Validate
	maxUpload int64
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger, maxUpload int64) *AnalysisHandler {
	return &AnalysisHandler{
		service:   service,
		logger:    logger.With(slog.String("component", "analysis_handler")),
		validate:  validator.New(),
		maxUpload: maxUpload,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/analysis", h.CreateAnalysis)
	r.Post("/lookahead", h.CreateLookahead)

	return r
}

// analysisRequest carries the window selection accompanying an upload.
type analysisRequest struct {
	Start string `validate:"required"`
	End   string `validate:"required"`
}

// lookaheadRequest carries the scan parameters accompanying an upload.
type lookaheadRequest struct {
	LookaheadHours float64 `validate:"required,gt=0"`
	IntervalHours  float64 `validate:"required,gt=0"`
}

// CreateAnalysis handles POST /api/analysis: a multipart workbook upload
// plus start/end form dates, answered with the full report.
func (h *AnalysisHandler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	req := analysisRequest{
		Start: r.FormValue("start"),
		End:   r.FormValue("end"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.renderError(w, r, apierrors.ErrValidation("start/end", "Both start and end dates are required"))
		return
	}

	window, err := parseWindow(req.Start, req.End)
	if err != nil {
		h.renderError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	h.logger.InfoContext(ctx, "running analysis",
		slog.Time("window_start", window.Start),
		slog.Time("window_end", window.End))

	report, err := h.service.AnalyzeReader(ctx, file, window)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	recordAnalysis(report)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// CreateLookahead handles POST /api/lookahead: a multipart workbook upload
// plus lookahead/interval hours, answered with the occupancy scan.
func (h *AnalysisHandler) CreateLookahead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	req := lookaheadRequest{}
	var err error
	if req.LookaheadHours, err = parseHours(r.FormValue("lookahead_hours"), 24); err != nil {
		h.renderError(w, r, apierrors.ErrValidation("lookahead_hours", err.Error()))
		return
	}
	if req.IntervalHours, err = parseHours(r.FormValue("interval_hours"), 6); err != nil {
		h.renderError(w, r, apierrors.ErrValidation("interval_hours", err.Error()))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.renderError(w, r, apierrors.ErrValidation("lookahead_hours/interval_hours", "Scan parameters must be positive"))
		return
	}

	params := analysis.LookaheadParams{
		Lookahead: time.Duration(req.LookaheadHours * float64(time.Hour)),
		Interval:  time.Duration(req.IntervalHours * float64(time.Hour)),
	}

	h.logger.InfoContext(ctx, "running lookahead scan",
		slog.Duration("lookahead", params.Lookahead),
		slog.Duration("interval", params.Interval))

	report, err := h.service.ScanReader(ctx, file, params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	recordScan(report)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// openUpload extracts the uploaded workbook from the multipart form,
// rendering the error response itself when the upload is unusable.
func (h *AnalysisHandler) openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.renderError(w, r, apierrors.InvalidRequestWithError(fmt.Errorf("parse multipart form: %w", err)))
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderError(w, r, apierrors.ErrValidation("file", "An Excel workbook upload is required"))
		return nil, false
	}
	if err := validation.CheckWorkbookName(header.Filename); err != nil {
		file.Close()
		h.renderError(w, r, apierrors.ErrValidation("file", err.Error()))
		return nil, false
	}
	return file, true
}

// handleServiceError maps service and ingestion errors onto API errors.
func (h *AnalysisHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "analysis failed",
		slog.String("error", err.Error()))

	var missErr *schedule.MissingColumnsError
	switch {
	case errors.As(err, &missErr):
		h.renderError(w, r, apierrors.ErrMissingColumns(missErr.Missing, missErr.Headers))
	case errors.Is(err, services.ErrNoUsableData):
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusUnprocessableEntity,
			"NO_USABLE_DATA", "Could not process valid data. Please check your file format.", err.Error()))
	case errors.Is(err, services.ErrInvalidWindow):
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusBadRequest,
			"INVALID_WINDOW", "End date must be after start date", err.Error()))
	case errors.Is(err, services.ErrInvalidScanParams):
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusBadRequest,
			"INVALID_SCAN_PARAMS", "Lookahead and interval must be positive", err.Error()))
	default:
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusUnprocessableEntity,
			"UNREADABLE_WORKBOOK", "Could not read the uploaded workbook", err.Error()))
	}
}

func (h *AnalysisHandler) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	render.Status(r, apiErr.StatusCode)
	render.JSON(w, r, apierrors.NewErrorResponse(apiErr))
}

// parseWindow turns the two request dates into an analysis window. Date-only
// values expand to start-of-day for the start bound and end-of-day for the
// end bound, matching how a date-range picker is read.
func parseWindow(start, end string) (analysis.Window, error) {
	startAt, err := parseBound(start, false)
	if err != nil {
		return analysis.Window{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endAt, err := parseBound(end, true)
	if err != nil {
		return analysis.Window{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return analysis.Window{Start: startAt, End: endAt}, nil
}

func parseBound(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC), nil
	}
	return t, nil
}

// parseHours reads an hour count form value, applying the default when the
// field was omitted entirely.
func parseHours(value string, def float64) (float64, error) {
	if value == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %s", value)
	}
	return v, nil
}
