package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portcli/internal/analysis"
	"portcli/internal/schedule"
	"portcli/internal/services"
)

type fakeAnalysisService struct {
	report     *services.Report
	scanReport *services.ScanReport
	err        error

	gotWindow analysis.Window
	gotParams analysis.LookaheadParams
}

func (f *fakeAnalysisService) AnalyzeReader(ctx context.Context, r io.Reader, w analysis.Window) (*services.Report, error) {
	f.gotWindow = w
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeAnalysisService) ScanReader(ctx context.Context, r io.Reader, params analysis.LookaheadParams) (*services.ScanReport, error) {
	f.gotParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.scanReport, nil
}

func newTestHandler(svc AnalysisServiceInterface) *AnalysisHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAnalysisHandler(svc, logger, 16<<20)
}

// multipartRequest builds an upload request with the given form fields,
// attaching a small dummy workbook unless withFile is false.
func multipartRequest(t *testing.T, target string, fields map[string]string, withFile bool) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if withFile {
		part, err := writer.CreateFormFile("file", "schedule.xlsx")
		require.NoError(t, err)
		_, err = part.Write([]byte("not really a workbook"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		StatusCode int    `json:"status_code"`
		ErrorCode  string `json:"error_code"`
		Message    string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateAnalysis(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAnalysisService{report: &services.Report{ID: "r-1", TotalRows: 3, ValidRows: 3}}
		handler := newTestHandler(svc)

		req := multipartRequest(t, "/analysis", map[string]string{
			"start": "2025-10-13",
			"end":   "2025-10-20",
		}, true)
		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Status string          `json:"status"`
			Data   json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "success", body.Status)
		assert.Contains(t, string(body.Data), `"r-1"`)

		// Date-only bounds expand to day edges.
		assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), svc.gotWindow.Start)
		assert.Equal(t, time.Date(2025, 10, 20, 23, 59, 59, 0, time.UTC), svc.gotWindow.End)
	})

	t.Run("accepts full timestamps", func(t *testing.T) {
		svc := &fakeAnalysisService{report: &services.Report{ID: "r-2"}}
		handler := newTestHandler(svc)

		req := multipartRequest(t, "/analysis", map[string]string{
			"start": "2025-10-13T08:30:00",
			"end":   "2025-10-20T17:45:00",
		}, true)
		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, time.Date(2025, 10, 20, 17, 45, 0, 0, time.UTC), svc.gotWindow.End)
	})

	t.Run("missing file", func(t *testing.T) {
		handler := newTestHandler(&fakeAnalysisService{})

		req := multipartRequest(t, "/analysis", map[string]string{
			"start": "2025-10-13",
			"end":   "2025-10-20",
		}, false)
		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.ErrorCode)
	})

	t.Run("rejects non-excel upload", func(t *testing.T) {
		handler := newTestHandler(&fakeAnalysisService{})

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", "schedule.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte("plain text"))
		require.NoError(t, err)
		require.NoError(t, writer.WriteField("start", "2025-10-13"))
		require.NoError(t, writer.WriteField("end", "2025-10-20"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/analysis", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Error.ErrorCode)
	})

	t.Run("missing dates", func(t *testing.T) {
		handler := newTestHandler(&fakeAnalysisService{})

		req := multipartRequest(t, "/analysis", nil, true)
		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Error.ErrorCode)
	})

	t.Run("unparseable date", func(t *testing.T) {
		handler := newTestHandler(&fakeAnalysisService{})

		req := multipartRequest(t, "/analysis", map[string]string{
			"start": "13/10/2025",
			"end":   "2025-10-20",
		}, true)
		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_REQUEST", decodeError(t, rec).Error.ErrorCode)
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name     string
			err      error
			wantCode int
			wantErr  string
		}{
			{
				name:     "missing columns",
				err:      &schedule.MissingColumnsError{Missing: []string{"Departure day"}, Headers: []string{"SHIP"}},
				wantCode: http.StatusUnprocessableEntity,
				wantErr:  "MISSING_COLUMNS",
			},
			{
				name:     "no usable data",
				err:      services.ErrNoUsableData,
				wantCode: http.StatusUnprocessableEntity,
				wantErr:  "NO_USABLE_DATA",
			},
			{
				name:     "invalid window",
				err:      services.ErrInvalidWindow,
				wantCode: http.StatusBadRequest,
				wantErr:  "INVALID_WINDOW",
			},
			{
				name:     "unreadable workbook",
				err:      io.ErrUnexpectedEOF,
				wantCode: http.StatusUnprocessableEntity,
				wantErr:  "UNREADABLE_WORKBOOK",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				handler := newTestHandler(&fakeAnalysisService{err: tt.err})

				req := multipartRequest(t, "/analysis", map[string]string{
					"start": "2025-10-13",
					"end":   "2025-10-20",
				}, true)
				rec := httptest.NewRecorder()
				handler.Routes().ServeHTTP(rec, req)

				require.Equal(t, tt.wantCode, rec.Code)
				assert.Equal(t, tt.wantErr, decodeError(t, rec).Error.ErrorCode)
			})
		}
	})
}

func TestCreateLookahead(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		svc := &fakeAnalysisService{scanReport: &services.ScanReport{ID: "s-1"}}
		handler := newTestHandler(svc)

		req := multipartRequest(t, "/lookahead", nil, true)
		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 24*time.Hour, svc.gotParams.Lookahead)
		assert.Equal(t, 6*time.Hour, svc.gotParams.Interval)
	})

	t.Run("custom hours", func(t *testing.T) {
		svc := &fakeAnalysisService{scanReport: &services.ScanReport{ID: "s-2"}}
		handler := newTestHandler(svc)

		req := multipartRequest(t, "/lookahead", map[string]string{
			"lookahead_hours": "48",
			"interval_hours":  "12",
		}, true)
		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 48*time.Hour, svc.gotParams.Lookahead)
		assert.Equal(t, 12*time.Hour, svc.gotParams.Interval)
	})

	t.Run("non numeric hours", func(t *testing.T) {
		handler := newTestHandler(&fakeAnalysisService{})

		req := multipartRequest(t, "/lookahead", map[string]string{
			"lookahead_hours": "soon",
		}, true)
		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Error.ErrorCode)
	})

	t.Run("negative hours", func(t *testing.T) {
		handler := newTestHandler(&fakeAnalysisService{})

		req := multipartRequest(t, "/lookahead", map[string]string{
			"lookahead_hours": "-4",
			"interval_hours":  "6",
		}, true)
		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Error.ErrorCode)
	})
}
