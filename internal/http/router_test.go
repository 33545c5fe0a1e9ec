package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cna-backend/internal/catalog"
	apperrors "cna-backend/internal/common/errors"
	"cna-backend/internal/common/logger"
	httpH "cna-backend/internal/http/handlers"
	"cna-backend/internal/models"
	"cna-backend/internal/workers/drafting"
	draftreply "cna-backend/internal/workers/drafting/draft-reply"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, explicit bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewTestLogger(t)
	cat := catalog.MustDefault()
	p := drafting.NewPipeline(cat, &draftreply.Config{DefaultMode: models.DraftingModeNormal}, log)

	return NewRouter(RouterConfig{
		ServiceName:   "cna-test",
		Logger:        log,
		HealthHandler: httpH.NewHealthHandler("test", nil),
		DraftingHandler: httpH.NewDraftingHandler(httpH.DraftingDeps{
			Resolver:            p.Resolver,
			Analyzer:            p.Analyzer,
			Renderer:            p.Renderer,
			Orchestrator:        p.Orchestrator,
			ErrHandler:          apperrors.NewErrorHandler(log),
			ExplicitStatusCodes: explicit,
		}),
		TemplatesHandler: httpH.NewTemplatesHandler(cat),
	})
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]any
	if bytes.HasPrefix(rec.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestRouter_HealthEndpoints(t *testing.T) {
	r := newTestRouter(t, false)

	rec, body := do(t, r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CNA service is running", body["message"])

	rec, body = do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "CNA – Draft Engine", body["module"])
	assert.Equal(t, "test", body["version"])

	rec, body = do(t, r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])
}

func TestRouter_RequestID(t *testing.T) {
	r := newTestRouter(t, false)

	rec, _ := do(t, r, http.MethodGet, "/health", "")
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRouter_ResolveTemplate(t *testing.T) {
	r := newTestRouter(t, false)

	rec, body := do(t, r, http.MethodPost, "/resolve-template", `{"law":"gst","notice_type":"DRC-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	selected, ok := body["template_selected"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	assert.Equal(t, "T5", selected["template_code"])
	assert.Equal(t, "73/74", selected["section"])

	rec, body = do(t, r, http.MethodPost, "/resolve-template", `{"law":"VAT","notice_type":"DRC-01"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Template not found for given law and notice type", body["error"])
}

func TestRouter_AnalyzeNotice(t *testing.T) {
	r := newTestRouter(t, false)

	rec, body := do(t, r, http.MethodPost, "/analyze-notice", `{"law":"GST","notice_type":"DRC-01","section":73}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "High", body["risk_level"])
	assert.Equal(t, "GST_DRC01_73_REPLY", body["suggested_template"])
	assert.Equal(t, "Collect mandatory fields and generate reply draft", body["next_action"])

	rec, body = do(t, r, http.MethodPost, "/analyze-notice", `{"law":"GST","notice_type":"DRC-01","section":"99"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No template found for law=GST, notice_type=DRC-01, section=99", body["error"])
}

func TestRouter_GSTReply(t *testing.T) {
	r := newTestRouter(t, false)

	rec, body := do(t, r, http.MethodPost, "/draft/gst-reply", `{
		"notice_type":"DRC-01","section":"73","financial_year":"2019-20",
		"taxpayer_name":"ABC Traders","gstin":"27ABCDE1234F1Z5","issue_summary":"ITC mismatch"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Draft Generated", body["status"])
	assert.Contains(t, body["draft_text"], "professional and balanced")
	assert.NotContains(t, body, "template_used")
}

func TestRouter_GSTReply_WithoutGSTIN(t *testing.T) {
	r := newTestRouter(t, false)

	rec, body := do(t, r, http.MethodPost, "/draft/gst-reply", `{
		"notice_type":"DRC-01","section":"73","financial_year":"2019-20",
		"taxpayer_name":"ABC Traders","issue_summary":"ITC mismatch"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body["draft_text"], "ABC Traders.")
	assert.NotContains(t, body["draft_text"], "GSTIN")
}

func TestRouter_Draft(t *testing.T) {
	r := newTestRouter(t, false)

	rec, body := do(t, r, http.MethodPost, "/cna/draft", `{
		"law":"GST","notice_type":"DRC-01","section":"73","financial_year":"2019-20",
		"taxpayer_name":"ABC Traders","gstin":"27ABCDE1234F1Z5","issue_summary":"ITC mismatch",
		"drafting_mode":"concise"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Draft Generated", body["status"])
	assert.Equal(t, "concise", body["drafting_mode"])
	assert.Equal(t, "GST_DRC01_73_REPLY", body["template_used"])
	assert.Contains(t, body["draft_text"], "brief and precise")

	rec, body = do(t, r, http.MethodPost, "/cna/draft", `{
		"law":"GST","notice_type":"DRC-01","section":74,"financial_year":"2019-20",
		"taxpayer_name":"ABC Traders","gstin":"","issue_summary":"Fake invoices"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Validation Failed", body["status"])
	assert.Equal(t, []any{"gstin", "supporting_documents"}, body["missing_fields"])
	assert.Equal(t, "Please provide the following fields: gstin, supporting_documents", body["message"])

	rec, body = do(t, r, http.MethodPost, "/cna/draft", `{
		"law":"INCOME_TAX","notice_type":"143(2)","section":"143(2)","financial_year":"2021-22",
		"taxpayer_name":"XYZ","issue_summary":"Deductions"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"error": "Drafting not supported for this law yet"}, body)
}

func TestRouter_ExplicitStatusCodes(t *testing.T) {
	r := newTestRouter(t, true)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"template not found", "/resolve-template", `{"law":"VAT","notice_type":"X"}`, http.StatusNotFound},
		{"notice not supported", "/analyze-notice", `{"law":"GST","notice_type":"DRC-01","section":"1"}`, http.StatusNotFound},
		{"validation failed", "/cna/draft", `{"law":"GST","notice_type":"DRC-01","section":"73"}`, http.StatusUnprocessableEntity},
		{"unsupported law", "/cna/draft", `{"law":"INCOME_TAX","notice_type":"143(2)","section":"143(2)","financial_year":"2021-22","taxpayer_name":"XYZ","issue_summary":"D"}`, http.StatusNotImplemented},
		{"success stays 200", "/resolve-template", `{"law":"GST","notice_type":"DRC-01"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_RejectsInvalidBodies(t *testing.T) {
	r := newTestRouter(t, false)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/cna/draft", `{"law":`},
		{"missing law", "/resolve-template", `{"notice_type":"DRC-01"}`},
		{"boolean section", "/analyze-notice", `{"law":"GST","notice_type":"DRC-01","section":false}`},
		{"documents not a list", "/cna/draft", `{"law":"GST","notice_type":"DRC-01","section":"74","supporting_documents":"a.pdf"}`},
		{"gst reply missing fields", "/draft/gst-reply", `{"notice_type":"DRC-01"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, body["error"], "invalid request: ")
		})
	}
}

func TestRouter_Templates(t *testing.T) {
	r := newTestRouter(t, false)

	rec, body := do(t, r, http.MethodGet, "/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, catalog.MustDefault().Version(), body["version"])
	templates, ok := body["templates"].([]any)
	require.True(t, ok)
	assert.Len(t, templates, len(catalog.MustDefault().Entries()))
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter(t, false)
	do(t, r, http.MethodGet, "/health", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cna_http_requests_total")
}

func TestRouter_CORS(t *testing.T) {
	r := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/cna/draft", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
