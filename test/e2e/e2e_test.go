// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cna-backend/internal/catalog"
	"cna-backend/internal/common/cache"
	"cna-backend/internal/common/config"
	apperrors "cna-backend/internal/common/errors"
	"cna-backend/internal/common/logger"
	"cna-backend/internal/common/observability"
	cnahttp "cna-backend/internal/http"
	httpH "cna-backend/internal/http/handlers"
	"cna-backend/internal/workers/drafting"
	draftreply "cna-backend/internal/workers/drafting/draft-reply"
)

// TestFullE2E drives the full service against a real Redis. It runs only
// with CNA_E2E=1; the Redis address comes from configs/config.yaml
// (CACHE_ADDRESS overrides it).
func TestFullE2E(t *testing.T) {
	if os.Getenv("CNA_E2E") != "1" {
		t.Skip("set CNA_E2E=1 to run against real services")
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Cache.Enabled = true

	log := logger.NewTestLogger(t)

	redis := cache.NewRedis(cfg.Cache)
	defer redis.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, redis.Ping(ctx), "redis not reachable at %s", cfg.Cache.Address)
	t.Log("Redis connected")

	obs := observability.New(cfg.App.Name, prometheus.NewRegistry(), log)
	defer obs.Shutdown()

	cat := catalog.MustDefault()
	pipeline := drafting.NewPipeline(cat, draftreply.LoadConfig(cfg), log,
		draftreply.WithCache(redis), draftreply.WithRecorder(obs))

	router := cnahttp.NewRouter(cnahttp.RouterConfig{
		ServiceName:   cfg.App.Name,
		Logger:        log,
		HealthHandler: httpH.NewHealthHandler(cfg.App.Version, nil),
		DraftingHandler: httpH.NewDraftingHandler(httpH.DraftingDeps{
			Resolver:     pipeline.Resolver,
			Analyzer:     pipeline.Analyzer,
			Renderer:     pipeline.Renderer,
			Orchestrator: pipeline.Orchestrator,
			ErrHandler:   apperrors.NewErrorHandler(log),
		}),
		TemplatesHandler: httpH.NewTemplatesHandler(cat),
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	t.Run("health", func(t *testing.T) {
		body := get(t, srv.URL+"/health")
		assert.Equal(t, "OK", body["status"])
	})

	t.Run("analyze non-fraud section", func(t *testing.T) {
		body := post(t, srv.URL+"/analyze-notice", `{"law":"GST","notice_type":"DRC-01","section":"73"}`)
		assert.Equal(t, "High", body["risk_level"])
		assert.Equal(t, "Non-Fraud", body["fraud_category"])
	})

	t.Run("analyze fraud section with numeric section", func(t *testing.T) {
		body := post(t, srv.URL+"/analyze-notice", `{"law":"GST","notice_type":"DRC-01","section":74}`)
		assert.Equal(t, "Very High", body["risk_level"])
		assert.Equal(t, "Fraud", body["fraud_category"])
	})

	t.Run("analyze unknown law", func(t *testing.T) {
		body := post(t, srv.URL+"/analyze-notice", `{"law":"INCOME_TAX","notice_type":"DRC-01","section":"73"}`)
		assert.Contains(t, body["error"], "No template found")
	})

	t.Run("draft served twice from cache", func(t *testing.T) {
		req := `{"law":"GST","notice_type":"DRC-01","section":"73","financial_year":"2019-20",
			"taxpayer_name":"E2E Traders","gstin":"27ABCDE1234F1Z5",
			"issue_summary":"e2e run ` + time.Now().Format(time.RFC3339Nano) + `","drafting_mode":"concise"}`
		first := post(t, srv.URL+"/cna/draft", req)
		second := post(t, srv.URL+"/cna/draft", req)
		assert.Equal(t, "Draft Generated", first["status"])
		assert.Equal(t, first["draft_text"], second["draft_text"])
	})

	t.Run("draft with missing fields", func(t *testing.T) {
		body := post(t, srv.URL+"/cna/draft", `{"law":"GST","notice_type":"DRC-01","section":"74",
			"financial_year":"2019-20","taxpayer_name":"E2E Traders","issue_summary":"x"}`)
		assert.Equal(t, "Validation Failed", body["status"])
		assert.Equal(t, []any{"gstin", "supporting_documents"}, body["missing_fields"])
	})

	t.Run("draft for law without skeleton", func(t *testing.T) {
		body := post(t, srv.URL+"/cna/draft", `{"law":"INCOME_TAX","notice_type":"143(2)","section":"143(2)",
			"financial_year":"2021-22","taxpayer_name":"E2E","issue_summary":"x"}`)
		assert.Equal(t, "Drafting not supported for this law yet", body["error"])
	})

	t.Log("Full E2E workflow successful")
}

func get(t *testing.T, url string) map[string]any {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	return decode(t, resp)
}

func post(t *testing.T, url, body string) map[string]any {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
