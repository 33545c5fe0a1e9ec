package draftreply

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"cna-backend/internal/common/logger"
	"cna-backend/internal/common/metrics"
	"cna-backend/internal/models"
	analyzenotice "cna-backend/internal/workers/drafting/analyze-notice"
	renderdraft "cna-backend/internal/workers/drafting/render-draft"
	validatefields "cna-backend/internal/workers/drafting/validate-fields"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	TaskType       = "draft-reply"
	cacheKeyPrefix = "cna:draft:"
)

type Handler struct {
	config    *Config
	analyzer  *analyzenotice.Handler
	validator *validatefields.Handler
	renderer  *renderdraft.Handler
	cache     DraftCache
	recorder  Recorder
	tracer    trace.Tracer
	logger    logger.Logger
}

// Option customizes a Handler.
type Option func(*Handler)

// WithCache enables the rendered-draft cache. A nil cache is ignored.
func WithCache(c DraftCache) Option {
	return func(h *Handler) { h.cache = c }
}

func WithRecorder(r Recorder) Option {
	return func(h *Handler) { h.recorder = r }
}

func NewHandler(
	cfg *Config,
	analyzer *analyzenotice.Handler,
	validator *validatefields.Handler,
	renderer *renderdraft.Handler,
	log logger.Logger,
	opts ...Option,
) *Handler {
	h := &Handler{
		config:    cfg,
		analyzer:  analyzer,
		validator: validator,
		renderer:  renderer,
		tracer:    otel.Tracer("cna-backend/draft-reply"),
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute runs classify, validate and render, stopping at the first stage
// that does not succeed. Business outcomes are reported in Output; the error
// is non-nil only when ctx is done.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	ctx, span := h.tracer.Start(ctx, "draft.reply", trace.WithAttributes(
		attribute.String("cna.law", input.Law),
	))
	defer span.End()

	output, err := h.execute(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	outcome := string(output.Outcome)
	span.SetAttributes(attribute.String("cna.outcome", outcome))
	metrics.StageExecutions.WithLabelValues(TaskType, outcome).Inc()
	metrics.StageDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	if h.recorder != nil {
		h.recorder.RecordDraftProcessed(ctx, outcome)
		h.recorder.RecordDraftDuration(ctx, time.Since(start), outcome)
	}
	return output, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	req := &input.DraftRequest

	analyzed, err := h.classify(ctx, input)
	if err != nil {
		return nil, err
	}
	if !analyzed.Matched {
		return &Output{Outcome: OutcomeNotFound, Message: analyzed.Message}, nil
	}
	analysis := analyzed.Result

	validated, err := h.validate(ctx, req, analysis.MandatoryFields)
	if err != nil {
		return nil, err
	}
	if !validated.Valid {
		h.logger.Info("draft request incomplete", map[string]interface{}{
			"templateId":    analysis.SuggestedTemplate,
			"missingFields": validated.MissingFields,
		})
		return &Output{
			Outcome:       OutcomeValidationFailed,
			Message:       "Please provide the following fields: " + strings.Join(validated.MissingFields, ", "),
			MissingFields: validated.MissingFields,
			Analysis:      analysis,
		}, nil
	}

	mode := h.resolveMode(req)
	text, cached, err := h.render(ctx, analysis, req.Fields(), mode)
	if errors.Is(err, renderdraft.ErrUnsupportedLaw) {
		return &Output{
			Outcome:  OutcomeUnsupportedLaw,
			Message:  MessageUnsupportedLaw,
			Analysis: analysis,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	metrics.DraftsGenerated.WithLabelValues(analysis.Law, string(mode)).Inc()
	h.logger.Info("draft generated", map[string]interface{}{
		"templateId": analysis.SuggestedTemplate,
		"mode":       string(mode),
		"cached":     cached,
	})
	return &Output{
		Outcome:      OutcomeGenerated,
		DraftText:    text,
		TemplateUsed: analysis.SuggestedTemplate,
		DraftingMode: mode,
		Analysis:     analysis,
		Cached:       cached,
	}, nil
}

func (h *Handler) classify(ctx context.Context, input *Input) (*analyzenotice.Output, error) {
	ctx, span := h.tracer.Start(ctx, "draft.classify")
	defer span.End()

	return h.analyzer.Execute(ctx, &analyzenotice.Input{
		Law:        input.Law,
		NoticeType: input.NoticeType.Value(),
		Section:    input.Section.Value(),
	})
}

func (h *Handler) validate(ctx context.Context, req *models.DraftRequest, mandatory []string) (*validatefields.Output, error) {
	ctx, span := h.tracer.Start(ctx, "draft.validate")
	defer span.End()

	out, err := h.validator.Execute(ctx, &validatefields.Input{Payload: req, MandatoryFields: mandatory})
	if err == nil {
		span.SetAttributes(attribute.Int("cna.missing_fields", len(out.MissingFields)))
	}
	return out, err
}

func (h *Handler) render(ctx context.Context, analysis *models.AnalysisResult, fields models.DraftFields, mode models.DraftingMode) (string, bool, error) {
	ctx, span := h.tracer.Start(ctx, "draft.render", trace.WithAttributes(
		attribute.String("cna.template_id", analysis.SuggestedTemplate),
		attribute.String("cna.drafting_mode", string(mode)),
	))
	defer span.End()

	if _, ok := renderdraft.SkeletonFor(analysis.Law); !ok {
		return "", false, fmt.Errorf("%w: %s", renderdraft.ErrUnsupportedLaw, analysis.Law)
	}

	key := cacheKey(analysis.SuggestedTemplate, fields, mode)
	if text, ok := h.cacheGet(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cna.cache_hit", true))
		return text, true, nil
	}

	out, err := h.renderer.Execute(ctx, &renderdraft.Input{
		Law:    analysis.Law,
		Fields: fields,
		Mode:   mode,
	})
	if err != nil {
		return "", false, err
	}
	h.cacheSet(ctx, key, out.DraftText)
	return out.DraftText, false, nil
}

// resolveMode applies the request mode when recognized, normal when the
// request names an unknown mode, and the configured default when absent.
func (h *Handler) resolveMode(req *models.DraftRequest) models.DraftingMode {
	raw, ok := req.DraftingMode.Get()
	if !ok || strings.TrimSpace(raw) == "" {
		if h.config != nil && h.config.DefaultMode != "" {
			return h.config.DefaultMode
		}
		return models.DraftingModeNormal
	}
	mode, _ := models.ParseDraftingMode(raw)
	return mode
}

func (h *Handler) cacheGet(ctx context.Context, key string) (string, bool) {
	if h.cache == nil {
		return "", false
	}
	text, found, err := h.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.DraftCacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("draft cache read failed", map[string]interface{}{"error": err})
		return "", false
	case !found:
		metrics.DraftCacheLookups.WithLabelValues("miss").Inc()
		return "", false
	default:
		metrics.DraftCacheLookups.WithLabelValues("hit").Inc()
		return text, true
	}
}

func (h *Handler) cacheSet(ctx context.Context, key, text string) {
	if h.cache == nil {
		return
	}
	var ttl time.Duration
	if h.config != nil {
		ttl = h.config.CacheTTL
	}
	if err := h.cache.Set(ctx, key, text, ttl); err != nil {
		h.logger.Warn("draft cache write failed", map[string]interface{}{"error": err})
	}
}

func cacheKey(templateID string, f models.DraftFields, mode models.DraftingMode) string {
	sum := sha256.New()
	for _, part := range []string{
		templateID, string(mode), f.NoticeType, f.Section, f.FinancialYear,
		f.TaxpayerName, f.GSTIN, f.IssueSummary, strings.Join(f.SupportingDocuments, "\x1f"),
	} {
		sum.Write([]byte(part))
		sum.Write([]byte{0})
	}
	return cacheKeyPrefix + hex.EncodeToString(sum.Sum(nil))
}
