package analyzenotice

import (
	"context"
	"fmt"
	"time"

	"cna-backend/internal/catalog"
	"cna-backend/internal/common/logger"
	"cna-backend/internal/common/metrics"
	"cna-backend/internal/models"
)

const TaskType = "analyze-notice"

type Handler struct {
	catalog *catalog.Catalog
	logger  logger.Logger
}

func NewHandler(cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute classifies a notice by exact (law, notice type, section) match.
// An unsupported combination is reported through Output, not as an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	law := catalog.NormalizeCode(input.Law)
	noticeType := catalog.NormalizeCode(input.NoticeType)
	section := catalog.NormalizeSection(input.Section.String())

	meta, ok := h.catalog.Variant(law, noticeType, section)
	if !ok {
		metrics.StageExecutions.WithLabelValues(TaskType, "not_found").Inc()
		h.logger.Info("notice combination not supported", map[string]interface{}{
			"law":        law,
			"noticeType": noticeType,
			"section":    section,
		})
		return &Output{
			Matched: false,
			Message: fmt.Sprintf("No template found for law=%s, notice_type=%s, section=%s", law, noticeType, section),
		}, nil
	}

	metrics.StageExecutions.WithLabelValues(TaskType, "matched").Inc()
	h.logger.Info("notice classified", map[string]interface{}{
		"templateId":    meta.TemplateID,
		"riskLevel":     meta.RiskLevel,
		"fraudCategory": meta.FraudCategory,
	})
	return &Output{Matched: true, Result: buildResult(meta)}, nil
}

func buildResult(meta models.TemplateMetadataRecord) *models.AnalysisResult {
	next := NextActionManualReview
	if meta.Supports("reply") {
		next = NextActionDraftReply
	}
	return &models.AnalysisResult{
		Law:               meta.Law,
		NoticeType:        meta.NoticeType,
		Section:           meta.Section,
		RiskLevel:         meta.RiskLevel,
		FraudCategory:     meta.FraudCategory,
		MandatoryFields:   meta.MandatoryFields,
		SuggestedTemplate: meta.TemplateID,
		NextAction:        next,
		SupportedActions:  meta.SupportedActions,
		DraftStyles:       meta.DraftStyles,
	}
}
