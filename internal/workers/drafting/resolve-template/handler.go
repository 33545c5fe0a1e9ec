package resolvetemplate

import (
	"context"
	"time"

	"cna-backend/internal/catalog"
	"cna-backend/internal/common/logger"
	"cna-backend/internal/common/metrics"
)

const TaskType = "resolve-template"

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

// Execute looks up the coarse template for (law, notice type). Inputs are
// case-insensitive.
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

	record, ok := h.catalog.Template(law, noticeType)
	if !ok {
		metrics.StageExecutions.WithLabelValues(TaskType, "not_found").Inc()
		h.logger.Debug("no template for notice", map[string]interface{}{
			"law":        law,
			"noticeType": noticeType,
		})
		return &Output{Matched: false}, nil
	}

	metrics.StageExecutions.WithLabelValues(TaskType, "matched").Inc()
	h.logger.Debug("template resolved", map[string]interface{}{
		"law":          law,
		"noticeType":   noticeType,
		"templateCode": record.TemplateCode,
	})
	return &Output{Matched: true, Template: &record}, nil
}
