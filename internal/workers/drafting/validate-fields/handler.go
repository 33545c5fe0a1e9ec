package validatefields

import (
	"context"
	"time"

	"cna-backend/internal/common/logger"
	"cna-backend/internal/common/metrics"
	"cna-backend/internal/models"
)

const TaskType = "validate-fields"

type Handler struct {
	logger logger.Logger
}

func NewHandler(log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	missing := MissingFields(input.Payload, input.MandatoryFields)
	valid := len(missing) == 0

	outcome := "valid"
	if !valid {
		outcome = "missing_fields"
	}
	metrics.StageExecutions.WithLabelValues(TaskType, outcome).Inc()
	h.logger.Info("validation completed", map[string]interface{}{
		"isValid":      valid,
		"missingCount": len(missing),
	})

	return &Output{Valid: valid, MissingFields: missing}, nil
}

// MissingFields returns the mandatory fields that are absent, null or blank in
// payload, in the order they were listed. The result is never nil.
func MissingFields(payload *models.DraftRequest, mandatory []string) []string {
	missing := make([]string, 0)
	for _, field := range mandatory {
		if !payload.HasField(field) {
			missing = append(missing, field)
		}
	}
	return missing
}
