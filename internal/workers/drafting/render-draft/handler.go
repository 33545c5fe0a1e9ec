package renderdraft

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cna-backend/internal/common/logger"
	"cna-backend/internal/common/metrics"
	"cna-backend/internal/models"
)

const TaskType = "render-draft"

var tonePhrases = map[models.DraftingMode]string{
	models.DraftingModeNormal:     "professional and balanced",
	models.DraftingModeConcise:    "brief and precise",
	models.DraftingModeAggressive: "firm and strongly defensive",
}

// TonePhrase falls back to the normal phrase for unrecognized modes.
func TonePhrase(mode models.DraftingMode) string {
	if phrase, ok := tonePhrases[mode]; ok {
		return phrase
	}
	return tonePhrases[models.DraftingModeNormal]
}

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

	skeleton, ok := SkeletonFor(input.Law)
	if !ok {
		metrics.StageExecutions.WithLabelValues(TaskType, "unsupported_law").Inc()
		h.logger.Warn("no letter skeleton for law", map[string]interface{}{"law": input.Law})
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLaw, input.Law)
	}

	mode := input.Mode
	if _, known := tonePhrases[mode]; !known {
		mode = models.DraftingModeNormal
	}
	text := Render(skeleton, input.Fields, mode)

	metrics.StageExecutions.WithLabelValues(TaskType, "rendered").Inc()
	h.logger.Debug("draft rendered", map[string]interface{}{
		"mode":   string(mode),
		"length": len(text),
	})
	return &Output{DraftText: text, Mode: mode}, nil
}

// placeholderKeys is the closed set of slots a skeleton may use.
var placeholderKeys = map[string]bool{
	"notice_type":          true,
	"section":              true,
	"financial_year":       true,
	"taxpayer_name":        true,
	"gstin_clause":         true,
	"issue_summary":        true,
	"supporting_documents": true,
	"tone":                 true,
}

// UnknownPlaceholders lists the {{slots}} in skeleton that Render has no
// value for, in order of appearance.
func UnknownPlaceholders(skeleton string) []string {
	var unknown []string
	rest := skeleton
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			return unknown
		}
		end := strings.Index(rest[start:], "}}")
		if end == -1 {
			return unknown
		}
		if key := rest[start+2 : start+end]; !placeholderKeys[key] {
			unknown = append(unknown, key)
		}
		rest = rest[start+end+2:]
	}
}

// Render fills the {{placeholder}} slots of skeleton with plain string
// substitution. Values are inserted verbatim and never rescanned. The
// result is trimmed.
func Render(skeleton string, fields models.DraftFields, mode models.DraftingMode) string {
	enclosures := "Nil"
	if len(fields.SupportingDocuments) > 0 {
		enclosures = strings.Join(fields.SupportingDocuments, ", ")
	}
	gstinClause := ""
	if fields.GSTIN != "" {
		gstinClause = " (GSTIN: " + fields.GSTIN + ")"
	}
	values := map[string]string{
		"notice_type":          fields.NoticeType,
		"section":              fields.Section,
		"financial_year":       fields.FinancialYear,
		"taxpayer_name":        fields.TaxpayerName,
		"gstin_clause":         gstinClause,
		"issue_summary":        fields.IssueSummary,
		"supporting_documents": enclosures,
		"tone":                 TonePhrase(mode),
	}

	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(skeleton))
}
