// internal/workers/drafting/draft-reply/models.go
package draftreply

import (
	"context"
	"time"

	"cna-backend/internal/models"
)

type Outcome string

const (
	OutcomeGenerated        Outcome = "generated"
	OutcomeNotFound         Outcome = "not_found"
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeUnsupportedLaw   Outcome = "unsupported_law"
)

const (
	StatusDraftGenerated   = "Draft Generated"
	StatusValidationFailed = "Validation Failed"

	MessageUnsupportedLaw = "Drafting not supported for this law yet"
)

// Input is the flat request body: law plus every DraftRequest field.
type Input struct {
	Law                 string `json:"law" yaml:"law"`
	models.DraftRequest `yaml:",inline"`
}

type Output struct {
	Outcome       Outcome                `json:"outcome"`
	Message       string                 `json:"message,omitempty"`
	MissingFields []string               `json:"missing_fields,omitempty"`
	DraftText     string                 `json:"draft_text,omitempty"`
	TemplateUsed  string                 `json:"template_used,omitempty"`
	DraftingMode  models.DraftingMode    `json:"drafting_mode,omitempty"`
	Analysis      *models.AnalysisResult `json:"analysis,omitempty"`
	Cached        bool                   `json:"cached"`
}

// DraftCache stores rendered letters keyed by their inputs.
type DraftCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Recorder receives one event per finished draft request.
type Recorder interface {
	RecordDraftProcessed(ctx context.Context, outcome string)
	RecordDraftDuration(ctx context.Context, d time.Duration, outcome string)
}
