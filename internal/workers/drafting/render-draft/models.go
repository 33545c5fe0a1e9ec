// internal/workers/drafting/render-draft/models.go
package renderdraft

import (
	"errors"

	"cna-backend/internal/models"
)

var ErrUnsupportedLaw = errors.New("UNSUPPORTED_LAW")

type Input struct {
	Law    string
	Fields models.DraftFields
	Mode   models.DraftingMode
}

type Output struct {
	DraftText string              `json:"draft_text"`
	Mode      models.DraftingMode `json:"drafting_mode"`
}
