// internal/workers/drafting/validate-fields/models.go
package validatefields

import "cna-backend/internal/models"

type Input struct {
	Payload         *models.DraftRequest
	MandatoryFields []string
}

type Output struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missing_fields"`
}
