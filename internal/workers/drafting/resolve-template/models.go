// internal/workers/drafting/resolve-template/models.go
package resolvetemplate

import "cna-backend/internal/models"

type Input struct {
	Law        string `json:"law"`
	NoticeType string `json:"notice_type"`
}

// Output reports a no-match with Matched=false and a nil Template.
type Output struct {
	Matched  bool                   `json:"matched"`
	Template *models.TemplateRecord `json:"template_selected,omitempty"`
}
