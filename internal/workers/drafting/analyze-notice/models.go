// internal/workers/drafting/analyze-notice/models.go
package analyzenotice

import "cna-backend/internal/models"

const (
	NextActionDraftReply   = "Collect mandatory fields and generate reply draft"
	NextActionManualReview = "Manual review required"
)

type Input struct {
	Law        string         `json:"law"`
	NoticeType string         `json:"notice_type"`
	Section    models.Section `json:"section"`
}

// Output carries either a Result (Matched) or the unsupported-combination
// Message.
type Output struct {
	Matched bool                   `json:"matched"`
	Result  *models.AnalysisResult `json:"result,omitempty"`
	Message string                 `json:"message,omitempty"`
}
