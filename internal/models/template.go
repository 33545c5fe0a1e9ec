package models

// TemplateRecord is the coarse template selected by (law, notice type).
type TemplateRecord struct {
	TemplateCode string `json:"template_code" yaml:"template_code"`
	Section      string `json:"section" yaml:"section"`
	Description  string `json:"description" yaml:"description"`
}

// TemplateMetadataRecord is the section level template selected by
// (law, notice type, section).
type TemplateMetadataRecord struct {
	TemplateID       string   `json:"template_id" yaml:"template_id"`
	Law              string   `json:"law" yaml:"law"`
	NoticeType       string   `json:"notice_type" yaml:"notice_type"`
	Section          string   `json:"section" yaml:"section"`
	RiskLevel        string   `json:"risk_level" yaml:"risk_level"`
	FraudCategory    string   `json:"fraud_category" yaml:"fraud_category"`
	MandatoryFields  []string `json:"mandatory_fields" yaml:"mandatory_fields"`
	SupportedActions []string `json:"supported_actions" yaml:"supported_actions"`
	DraftStyles      []string `json:"draft_styles" yaml:"draft_styles"`
}

// Supports reports whether action is listed in SupportedActions.
func (m TemplateMetadataRecord) Supports(action string) bool {
	for _, a := range m.SupportedActions {
		if a == action {
			return true
		}
	}
	return false
}

// AnalysisResult is the classification of a notice.
type AnalysisResult struct {
	Law               string   `json:"law"`
	NoticeType        string   `json:"notice_type"`
	Section           string   `json:"section"`
	RiskLevel         string   `json:"risk_level"`
	FraudCategory     string   `json:"fraud_category"`
	MandatoryFields   []string `json:"mandatory_fields"`
	SuggestedTemplate string   `json:"suggested_template"`
	NextAction        string   `json:"next_action"`
	SupportedActions  []string `json:"supported_actions"`
	DraftStyles       []string `json:"draft_styles"`
}
