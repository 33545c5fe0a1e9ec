// pkg/registry/schema.go
package registry

// TemplateRegistry is the on-disk format of the reply template catalog.
type TemplateRegistry struct {
	Version     string          `json:"version" yaml:"version"`
	LastUpdated string          `json:"lastUpdated" yaml:"lastUpdated"`
	Templates   []TemplateEntry `json:"templates" yaml:"templates"`
}

// TemplateEntry is one (law, notice type) template and its section variants.
type TemplateEntry struct {
	Law          string            `json:"law" yaml:"law"`
	NoticeType   string            `json:"noticeType" yaml:"noticeType"`
	TemplateCode string            `json:"templateCode" yaml:"templateCode"`
	Section      string            `json:"section" yaml:"section"`
	Description  string            `json:"description" yaml:"description"`
	Variants     []TemplateVariant `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// TemplateVariant is the section specific metadata of a template.
type TemplateVariant struct {
	TemplateID       string   `json:"templateId" yaml:"templateId"`
	Section          string   `json:"section" yaml:"section"`
	RiskLevel        string   `json:"riskLevel" yaml:"riskLevel"`
	FraudCategory    string   `json:"fraudCategory" yaml:"fraudCategory"`
	MandatoryFields  []string `json:"mandatoryFields" yaml:"mandatoryFields"`
	SupportedActions []string `json:"supportedActions" yaml:"supportedActions"`
	DraftStyles      []string `json:"draftStyles" yaml:"draftStyles"`
}
