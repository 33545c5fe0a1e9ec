package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Section is a statute section. Clients send it either as a JSON number (73)
// or a string ("73", "143(2)"); both decode to the same string form.
type Section string

func (s *Section) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Section(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("section must be a string or a number: %w", err)
	}
	*s = Section(num.String())
	return nil
}

func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("section must be a scalar, got %v", node.Kind)
	}
	*s = Section(node.Value)
	return nil
}

func (s Section) String() string {
	return string(s)
}

// DraftingMode selects the tone of the rendered letter.
type DraftingMode string

const (
	DraftingModeNormal     DraftingMode = "normal"
	DraftingModeConcise    DraftingMode = "concise"
	DraftingModeAggressive DraftingMode = "aggressive"
)

// ParseDraftingMode normalizes s. Unknown values map to normal with ok=false.
func ParseDraftingMode(s string) (DraftingMode, bool) {
	switch mode := DraftingMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case DraftingModeNormal, DraftingModeConcise, DraftingModeAggressive:
		return mode, true
	default:
		return DraftingModeNormal, false
	}
}

// DraftRequest carries the taxpayer supplied fields of a reply draft.
type DraftRequest struct {
	NoticeType          Optional[string]   `json:"notice_type" yaml:"notice_type"`
	Section             Optional[Section]  `json:"section" yaml:"section"`
	FinancialYear       Optional[string]   `json:"financial_year" yaml:"financial_year"`
	TaxpayerName        Optional[string]   `json:"taxpayer_name" yaml:"taxpayer_name"`
	GSTIN               Optional[string]   `json:"gstin" yaml:"gstin"`
	IssueSummary        Optional[string]   `json:"issue_summary" yaml:"issue_summary"`
	SupportingDocuments Optional[[]string] `json:"supporting_documents" yaml:"supporting_documents"`
	DraftingMode        Optional[string]   `json:"drafting_mode" yaml:"drafting_mode"`
}

func presentString(o Optional[string]) bool {
	v, ok := o.Get()
	return ok && strings.TrimSpace(v) != ""
}

func presentList(o Optional[[]string]) bool {
	docs, ok := o.Get()
	if !ok {
		return false
	}
	for _, d := range docs {
		if strings.TrimSpace(d) != "" {
			return true
		}
	}
	return false
}

// draftFieldAccessors is the closed set of field names a template may list as
// mandatory.
var draftFieldAccessors = map[string]func(*DraftRequest) bool{
	"notice_type":          func(r *DraftRequest) bool { return presentString(r.NoticeType) },
	"section":              func(r *DraftRequest) bool { s, ok := r.Section.Get(); return ok && strings.TrimSpace(string(s)) != "" },
	"financial_year":       func(r *DraftRequest) bool { return presentString(r.FinancialYear) },
	"taxpayer_name":        func(r *DraftRequest) bool { return presentString(r.TaxpayerName) },
	"gstin":                func(r *DraftRequest) bool { return presentString(r.GSTIN) },
	"issue_summary":        func(r *DraftRequest) bool { return presentString(r.IssueSummary) },
	"supporting_documents": func(r *DraftRequest) bool { return presentList(r.SupportingDocuments) },
}

// IsDraftField reports whether name has an accessor on DraftRequest.
func IsDraftField(name string) bool {
	_, ok := draftFieldAccessors[name]
	return ok
}

// DraftFieldNames lists every field name usable as a mandatory field, sorted.
func DraftFieldNames() []string {
	names := make([]string, 0, len(draftFieldAccessors))
	for name := range draftFieldAccessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasField reports whether the named field is present and non-blank. Unknown
// names are never present.
func (r *DraftRequest) HasField(name string) bool {
	if r == nil {
		return false
	}
	accessor, ok := draftFieldAccessors[name]
	if !ok {
		return false
	}
	return accessor(r)
}

// DraftFields is the fully resolved, plain-string view used by renderers.
type DraftFields struct {
	NoticeType          string
	Section             string
	FinancialYear       string
	TaxpayerName        string
	GSTIN               string
	IssueSummary        string
	SupportingDocuments []string
}

// Fields flattens the request; absent values become empty strings.
func (r *DraftRequest) Fields() DraftFields {
	var docs []string
	for _, d := range r.SupportingDocuments.Value() {
		if d = strings.TrimSpace(d); d != "" {
			docs = append(docs, d)
		}
	}
	return DraftFields{
		NoticeType:          strings.TrimSpace(r.NoticeType.Value()),
		Section:             strings.TrimSpace(string(r.Section.Value())),
		FinancialYear:       strings.TrimSpace(r.FinancialYear.Value()),
		TaxpayerName:        strings.TrimSpace(r.TaxpayerName.Value()),
		GSTIN:               strings.TrimSpace(r.GSTIN.Value()),
		IssueSummary:        strings.TrimSpace(r.IssueSummary.Value()),
		SupportingDocuments: docs,
	}
}
