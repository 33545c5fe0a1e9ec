package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Request schema names, one per POST route.
const (
	SchemaResolveTemplate = "resolve-template"
	SchemaAnalyzeNotice   = "analyze-notice"
	SchemaGSTReply        = "gst-reply"
	SchemaDraft           = "cna-draft"
)

// Schemas check shape and types only. Blank or missing draft fields are left
// to the field validator so they surface as a validation outcome.
var schemaSources = map[string]string{
	SchemaResolveTemplate: `{
		"type": "object",
		"required": ["law", "notice_type"],
		"properties": {
			"law": {"type": "string"},
			"notice_type": {"type": "string"}
		}
	}`,
	SchemaAnalyzeNotice: `{
		"type": "object",
		"required": ["law", "notice_type", "section"],
		"properties": {
			"law": {"type": "string"},
			"notice_type": {"type": "string"},
			"section": {"type": ["string", "number"]}
		}
	}`,
	SchemaGSTReply: `{
		"type": "object",
		"required": ["notice_type", "section", "financial_year", "taxpayer_name", "issue_summary"],
		"properties": {
			"notice_type": {"type": "string"},
			"section": {"type": ["string", "number"]},
			"financial_year": {"type": "string"},
			"taxpayer_name": {"type": "string"},
			"gstin": {"type": ["string", "null"]},
			"issue_summary": {"type": "string"}
		}
	}`,
	SchemaDraft: `{
		"type": "object",
		"required": ["law", "notice_type", "section"],
		"properties": {
			"law": {"type": "string"},
			"notice_type": {"type": "string"},
			"section": {"type": ["string", "number"]},
			"financial_year": {"type": ["string", "null"]},
			"taxpayer_name": {"type": ["string", "null"]},
			"gstin": {"type": ["string", "null"]},
			"issue_summary": {"type": ["string", "null"]},
			"supporting_documents": {
				"type": ["array", "null"],
				"items": {"type": "string"}
			},
			"drafting_mode": {"type": ["string", "null"]}
		}
	}`,
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins the errors into one line in reported order.
func (r *ValidationResult) Summary() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

func schemas() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*gojsonschema.Schema, len(schemaSources))
		for name, src := range schemaSources {
			s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
	})
	return compiled, compileErr
}

// ValidateRequest checks body against the named schema. A non-nil error means
// the schema itself is unusable or body is not JSON.
func ValidateRequest(name string, body []byte) (*ValidationResult, error) {
	all, err := schemas()
	if err != nil {
		return nil, err
	}
	schema, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("unknown request schema: %s", name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("malformed JSON body: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}
