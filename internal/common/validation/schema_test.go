package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemasCompile(t *testing.T) {
	all, err := schemas()
	require.NoError(t, err)
	assert.Len(t, all, len(schemaSources))
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		body   string
		valid  bool
		field  string
	}{
		{"resolve ok", SchemaResolveTemplate, `{"law":"GST","notice_type":"DRC-01"}`, true, ""},
		{"resolve missing law", SchemaResolveTemplate, `{"notice_type":"DRC-01"}`, false, "(root)"},
		{"resolve law wrong type", SchemaResolveTemplate, `{"law":5,"notice_type":"DRC-01"}`, false, "law"},
		{"analyze numeric section", SchemaAnalyzeNotice, `{"law":"GST","notice_type":"DRC-01","section":73}`, true, ""},
		{"analyze boolean section", SchemaAnalyzeNotice, `{"law":"GST","notice_type":"DRC-01","section":true}`, false, "section"},
		{"gst reply without gstin", SchemaGSTReply, `{"notice_type":"DRC-01","section":"73","financial_year":"2019-20","taxpayer_name":"A","issue_summary":"B"}`, true, ""},
		{"gst reply missing summary", SchemaGSTReply, `{"notice_type":"DRC-01","section":"73","financial_year":"2019-20","taxpayer_name":"A"}`, false, "(root)"},
		{"draft with nulls", SchemaDraft, `{"law":"GST","notice_type":"DRC-01","section":74,"gstin":null,"supporting_documents":null}`, true, ""},
		{"draft with empty strings", SchemaDraft, `{"law":"GST","notice_type":"DRC-01","section":"74","gstin":""}`, true, ""},
		{"draft documents not strings", SchemaDraft, `{"law":"GST","notice_type":"DRC-01","section":"74","supporting_documents":[1]}`, false, "supporting_documents.0"},
		{"not an object", SchemaDraft, `[1,2]`, false, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateRequest(tt.schema, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, result.Summary())
			if !tt.valid {
				require.NotEmpty(t, result.Errors)
				assert.Equal(t, tt.field, result.Errors[0].Field)
				assert.NotEmpty(t, result.Summary())
			}
		})
	}
}

func TestValidateRequest_MalformedJSON(t *testing.T) {
	_, err := ValidateRequest(SchemaDraft, []byte(`{"law":`))
	assert.Error(t, err)
}

func TestValidateRequest_UnknownSchema(t *testing.T) {
	_, err := ValidateRequest("nope", []byte(`{}`))
	assert.ErrorContains(t, err, "unknown request schema")
}
