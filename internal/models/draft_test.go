package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDraftRequest_DecodeJSON(t *testing.T) {
	raw := `{
		"notice_type": "DRC-01",
		"section": 73,
		"financial_year": "2019-20",
		"taxpayer_name": "ABC Traders",
		"gstin": null,
		"issue_summary": "   ",
		"supporting_documents": ["", "ledger.pdf"]
	}`

	var req DraftRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	section, ok := req.Section.Get()
	assert.True(t, ok)
	assert.Equal(t, Section("73"), section)

	assert.True(t, req.HasField("notice_type"))
	assert.True(t, req.HasField("section"))
	assert.True(t, req.HasField("financial_year"))
	assert.False(t, req.HasField("gstin"), "null counts as missing")
	assert.False(t, req.HasField("issue_summary"), "blank counts as missing")
	assert.True(t, req.HasField("supporting_documents"))
	_, set := req.DraftingMode.Get()
	assert.False(t, set, "absent key stays unset")
	assert.False(t, req.HasField("pan"), "unknown fields are never present")
}

func TestSection_StringAndNumberAgree(t *testing.T) {
	var fromString, fromNumber Section
	require.NoError(t, json.Unmarshal([]byte(`"74"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`74`), &fromNumber))
	assert.Equal(t, fromString, fromNumber)

	var bad Section
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &bad))
}

func TestDraftRequest_DecodeYAML(t *testing.T) {
	raw := `
notice_type: DRC-01
section: 74
financial_year: 2019-20
supporting_documents:
  - invoice.pdf
drafting_mode: aggressive
`
	var req DraftRequest
	require.NoError(t, yaml.Unmarshal([]byte(raw), &req))

	assert.Equal(t, Section("74"), req.Section.Value())
	assert.Equal(t, []string{"invoice.pdf"}, req.SupportingDocuments.Value())
	assert.Equal(t, "aggressive", req.DraftingMode.Value())
	_, set := req.GSTIN.Get()
	assert.False(t, set)
}

func TestSupportingDocuments_AllBlankIsMissing(t *testing.T) {
	req := DraftRequest{SupportingDocuments: Some([]string{" ", ""})}
	assert.False(t, req.HasField("supporting_documents"))

	req.SupportingDocuments = Some([]string{})
	assert.False(t, req.HasField("supporting_documents"))
}

func TestParseDraftingMode(t *testing.T) {
	tests := []struct {
		in   string
		mode DraftingMode
		ok   bool
	}{
		{"normal", DraftingModeNormal, true},
		{" Concise ", DraftingModeConcise, true},
		{"AGGRESSIVE", DraftingModeAggressive, true},
		{"polite", DraftingModeNormal, false},
		{"", DraftingModeNormal, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			mode, ok := ParseDraftingMode(tt.in)
			assert.Equal(t, tt.mode, mode)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestDraftFieldNames(t *testing.T) {
	names := DraftFieldNames()
	assert.Contains(t, names, "gstin")
	assert.Contains(t, names, "supporting_documents")
	assert.True(t, IsDraftField("issue_summary"))
	assert.False(t, IsDraftField("drafting_mode"))
	assert.IsIncreasing(t, names)
}

func TestDraftRequest_Fields(t *testing.T) {
	req := DraftRequest{
		NoticeType:          Some(" DRC-01 "),
		Section:             Some(Section("73")),
		TaxpayerName:        Some("ABC Traders"),
		SupportingDocuments: Some([]string{"a.pdf", " ", "b.pdf"}),
	}
	f := req.Fields()
	assert.Equal(t, "DRC-01", f.NoticeType)
	assert.Equal(t, "73", f.Section)
	assert.Equal(t, "", f.GSTIN)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, f.SupportingDocuments)
}

func TestOptional_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
	}{A: Some("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(out))
}
