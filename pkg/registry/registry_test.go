package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "version": "1.0.0",
  "lastUpdated": "2026-01-01",
  "templates": [
    {
      "law": "GST",
      "noticeType": "DRC-01",
      "templateCode": "T5",
      "section": "73/74",
      "description": "Reply to GST DRC-01 show cause notice",
      "variants": [
        {
          "templateId": "GST_DRC01_73_REPLY",
          "section": "73",
          "riskLevel": "High",
          "fraudCategory": "Non-Fraud",
          "mandatoryFields": ["financial_year", "taxpayer_name"],
          "supportedActions": ["reply"],
          "draftStyles": ["standard"]
        }
      ]
    }
  ]
}`

const sampleYAML = `
version: 1.0.0
templates:
  - law: UNIVERSAL
    noticeType: COVER_NOTE
    templateCode: T20
    section: NA
    description: Universal cover note
`

func TestLoadRegistry_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, reg.Templates, 1)

	entry := reg.Templates[0]
	assert.Equal(t, "T5", entry.TemplateCode)
	require.Len(t, entry.Variants, 1)
	assert.Equal(t, []string{"financial_year", "taxpayer_name"}, entry.Variants[0].MandatoryFields)
}

func TestLoadRegistry_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, reg.Templates, 1)
	assert.Equal(t, "COVER_NOTE", reg.Templates[0].NoticeType)
	assert.Empty(t, reg.Templates[0].Variants)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"templates": 5}`))
	assert.Error(t, err)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
