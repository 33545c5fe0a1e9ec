// Package catalog holds the canonical, read-only reply template catalog.
//
// Coarse templates (law, notice type) and their section variants (law, notice
// type, section) live in one registry document, so the resolver and the
// analyzer always agree on what exists.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"cna-backend/internal/models"
	"cna-backend/pkg/registry"
)

//go:embed catalog.json
var embeddedRegistry []byte

type templateKey struct {
	law        string
	noticeType string
}

type variantKey struct {
	law        string
	noticeType string
	section    string
}

// Entry is one catalog row as exposed by listings.
type Entry struct {
	Law        string                          `json:"law" yaml:"law"`
	NoticeType string                          `json:"notice_type" yaml:"notice_type"`
	Template   models.TemplateRecord           `json:"template" yaml:"template"`
	Variants   []models.TemplateMetadataRecord `json:"variants" yaml:"variants"`
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	version   string
	templates map[templateKey]models.TemplateRecord
	variants  map[variantKey]models.TemplateMetadataRecord
	entries   []Entry
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded registry. It is parsed
// once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		reg, err := registry.Parse(embeddedRegistry)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = New(reg)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for callers that cannot run without a catalog.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded registry is invalid: %v", err))
	}
	return c
}

// NormalizeCode uppercases and trims a law or notice type.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeSection trims a section; sections keep their case.
func NormalizeSection(s string) string {
	return strings.TrimSpace(s)
}

// New validates reg and builds a catalog from it. Every mandatory field must
// name a DraftRequest field.
func New(reg *registry.TemplateRegistry) (*Catalog, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is nil")
	}

	c := &Catalog{
		version:   reg.Version,
		templates: make(map[templateKey]models.TemplateRecord, len(reg.Templates)),
		variants:  make(map[variantKey]models.TemplateMetadataRecord),
	}

	for i, t := range reg.Templates {
		law := NormalizeCode(t.Law)
		noticeType := NormalizeCode(t.NoticeType)
		if law == "" || noticeType == "" {
			return nil, fmt.Errorf("template %d: law and noticeType are required", i)
		}
		if strings.TrimSpace(t.TemplateCode) == "" {
			return nil, fmt.Errorf("template %s/%s: templateCode is required", law, noticeType)
		}

		tk := templateKey{law: law, noticeType: noticeType}
		if _, dup := c.templates[tk]; dup {
			return nil, fmt.Errorf("template %s/%s: duplicate entry", law, noticeType)
		}
		record := models.TemplateRecord{
			TemplateCode: t.TemplateCode,
			Section:      t.Section,
			Description:  t.Description,
		}
		c.templates[tk] = record

		entry := Entry{Law: law, NoticeType: noticeType, Template: record}
		for _, v := range t.Variants {
			meta, err := buildVariant(law, noticeType, v)
			if err != nil {
				return nil, err
			}
			vk := variantKey{law: law, noticeType: noticeType, section: meta.Section}
			if _, dup := c.variants[vk]; dup {
				return nil, fmt.Errorf("template %s/%s/%s: duplicate section", law, noticeType, meta.Section)
			}
			c.variants[vk] = meta
			entry.Variants = append(entry.Variants, meta)
		}
		c.entries = append(c.entries, entry)
	}

	sort.Slice(c.entries, func(i, j int) bool {
		if c.entries[i].Law != c.entries[j].Law {
			return c.entries[i].Law < c.entries[j].Law
		}
		return c.entries[i].NoticeType < c.entries[j].NoticeType
	})
	return c, nil
}

func buildVariant(law, noticeType string, v registry.TemplateVariant) (models.TemplateMetadataRecord, error) {
	section := NormalizeSection(v.Section)
	where := fmt.Sprintf("template %s/%s/%s", law, noticeType, section)
	if section == "" {
		return models.TemplateMetadataRecord{}, fmt.Errorf("template %s/%s: variant section is required", law, noticeType)
	}
	if strings.TrimSpace(v.TemplateID) == "" {
		return models.TemplateMetadataRecord{}, fmt.Errorf("%s: templateId is required", where)
	}

	seen := make(map[string]bool, len(v.MandatoryFields))
	for _, f := range v.MandatoryFields {
		if !models.IsDraftField(f) {
			return models.TemplateMetadataRecord{}, fmt.Errorf("%s: unknown mandatory field %q, expected one of %s",
				where, f, strings.Join(models.DraftFieldNames(), ", "))
		}
		if seen[f] {
			return models.TemplateMetadataRecord{}, fmt.Errorf("%s: mandatory field %q listed twice", where, f)
		}
		seen[f] = true
	}

	return models.TemplateMetadataRecord{
		TemplateID:       v.TemplateID,
		Law:              law,
		NoticeType:       noticeType,
		Section:          section,
		RiskLevel:        v.RiskLevel,
		FraudCategory:    v.FraudCategory,
		MandatoryFields:  slices.Clone(v.MandatoryFields),
		SupportedActions: slices.Clone(v.SupportedActions),
		DraftStyles:      slices.Clone(v.DraftStyles),
	}, nil
}

// Version is the registry version the catalog was built from.
func (c *Catalog) Version() string {
	return c.version
}

// Template looks up the coarse template for (law, noticeType).
func (c *Catalog) Template(law, noticeType string) (models.TemplateRecord, bool) {
	rec, ok := c.templates[templateKey{law: NormalizeCode(law), noticeType: NormalizeCode(noticeType)}]
	return rec, ok
}

// Variant looks up the section level template. The returned record owns its
// slices.
func (c *Catalog) Variant(law, noticeType, section string) (models.TemplateMetadataRecord, bool) {
	meta, ok := c.variants[variantKey{
		law:        NormalizeCode(law),
		noticeType: NormalizeCode(noticeType),
		section:    NormalizeSection(section),
	}]
	if !ok {
		return models.TemplateMetadataRecord{}, false
	}
	return cloneMetadata(meta), true
}

// Entries lists the catalog sorted by law then notice type.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = Entry{Law: e.Law, NoticeType: e.NoticeType, Template: e.Template}
		for _, v := range e.Variants {
			out[i].Variants = append(out[i].Variants, cloneMetadata(v))
		}
	}
	return out
}

func cloneMetadata(m models.TemplateMetadataRecord) models.TemplateMetadataRecord {
	m.MandatoryFields = slices.Clone(m.MandatoryFields)
	m.SupportedActions = slices.Clone(m.SupportedActions)
	m.DraftStyles = slices.Clone(m.DraftStyles)
	return m
}
