package models

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldKind paletteki bir alan türü.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindNumber   FieldKind = "number"
	FieldKindSelect   FieldKind = "select"
	FieldKindRadio    FieldKind = "radio"
	FieldKindCheckbox FieldKind = "checkbox"
	FieldKindFile     FieldKind = "file"
	FieldKindImage    FieldKind = "image"
)

// FieldShape bir alan türünün nasıl yanıtlandığını belirler.
type FieldShape int

const (
	ShapeUnknown FieldShape = iota
	ShapeText               // tek satır serbest metin
	ShapeChoice             // seçeneklerden biri veya birkaçı
	ShapeUpload             // dosya yükleme, yanıt değeri URL
)

func (s FieldShape) String() string {
	switch s {
	case ShapeText:
		return "text"
	case ShapeChoice:
		return "choice"
	case ShapeUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// Shape türün yanıt biçimini döndürür.
func (k FieldKind) Shape() FieldShape {
	switch k {
	case FieldKindText, FieldKindEmail, FieldKindNumber:
		return ShapeText
	case FieldKindSelect, FieldKindRadio, FieldKindCheckbox:
		return ShapeChoice
	case FieldKindFile, FieldKindImage:
		return ShapeUpload
	default:
		return ShapeUnknown
	}
}

// IsMultiValued sadece checkbox birden fazla seçenek tutar.
func (k FieldKind) IsMultiValued() bool {
	return k == FieldKindCheckbox
}

// FieldSpec katalogdaki değişmez bir girdi.
type FieldSpec struct {
	Kind         FieldKind `yaml:"kind"`
	DisplayLabel string    `yaml:"label"`
}

//go:embed catalog.yaml
var catalogYAML []byte

var (
	fieldCatalog []FieldSpec
	fieldByKind  map[FieldKind]FieldSpec
)

func init() {
	specs, err := parseCatalog(catalogYAML)
	if err != nil {
		panic(err)
	}
	fieldCatalog = specs
	fieldByKind = make(map[FieldKind]FieldSpec, len(specs))
	for _, s := range specs {
		fieldByKind[s.Kind] = s
	}
}

func parseCatalog(data []byte) ([]FieldSpec, error) {
	var doc struct {
		Fields []FieldSpec `yaml:"fields"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("alan kataloğu okunamadı: %w", err)
	}
	seen := make(map[FieldKind]bool, len(doc.Fields))
	for _, s := range doc.Fields {
		if s.Kind.Shape() == ShapeUnknown {
			return nil, fmt.Errorf("alan kataloğunda bilinmeyen tür: %q", s.Kind)
		}
		if seen[s.Kind] {
			return nil, fmt.Errorf("alan kataloğunda tekrar eden tür: %q", s.Kind)
		}
		seen[s.Kind] = true
	}
	return doc.Fields, nil
}

// FieldCatalog paletteki türleri sırasıyla döndürür.
func FieldCatalog() []FieldSpec {
	out := make([]FieldSpec, len(fieldCatalog))
	copy(out, fieldCatalog)
	return out
}

// LookupFieldSpec türe ait katalog girdisini bulur.
func LookupFieldSpec(kind FieldKind) (FieldSpec, bool) {
	s, ok := fieldByKind[kind]
	return s, ok
}
