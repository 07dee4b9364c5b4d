package models

import (
	"gorm.io/datatypes"
)

// FormField bir formdaki alan örneği. JSON anahtarları yayınlanmış belgelerle uyumludur.
type FormField struct {
	InstanceID  string    `json:"id"`
	Kind        FieldKind `json:"type"`
	CustomLabel string    `json:"customLabel"`
	Options     []string  `json:"options"`
}

// Clone alanın seçenek dilimini paylaşmayan bir kopyasını döndürür.
func (f FormField) Clone() FormField {
	c := f
	c.Options = make([]string, len(f.Options))
	copy(c.Options, f.Options)
	return c
}

// FieldVariant alanın türüne göre ayrılmış hâli. Sadece bu paketteki tipler uygular.
type FieldVariant interface {
	isFieldVariant()
}

// TextVariant serbest metin girişi; InputType HTML input tipidir.
type TextVariant struct {
	InputType string
}

// ChoiceVariant seçenekli alan. Multiple sadece checkbox için true, Dropdown sadece select için.
type ChoiceVariant struct {
	Options  []string
	Multiple bool
	Dropdown bool
}

// UploadVariant dosya yükleme alanı.
type UploadVariant struct {
	ImageOnly bool
}

func (TextVariant) isFieldVariant()   {}
func (ChoiceVariant) isFieldVariant() {}
func (UploadVariant) isFieldVariant() {}

// Variant alanı türüne göre ayrılmış yapıya çevirir. Bilinmeyen türler nil döner.
func (f FormField) Variant() FieldVariant {
	switch f.Kind.Shape() {
	case ShapeText:
		return TextVariant{InputType: string(f.Kind)}
	case ShapeChoice:
		opts := make([]string, len(f.Options))
		copy(opts, f.Options)
		return ChoiceVariant{
			Options:  opts,
			Multiple: f.Kind == FieldKindCheckbox,
			Dropdown: f.Kind == FieldKindSelect,
		}
	case ShapeUpload:
		return UploadVariant{ImageOnly: f.Kind == FieldKindImage}
	default:
		return nil
	}
}

// Form yayınlanmış form tanımı. Oluşturulduktan sonra değişmez.
type Form struct {
	BaseModel
	CreatorUserID string                         `gorm:"type:varchar(36);index;not null" json:"creatorUserId"`
	Title         string                         `gorm:"type:varchar(255)" json:"title"`
	Description   string                         `gorm:"type:text" json:"description"`
	LogoURL       string                         `gorm:"type:text" json:"logo"`
	LogoPath      string                         `gorm:"type:varchar(1024)" json:"-"`
	Fields        datatypes.JSONSlice[FormField] `json:"elements"`
}

// FieldList alanları sırasıyla, kopyalanmış olarak döndürür.
func (f *Form) FieldList() []FormField {
	out := make([]FormField, len(f.Fields))
	for i, fld := range f.Fields {
		out[i] = fld.Clone()
	}
	return out
}

// FormSummary pano listesinde gösterilen özet.
type FormSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
