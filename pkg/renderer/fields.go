// Package renderer HTML şablonlarını işler ve aynı alan listesinden iki görünüm modeli üretir:
// yazarın düzenleme görünümü ve yanıtlayıcının doldurma görünümü.
package renderer

import (
	"slices"

	"formkit.link/models"
)

// Widget görünümde hangi girdi bloğunun çizileceği.
type Widget string

const (
	WidgetText   Widget = "text"
	WidgetSelect Widget = "select"
	WidgetRadio  Widget = "radio"
	WidgetCheck  Widget = "checkbox"
	WidgetUpload Widget = "upload"
)

// OptionView bir seçeneğin görünümü.
type OptionView struct {
	Value    string
	Selected bool
}

// EditorField düzenleme görünümündeki bir alan.
type EditorField struct {
	ID             string
	KindLabel      string
	Label          string
	Options        []string
	PendingOption  string
	AcceptsOptions bool
	Preview        RespondentField
}

// RespondentField doldurma görünümündeki bir alan.
type RespondentField struct {
	ID        string
	InputName string
	Label     string
	Widget    Widget
	InputType string
	Accept    string
	Options   []OptionView
	Value     string
	FileURL   string
}

// InputName alanın HTML form adı.
func InputName(fieldID string) string {
	return "field_" + fieldID
}

// EditorFields düzenleme görünümünü üretir. Bilinmeyen türdeki alanlar atlanır.
func EditorFields(fields []models.FormField, pending map[string]string) []EditorField {
	out := make([]EditorField, 0, len(fields))
	for _, f := range fields {
		preview, ok := respondentField(f, nil)
		if !ok {
			continue
		}
		kindLabel := string(f.Kind)
		if spec, ok := models.LookupFieldSpec(f.Kind); ok {
			kindLabel = spec.DisplayLabel
		}
		_, isChoice := f.Variant().(models.ChoiceVariant)
		out = append(out, EditorField{
			ID:             f.InstanceID,
			KindLabel:      kindLabel,
			Label:          f.CustomLabel,
			Options:        slices.Clone(f.Options),
			PendingOption:  pending[f.InstanceID],
			AcceptsOptions: isChoice,
			Preview:        preview,
		})
	}
	return out
}

// RespondentFields doldurma görünümünü üretir; values alan ID'sine göre mevcut yanıtlardır.
func RespondentFields(fields []models.FormField, values map[string]any) []RespondentField {
	out := make([]RespondentField, 0, len(fields))
	for _, f := range fields {
		if rf, ok := respondentField(f, values[f.InstanceID]); ok {
			out = append(out, rf)
		}
	}
	return out
}

func respondentField(f models.FormField, value any) (RespondentField, bool) {
	rf := RespondentField{
		ID:        f.InstanceID,
		InputName: InputName(f.InstanceID),
		Label:     f.CustomLabel,
	}
	current := models.ResponseStrings(value)

	switch v := f.Variant().(type) {
	case models.TextVariant:
		rf.Widget = WidgetText
		rf.InputType = v.InputType
		if len(current) > 0 {
			rf.Value = current[0]
		}
	case models.ChoiceVariant:
		switch {
		case v.Multiple:
			rf.Widget = WidgetCheck
		case v.Dropdown:
			rf.Widget = WidgetSelect
		default:
			rf.Widget = WidgetRadio
		}
		rf.Options = make([]OptionView, len(v.Options))
		for i, opt := range v.Options {
			rf.Options[i] = OptionView{Value: opt, Selected: slices.Contains(current, opt)}
		}
	case models.UploadVariant:
		rf.Widget = WidgetUpload
		if v.ImageOnly {
			rf.Accept = "image/*"
		}
		if len(current) > 0 {
			rf.FileURL = current[0]
		}
	default:
		return RespondentField{}, false
	}
	return rf, true
}

// ResponseRow panoda bir yanıtın tek alan değeri.
type ResponseRow struct {
	Label  string
	Values []string
	IsFile bool
}

// ResponseRows yanıtı formun alan sırasıyla satırlara çevirir.
func ResponseRows(form *models.Form, submission *models.Submission) []ResponseRow {
	rows := make([]ResponseRow, 0, len(form.Fields))
	for _, f := range form.Fields {
		values := models.ResponseStrings(submission.FieldValue(f))
		if len(values) == 0 {
			continue
		}
		rows = append(rows, ResponseRow{
			Label:  f.CustomLabel,
			Values: values,
			IsFile: f.Kind.Shape() == models.ShapeUpload,
		})
	}
	return rows
}
