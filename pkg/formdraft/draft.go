// Package formdraft yayınlanmamış bir formun düzenlenebilir hâlini tutar:
// sıralı alan listesi ve her alan için bekleyen seçenek girdisi.
// Draft eşzamanlı kullanım için güvenli değildir; kilitleme DraftService'in işidir.
package formdraft

import (
	"errors"
	"fmt"

	"formkit.link/models"

	"github.com/google/uuid"
)

// ErrUnknownKind katalogda olmayan bir alan türü istendi.
var ErrUnknownKind = errors.New("bilinmeyen alan türü")

// Upload taslağa iliştirilmiş, henüz yüklenmemiş bir dosya.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Meta taslakla birlikte taşınan form başlığı, açıklaması ve logosu.
type Meta struct {
	Title       string
	Description string
	Logo        *Upload
}

// Draft düzenlenmekte olan form.
type Draft struct {
	Meta    Meta
	fields  []models.FormField
	pending map[string]string
}

// New boş bir taslak oluşturur.
func New(meta Meta) *Draft {
	return &Draft{
		Meta:    meta,
		fields:  []models.FormField{},
		pending: map[string]string{},
	}
}

// AddField listenin sonuna boş etiketli, seçeneksiz yeni bir alan ekler ve alanın ID'sini döndürür.
func (d *Draft) AddField(kind models.FieldKind) (string, error) {
	if _, ok := models.LookupFieldSpec(kind); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	field := models.FormField{
		InstanceID: uuid.NewString(),
		Kind:       kind,
		Options:    []string{},
	}
	d.fields = append(d.fields, field)
	return field.InstanceID, nil
}

func (d *Draft) indexOf(id string) int {
	for i := range d.fields {
		if d.fields[i].InstanceID == id {
			return i
		}
	}
	return -1
}

// Has alanın taslakta olup olmadığını bildirir.
func (d *Draft) Has(id string) bool {
	return d.indexOf(id) >= 0
}

// SetLabel alanın etiketini değiştirir. Alan yoksa hiçbir şey yapmaz.
func (d *Draft) SetLabel(id, text string) {
	if i := d.indexOf(id); i >= 0 {
		d.fields[i].CustomLabel = text
	}
}

// SetPendingOption alanın seçenek girdisini saklar.
func (d *Draft) SetPendingOption(id, text string) {
	if d.indexOf(id) < 0 {
		return
	}
	d.pending[id] = text
}

// Pending alanın bekleyen seçenek girdisini döndürür.
func (d *Draft) Pending(id string) string {
	return d.pending[id]
}

// PendingAll tüm bekleyen girdilerin kopyasını döndürür.
func (d *Draft) PendingAll() map[string]string {
	out := make(map[string]string, len(d.pending))
	for k, v := range d.pending {
		out[k] = v
	}
	return out
}

// AddOption boş olmayan değeri seçeneklere ekler (tekrar serbest) ve her durumda bekleyen girdiyi temizler.
func (d *Draft) AddOption(id, value string) {
	i := d.indexOf(id)
	if i < 0 {
		return
	}
	if value != "" {
		d.fields[i].Options = append(d.fields[i].Options, value)
	}
	delete(d.pending, id)
}

// RemoveField alanı siler; kalan alanların sırası korunur.
func (d *Draft) RemoveField(id string) {
	i := d.indexOf(id)
	if i < 0 {
		return
	}
	d.fields = append(d.fields[:i], d.fields[i+1:]...)
	delete(d.pending, id)
}

// Fields alanların sıralı, derin bir kopyasını döndürür.
func (d *Draft) Fields() []models.FormField {
	out := make([]models.FormField, len(d.fields))
	for i, f := range d.fields {
		out[i] = f.Clone()
	}
	return out
}

// Len alan sayısı.
func (d *Draft) Len() int {
	return len(d.fields)
}

// Clone taslağın bağımsız bir kopyasını döndürür.
func (d *Draft) Clone() *Draft {
	c := &Draft{
		Meta:    d.Meta,
		fields:  d.Fields(),
		pending: d.PendingAll(),
	}
	if d.Meta.Logo != nil {
		logo := *d.Meta.Logo
		logo.Data = append([]byte(nil), d.Meta.Logo.Data...)
		c.Meta.Logo = &logo
	}
	return c
}
