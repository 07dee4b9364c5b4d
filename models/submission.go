package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// RespondentInfo formu dolduran kişinin kendini tanıttığı bilgiler.
type RespondentInfo struct {
	Name  string `gorm:"type:varchar(150)" json:"name"`
	Email string `gorm:"type:varchar(150)" json:"email"`
}

// Submission bir yanıtlayıcının gönderdiği yanıt kaydı. Oluşturulduktan sonra değişmez.
// FormID yalnızca opak bir referanstır, yabancı anahtar kısıtı yoktur.
type Submission struct {
	BaseModel
	FormID     string         `gorm:"type:varchar(36);index;not null" json:"formId"`
	Respondent RespondentInfo `gorm:"embedded;embeddedPrefix:respondent_" json:"userInfo"`
	// Responses alan etiketine göre anahtarlanır; aynı etiketli alanlarda sonraki alan kazanır.
	Responses datatypes.JSONMap `json:"responses"`
	// FieldResponses aynı değerleri alan örnek ID'sine göre kayıpsız tutar.
	FieldResponses datatypes.JSONMap `json:"fieldResponses"`
	// FilePaths dosya alanlarının depodaki yolları; süreli URL'ler buradan yeniden üretilir.
	FilePaths   datatypes.JSONMap `json:"-"`
	SubmittedAt time.Time         `gorm:"index" json:"timestamp"`
}

// FieldValue alanın yanıtını döndürür. Örnek ID'siyle kaydedilmemiş eski kayıtlarda etikete bakar.
func (s *Submission) FieldValue(f FormField) any {
	if v, ok := s.FieldResponses[f.InstanceID]; ok {
		return v
	}
	if v, ok := s.Responses[f.CustomLabel]; ok {
		return v
	}
	return nil
}

// ResponseStrings bir yanıt değerini gösterim için metin dilimine çevirir.
// Tekli değerler tek elemanlı, checkbox yanıtları çok elemanlı döner.
func ResponseStrings(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(val)}
	}
}
