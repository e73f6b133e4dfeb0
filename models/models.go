// models/models.go - Core catalog models (Zone/Achievement/User live in their own files)
package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Plan is a subscription plan shown to the mobile client.
type Plan struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"default:0"`
	Features    []string  `json:"features" gorm:"serializer:json;type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Content is a curated cultural term with translations, used by the
// content seeding endpoints.
type Content struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Term          string    `json:"term" gorm:"not null;size:150"`
	TranslationES string    `json:"translation_es" gorm:"not null;size:300"`
	TranslationEN string    `json:"translation_en" gorm:"not null;size:300"`
	Context       string    `json:"context" gorm:"type:text"`
	Pronunciation string    `json:"pronunciation" gorm:"size:150"`
	Category      string    `json:"category" gorm:"size:50;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuechuaTerm is a human-verified Spanish -> Cusco Quechua dictionary
// entry. The Spanish key is stored lower-cased and trimmed so lookups are
// case- and whitespace-insensitive.
type QuechuaTerm struct {
	ID              uint     `json:"id" gorm:"primaryKey"`
	Spanish         string   `json:"spanish" gorm:"uniqueIndex;not null;size:200"`
	QuechuaCusqueno string   `json:"quechua_cusqueno" gorm:"not null;size:300"`
	Context         string   `json:"context,omitempty" gorm:"type:text"`
	Category        string   `json:"category,omitempty" gorm:"size:50;index"`
	Examples        []string `json:"examples,omitempty" gorm:"serializer:json;type:text"`
}

// BeforeSave normalizes the Spanish key, mirroring the lookup
// normalization in the translation resolver.
func (t *QuechuaTerm) BeforeSave(tx *gorm.DB) error {
	t.Spanish = NormalizeTerm(t.Spanish)
	return nil
}

// NormalizeTerm is the canonical form used both when storing dictionary
// entries and when looking them up.
func NormalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (Plan) TableName() string {
	return "plans"
}

func (Content) TableName() string {
	return "contents"
}

func (QuechuaTerm) TableName() string {
	return "quechua_terms"
}
