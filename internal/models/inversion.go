package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inversión planificada por categoría de obra. La búsqueda por categoría
// es por cadena exacta, sensible a mayúsculas.
type Inversion struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Categoria string  `gorm:"size:100;uniqueIndex;not null" json:"categoria"`
	Inversion float64 `gorm:"not null" json:"inversion"`
}

func (iv *Inversion) BeforeCreate(tx *gorm.DB) error {
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	return nil
}
