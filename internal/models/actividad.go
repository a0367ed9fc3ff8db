package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actividad del catálogo: plantilla reutilizable del cronograma.
// Las obras la referencian a través de ActividadAsignada.
type Actividad struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Nombre      string    `gorm:"size:255;not null" json:"nombre"`
	Descripcion string    `gorm:"type:text" json:"descripcion"`
	FechaInicio time.Time `json:"fechaInicio"`
	FechaFin    time.Time `json:"fechaFin"`
}

func (a *Actividad) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
