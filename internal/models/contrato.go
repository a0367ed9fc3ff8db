package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TipoContrato string

type FuenteFinanciamiento string

const (
	ContratoPrincipal      TipoContrato = "Principal"
	ContratoComplementario TipoContrato = "Complementario"
	ContratoOtros          TipoContrato = "Otros"

	FuenteRecursosFiscales FuenteFinanciamiento = "Recursos Fiscales"
	FuenteCreditoInterno   FuenteFinanciamiento = "Crédito interno"
	FuenteCreditoExterno   FuenteFinanciamiento = "Crédito externo"
	FuenteAsistencia       FuenteFinanciamiento = "Asistencia Técnica y Donaciones"
	FuenteFiscalesOtros    FuenteFinanciamiento = "R. Fiscales / Otros"
)

func (t TipoContrato) EsValido() bool {
	switch t {
	case ContratoPrincipal, ContratoComplementario, ContratoOtros:
		return true
	}
	return false
}

func (f FuenteFinanciamiento) EsValida() bool {
	switch f {
	case FuenteRecursosFiscales, FuenteCreditoInterno, FuenteCreditoExterno,
		FuenteAsistencia, FuenteFiscalesOtros:
		return true
	}
	return false
}

// Contrato de una obra. Sin máquina de estados: alta, listado, edición
// parcial y borrado.
type Contrato struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ObraID string `gorm:"type:uuid;index;not null" json:"obraId"`

	TipoContrato          TipoContrato         `gorm:"size:50;not null" json:"tipoContrato"`
	NombreContratista     string               `gorm:"size:255;not null" json:"nombreContratista"`
	Monto                 float64              `json:"monto"`
	FechaContrato         time.Time            `json:"fechaContrato"`
	FechaFinContrato      *time.Time           `json:"fechaFinContrato,omitempty"`
	FuenteFinanciamiento  FuenteFinanciamiento `gorm:"size:100" json:"fuenteFinanciamiento"`
	EntidadFinanciamiento string               `gorm:"size:255" json:"entidadFinanciamiento"`

	// avance 0-100
	AvanceContrato float64 `json:"avanceContrato"`
}

func (ct *Contrato) BeforeCreate(tx *gorm.DB) error {
	if ct.ID == "" {
		ct.ID = uuid.NewString()
	}
	return nil
}
