package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EstadoInspeccion string

type EstadoProblema string

const (
	InspeccionPendiente  EstadoInspeccion = "Pendiente"
	InspeccionEnProceso  EstadoInspeccion = "En Proceso"
	InspeccionCompletada EstadoInspeccion = "Completada"

	ProblemaPendiente EstadoProblema = "Pendiente"
	ProblemaEnProceso EstadoProblema = "En Proceso"
	ProblemaResuelto  EstadoProblema = "Resuelto"
)

// Las transiciones no tienen orden impuesto: cualquier estado válido
// puede suceder a cualquier otro.
func (e EstadoInspeccion) EsValido() bool {
	switch e {
	case InspeccionPendiente, InspeccionEnProceso, InspeccionCompletada:
		return true
	}
	return false
}

func (e EstadoProblema) EsValido() bool {
	switch e {
	case ProblemaPendiente, ProblemaEnProceso, ProblemaResuelto:
		return true
	}
	return false
}

// Solución de un problema. Se reemplaza completa, nunca se mezcla campo
// a campo con la anterior. Registrarla no fuerza el estado a Resuelto.
type Solucion struct {
	Descripcion         string    `json:"descripcion"`
	Responsable         string    `json:"responsable"`
	FechaImplementacion time.Time `json:"fechaImplementacion"`
	Documentos          []string  `json:"documentos"`
}

// Problema detectado durante una inspección. Vive embebido dentro de su
// inspección; no es direccionable fuera de ella.
type Problema struct {
	ID                  string         `json:"_id"`
	Descripcion         string         `json:"descripcion"`
	Evidencias          []string       `json:"evidencias"`
	ReportesSecundarios []string       `json:"reportesSecundarios"`
	Estado              EstadoProblema `json:"estado"`
	Solucion            *Solucion      `json:"solucion,omitempty"`
}

type Inspeccion struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ObraID      string `gorm:"type:uuid;index;not null" json:"obraId"`
	ActividadID string `gorm:"type:uuid;not null" json:"actividadId"`

	Fecha         time.Time        `json:"fecha"`
	Observaciones string           `gorm:"type:text" json:"observaciones"`
	Estado        EstadoInspeccion `gorm:"size:50;not null" json:"estado"`

	Problemas []Problema `gorm:"type:jsonb;serializer:json" json:"problemas"`

	// contador de revisión: toda escritura del documento completo lo
	// compara y lo incrementa; una escritura con versión vieja se rechaza
	Version int64 `gorm:"not null;default:0" json:"-"`
}

func (i *Inspeccion) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// BuscarProblema devuelve el índice del problema dentro de la colección,
// o -1 si no existe.
func (i *Inspeccion) BuscarProblema(problemaID string) int {
	for idx := range i.Problemas {
		if i.Problemas[idx].ID == problemaID {
			return idx
		}
	}
	return -1
}
