package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ubicación geográfica de la obra (embebida en el documento de la obra)
type Ubicacion struct {
	ID            string    `json:"_id"`
	Nombre        string    `json:"nombre"`
	Latitud       float64   `json:"latitud"`
	Longitud      float64   `json:"longitud"`
	FechaRegistro time.Time `json:"fechaRegistro"`
}

// Asignación de una actividad del catálogo a una obra concreta.
// Una actividad puede asignarse a la misma obra una sola vez.
type ActividadAsignada struct {
	ID          string `json:"_id"`
	ActividadID string `json:"actividad"`
	Observacion string `json:"observacion"`
	Completada  bool   `json:"completada"`
}

type Obra struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	NombreObra               string `gorm:"size:255;not null" json:"nombreObra"`
	CapacidadInfraestructura string `gorm:"size:255" json:"capacidadInfraestructura"`
	Categoria                string `gorm:"size:100;not null" json:"categoria"`
	DescripcionObra          string `gorm:"type:text" json:"descripcionObra"`
	EstadoObra               string `gorm:"size:50" json:"estadoObra"`
	TipoIntervencion         string `gorm:"size:100" json:"tipoIntervencion"`
	CUP                      string `gorm:"size:50" json:"cup"`

	Ubicaciones []Ubicacion         `gorm:"type:jsonb;serializer:json" json:"ubicaciones"`
	Actividades []ActividadAsignada `gorm:"type:jsonb;serializer:json" json:"actividades"`

	FechaInicio time.Time  `json:"fecha_inicio"`
	FechaFin    *time.Time `json:"fecha_fin,omitempty"`

	Presupuesto float64 `json:"presupuesto"`

	// devengadoTotal puede no haberse cargado nunca; porcentajeAvance
	// siempre se recalcula a partir de devengado / inversión planificada
	DevengadoTotal    *float64 `json:"devengadoTotal,omitempty"`
	PorcentajeAvance  float64  `json:"porcentajeAvance"`
	PonderacionActiva bool     `json:"ponderacionActiva"`
}

func (o *Obra) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// TieneActividad indica si la actividad del catálogo ya está asignada.
func (o *Obra) TieneActividad(actividadID string) bool {
	for _, a := range o.Actividades {
		if a.ActividadID == actividadID {
			return true
		}
	}
	return false
}
