package models

import "time"

// Bitácora de cambios sobre las entidades principales.
type Bitacora struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UsuarioID string `gorm:"type:uuid" json:"usuarioId"`

	Entidad   string `gorm:"size:50;not null" json:"entidad"` // "obra", "contrato", "inspeccion"...
	EntidadID string `gorm:"type:uuid" json:"entidadId"`
	Accion    string `gorm:"size:50;not null" json:"accion"` // "crear", "actualizar", "eliminar"
	Detalles  string `gorm:"type:text" json:"detalles"`
}
