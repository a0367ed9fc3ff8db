package database

import "obras-backend/internal/models"

// helper para registrar un movimiento en la bitácora
func RegistrarBitacora(usuarioID, entidad, entidadID, accion, detalles string) {
	if DB == nil {
		return
	}
	registro := models.Bitacora{
		UsuarioID: usuarioID,
		Entidad:   entidad,
		EntidadID: entidadID,
		Accion:    accion,
		Detalles:  detalles,
	}
	_ = DB.Create(&registro).Error
}
