package database

import (
	"errors"

	"obras-backend/internal/models"
)

// ErrVersionDesactualizada indica que otro llamador guardó la inspección
// entre nuestra lectura y nuestra escritura.
var ErrVersionDesactualizada = errors.New("la inspección fue modificada por otro usuario")

// GuardarInspeccion persiste el documento completo de la inspección con
// control optimista: la escritura solo procede si la versión en disco es
// la misma que se leyó. Si procede, la versión se incrementa.
func GuardarInspeccion(insp *models.Inspeccion) error {
	leida := insp.Version
	insp.Version = leida + 1

	res := DB.Model(insp).
		Where("version = ?", leida).
		Select("Fecha", "Observaciones", "Estado", "Problemas", "Version").
		Updates(*insp)
	if res.Error != nil {
		insp.Version = leida
		return res.Error
	}
	if res.RowsAffected == 0 {
		insp.Version = leida
		return ErrVersionDesactualizada
	}
	return nil
}
