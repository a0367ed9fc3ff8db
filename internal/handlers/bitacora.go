package handlers

import (
	"net/http"

	"obras-backend/internal/database"
	"obras-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ListarBitacora devuelve los últimos movimientos registrados. El
// filtrado por entidad es opcional.
func ListarBitacora(c *gin.Context) {
	consulta := database.DB.Order("created_at desc").Limit(100)

	if entidad := c.Query("entidad"); entidad != "" {
		consulta = consulta.Where("entidad = ?", entidad)
	}
	if entidadID := c.Query("entidadId"); entidadID != "" {
		consulta = consulta.Where("entidad_id = ?", entidadID)
	}

	var registros []models.Bitacora
	if err := consulta.Find(&registros).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al consultar la bitácora")
		return
	}
	c.JSON(http.StatusOK, registros)
}
