package handlers

import (
	"net/http"
	"time"

	"obras-backend/internal/database"
	"obras-backend/internal/models"

	"github.com/gin-gonic/gin"
)

//
// CONTRATOS DE UNA OBRA
//

type crearContratoPayload struct {
	TipoContrato          models.TipoContrato         `json:"tipoContrato"`
	NombreContratista     string                      `json:"nombreContratista"`
	Monto                 float64                     `json:"monto"`
	FechaContrato         time.Time                   `json:"fechaContrato"`
	FechaFinContrato      *time.Time                  `json:"fechaFinContrato"`
	FuenteFinanciamiento  models.FuenteFinanciamiento `json:"fuenteFinanciamiento"`
	EntidadFinanciamiento string                      `json:"entidadFinanciamiento"`
	AvanceContrato        float64                     `json:"avanceContrato"`
}

func CrearContrato(c *gin.Context) {
	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}

	var payload crearContratoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Datos del contrato inválidos")
		return
	}

	if payload.NombreContratista == "" {
		respondError(c, http.StatusBadRequest, "Debe indicar el contratista")
		return
	}
	if !payload.TipoContrato.EsValido() {
		respondError(c, http.StatusBadRequest, "Tipo de contrato inválido")
		return
	}
	if !payload.FuenteFinanciamiento.EsValida() {
		respondError(c, http.StatusBadRequest, "Fuente de financiamiento inválida")
		return
	}
	if payload.AvanceContrato < 0 || payload.AvanceContrato > 100 {
		respondError(c, http.StatusBadRequest, "El avance del contrato debe estar entre 0 y 100")
		return
	}

	contrato := models.Contrato{
		ObraID:                obra.ID,
		TipoContrato:          payload.TipoContrato,
		NombreContratista:     payload.NombreContratista,
		Monto:                 payload.Monto,
		FechaContrato:         payload.FechaContrato,
		FechaFinContrato:      payload.FechaFinContrato,
		FuenteFinanciamiento:  payload.FuenteFinanciamiento,
		EntidadFinanciamiento: payload.EntidadFinanciamiento,
		AvanceContrato:        payload.AvanceContrato,
	}

	if err := database.DB.Create(&contrato).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al guardar el contrato")
		return
	}

	if uid := usuarioActual(c); uid != "" {
		database.RegistrarBitacora(uid, "contrato", contrato.ID, "crear",
			"Contrato creado: "+contrato.NombreContratista)
	}

	c.JSON(http.StatusCreated, contrato)
}

func ListarContratos(c *gin.Context) {
	var contratos []models.Contrato
	if err := database.DB.Where("obra_id = ?", c.Param("id")).
		Order("created_at desc").Find(&contratos).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener los contratos")
		return
	}
	c.JSON(http.StatusOK, contratos)
}

func ObtenerContrato(c *gin.Context) {
	var contrato models.Contrato
	if err := database.DB.First(&contrato, "id = ?", c.Param("contratoId")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Contrato no encontrado")
		return
	}
	c.JSON(http.StatusOK, contrato)
}

type actualizarContratoPayload struct {
	TipoContrato          *models.TipoContrato         `json:"tipoContrato"`
	NombreContratista     *string                      `json:"nombreContratista"`
	Monto                 *float64                     `json:"monto"`
	FechaContrato         *time.Time                   `json:"fechaContrato"`
	FechaFinContrato      *time.Time                   `json:"fechaFinContrato"`
	FuenteFinanciamiento  *models.FuenteFinanciamiento `json:"fuenteFinanciamiento"`
	EntidadFinanciamiento *string                      `json:"entidadFinanciamiento"`
	AvanceContrato        *float64                     `json:"avanceContrato"`
}

func ActualizarContrato(c *gin.Context) {
	var contrato models.Contrato
	if err := database.DB.First(&contrato, "id = ?", c.Param("contratoId")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Contrato no encontrado")
		return
	}

	var payload actualizarContratoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de actualización inválidos")
		return
	}

	if payload.TipoContrato != nil {
		if !payload.TipoContrato.EsValido() {
			respondError(c, http.StatusBadRequest, "Tipo de contrato inválido")
			return
		}
		contrato.TipoContrato = *payload.TipoContrato
	}
	if payload.NombreContratista != nil {
		contrato.NombreContratista = *payload.NombreContratista
	}
	if payload.Monto != nil {
		contrato.Monto = *payload.Monto
	}
	if payload.FechaContrato != nil {
		contrato.FechaContrato = *payload.FechaContrato
	}
	if payload.FechaFinContrato != nil {
		contrato.FechaFinContrato = payload.FechaFinContrato
	}
	if payload.FuenteFinanciamiento != nil {
		if !payload.FuenteFinanciamiento.EsValida() {
			respondError(c, http.StatusBadRequest, "Fuente de financiamiento inválida")
			return
		}
		contrato.FuenteFinanciamiento = *payload.FuenteFinanciamiento
	}
	if payload.EntidadFinanciamiento != nil {
		contrato.EntidadFinanciamiento = *payload.EntidadFinanciamiento
	}
	if payload.AvanceContrato != nil {
		if *payload.AvanceContrato < 0 || *payload.AvanceContrato > 100 {
			respondError(c, http.StatusBadRequest, "El avance del contrato debe estar entre 0 y 100")
			return
		}
		contrato.AvanceContrato = *payload.AvanceContrato
	}

	if err := database.DB.Save(&contrato).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al actualizar el contrato")
		return
	}

	if uid := usuarioActual(c); uid != "" {
		database.RegistrarBitacora(uid, "contrato", contrato.ID, "actualizar",
			"Contrato actualizado: "+contrato.NombreContratista)
	}

	c.JSON(http.StatusOK, contrato)
}

func EliminarContrato(c *gin.Context) {
	var contrato models.Contrato
	if err := database.DB.First(&contrato, "id = ?", c.Param("contratoId")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Contrato no encontrado")
		return
	}

	if err := database.DB.Delete(&contrato).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al eliminar el contrato")
		return
	}

	if uid := usuarioActual(c); uid != "" {
		database.RegistrarBitacora(uid, "contrato", contrato.ID, "eliminar",
			"Contrato eliminado: "+contrato.NombreContratista)
	}

	respondMensaje(c, http.StatusOK, "Contrato eliminado correctamente")
}
