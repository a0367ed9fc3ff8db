package handlers

import (
	"errors"
	"net/http"

	"obras-backend/internal/database"
	"obras-backend/internal/models"
	"obras-backend/internal/presupuesto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//
// INVERSIÓN PLANIFICADA POR CATEGORÍA
//

// La comparación de categoría es por cadena exacta, sensible a
// mayúsculas.
func ObtenerInversion(c *gin.Context) {
	var inversion models.Inversion
	err := database.DB.Where("categoria = ?", c.Param("categoria")).First(&inversion).Error
	if err != nil {
		respondError(c, http.StatusNotFound, "Categoría no encontrada")
		return
	}
	c.JSON(http.StatusOK, inversion)
}

type inversionPayload struct {
	Categoria string  `json:"categoria"`
	Inversion float64 `json:"inversion"`
}

// GuardarInversion crea el monto planificado de una categoría o lo
// reemplaza si ya existía.
func GuardarInversion(c *gin.Context) {
	var payload inversionPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Categoria == "" {
		respondError(c, http.StatusBadRequest, "Datos de la inversión inválidos")
		return
	}

	var inversion models.Inversion
	err := database.DB.Where("categoria = ?", payload.Categoria).First(&inversion).Error
	switch {
	case err == nil:
		inversion.Inversion = payload.Inversion
		if err := database.DB.Save(&inversion).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Error al actualizar la inversión")
			return
		}
		c.JSON(http.StatusOK, inversion)
	case errors.Is(err, gorm.ErrRecordNotFound):
		inversion = models.Inversion{Categoria: payload.Categoria, Inversion: payload.Inversion}
		if err := database.DB.Create(&inversion).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Error al guardar la inversión")
			return
		}
		c.JSON(http.StatusCreated, inversion)
	default:
		respondError(c, http.StatusInternalServerError, "Error al consultar la inversión")
	}
}

//
// AVANCE PRESUPUESTARIO DE UNA OBRA
//

type presupuestoRespuesta struct {
	Categoria         string                   `json:"categoria"`
	MontoPlanificado  float64                  `json:"montoPlanificado"`
	DevengadoTotal    *float64                 `json:"devengadoTotal,omitempty"`
	PorcentajeAvance  float64                  `json:"porcentajeAvance"`
	PonderacionActiva bool                     `json:"ponderacionActiva"`
	Actividades       []presupuesto.Asignacion `json:"actividades,omitempty"`
}

// ObtenerPresupuesto deriva el avance de la obra contra la inversión
// planificada de su categoría y, con la ponderación activa, reparte el
// monto entre sus actividades.
func ObtenerPresupuesto(c *gin.Context) {
	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}

	var inversion models.Inversion
	if err := database.DB.Where("categoria = ?", obra.Categoria).First(&inversion).Error; err != nil {
		respondError(c, http.StatusNotFound, "Categoría no encontrada")
		return
	}

	respuesta := presupuestoRespuesta{
		Categoria:         obra.Categoria,
		MontoPlanificado:  inversion.Inversion,
		DevengadoTotal:    obra.DevengadoTotal,
		PorcentajeAvance:  presupuesto.CalcularPorcentaje(obra.DevengadoTotal, inversion.Inversion),
		PonderacionActiva: obra.PonderacionActiva,
	}

	if obra.PonderacionActiva {
		nombres := make(map[string]string, len(obra.Actividades))
		for _, a := range obra.Actividades {
			var actividad models.Actividad
			if err := database.DB.First(&actividad, "id = ?", a.ActividadID).Error; err == nil {
				nombres[a.ActividadID] = actividad.Nombre
			}
		}
		respuesta.Actividades = presupuesto.Repartir(inversion.Inversion, obra.Actividades, nombres)
	}

	c.JSON(http.StatusOK, respuesta)
}
