package handlers

import (
	"net/http"
	"time"

	"obras-backend/internal/database"
	"obras-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// CATÁLOGO DE ACTIVIDADES
//

type actividadPayload struct {
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	FechaInicio time.Time `json:"fechaInicio"`
	FechaFin    time.Time `json:"fechaFin"`
}

func CrearActividad(c *gin.Context) {
	var payload actividadPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Nombre == "" {
		respondError(c, http.StatusBadRequest, "Datos de la actividad inválidos")
		return
	}

	actividad := models.Actividad{
		Nombre:      payload.Nombre,
		Descripcion: payload.Descripcion,
		FechaInicio: payload.FechaInicio,
		FechaFin:    payload.FechaFin,
	}

	if err := database.DB.Create(&actividad).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al guardar la actividad")
		return
	}
	c.JSON(http.StatusCreated, actividad)
}

func ListarActividades(c *gin.Context) {
	var actividades []models.Actividad
	if err := database.DB.Order("nombre asc").Find(&actividades).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener las actividades")
		return
	}
	c.JSON(http.StatusOK, actividades)
}

func ObtenerActividad(c *gin.Context) {
	var actividad models.Actividad
	if err := database.DB.First(&actividad, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Actividad no encontrada")
		return
	}
	c.JSON(http.StatusOK, actividad)
}

type actualizarActividadPayload struct {
	Nombre      *string    `json:"nombre"`
	Descripcion *string    `json:"descripcion"`
	FechaInicio *time.Time `json:"fechaInicio"`
	FechaFin    *time.Time `json:"fechaFin"`
}

func ActualizarActividad(c *gin.Context) {
	var actividad models.Actividad
	if err := database.DB.First(&actividad, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Actividad no encontrada")
		return
	}

	var payload actualizarActividadPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de actualización inválidos")
		return
	}

	if payload.Nombre != nil {
		actividad.Nombre = *payload.Nombre
	}
	if payload.Descripcion != nil {
		actividad.Descripcion = *payload.Descripcion
	}
	if payload.FechaInicio != nil {
		actividad.FechaInicio = *payload.FechaInicio
	}
	if payload.FechaFin != nil {
		actividad.FechaFin = *payload.FechaFin
	}

	if err := database.DB.Save(&actividad).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al actualizar la actividad")
		return
	}
	c.JSON(http.StatusOK, actividad)
}

func EliminarActividad(c *gin.Context) {
	var actividad models.Actividad
	if err := database.DB.First(&actividad, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Actividad no encontrada")
		return
	}

	if err := database.DB.Delete(&actividad).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al eliminar la actividad")
		return
	}
	respondMensaje(c, http.StatusOK, "Actividad eliminada correctamente")
}

//
// ACTIVIDADES ASIGNADAS A UNA OBRA
//

type asignarActividadPayload struct {
	ActividadID string `json:"actividadId"`
}

func AsignarActividadAObra(c *gin.Context) {
	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}

	var payload asignarActividadPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.ActividadID == "" {
		respondError(c, http.StatusBadRequest, "Debe indicar la actividad a asignar")
		return
	}

	var actividad models.Actividad
	if err := database.DB.First(&actividad, "id = ?", payload.ActividadID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Actividad no encontrada")
		return
	}

	// una actividad solo puede asignarse una vez a la misma obra
	if obra.TieneActividad(actividad.ID) {
		respondError(c, http.StatusBadRequest, "La actividad ya está asignada a esta obra")
		return
	}

	obra.Actividades = append(obra.Actividades, models.ActividadAsignada{
		ID:          uuid.NewString(),
		ActividadID: actividad.ID,
		Observacion: "",
		Completada:  false,
	})

	if err := database.DB.Save(&obra).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al asignar la actividad")
		return
	}

	respondMensaje(c, http.StatusOK, "Actividad agregada a la obra correctamente")
}

// asignación con la actividad del catálogo resuelta en línea
type asignacionRespuesta struct {
	ID          string            `json:"_id"`
	Actividad   *models.Actividad `json:"actividad"`
	Observacion string            `json:"observacion"`
	Completada  bool              `json:"completada"`
}

func ListarActividadesDeObra(c *gin.Context) {
	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}

	respuesta := make([]asignacionRespuesta, 0, len(obra.Actividades))
	for _, a := range obra.Actividades {
		item := asignacionRespuesta{
			ID:          a.ID,
			Observacion: a.Observacion,
			Completada:  a.Completada,
		}
		var actividad models.Actividad
		if err := database.DB.First(&actividad, "id = ?", a.ActividadID).Error; err == nil {
			item.Actividad = &actividad
		}
		respuesta = append(respuesta, item)
	}

	c.JSON(http.StatusOK, respuesta)
}

type actualizarAsignacionPayload struct {
	Observacion *string `json:"observacion"`
	Completada  *bool   `json:"completada"`
}

// Solo observacion y completada son editables en una asignación.
func ActualizarActividadDeObra(c *gin.Context) {
	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}

	asignacionID := c.Param("asignacionId")
	indice := -1
	for i := range obra.Actividades {
		if obra.Actividades[i].ID == asignacionID {
			indice = i
			break
		}
	}
	if indice == -1 {
		respondError(c, http.StatusNotFound, "Actividad no encontrada en esta obra")
		return
	}

	var payload actualizarAsignacionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de actualización inválidos")
		return
	}

	if payload.Observacion != nil {
		obra.Actividades[indice].Observacion = *payload.Observacion
	}
	if payload.Completada != nil {
		obra.Actividades[indice].Completada = *payload.Completada
	}

	if err := database.DB.Save(&obra).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al actualizar la actividad")
		return
	}

	c.JSON(http.StatusOK, obra.Actividades[indice])
}
