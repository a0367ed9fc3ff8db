package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"obras-backend/internal/database"
	"obras-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// INSPECCIONES DE UNA OBRA
//
// Una inspección referencia una actividad asignada de la obra y contiene
// los problemas detectados, cada uno con sus evidencias adjuntas. El
// documento completo se guarda con control de versión.
//

// problema tal como viene en el campo "problemas" del formulario
type problemaEntrada struct {
	Descripcion string `json:"descripcion"`
}

func CrearInspeccion(c *gin.Context) {
	obraID := c.Param("id")

	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", obraID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Formulario de inspección inválido")
		return
	}

	actividadID := c.PostForm("actividadId")
	observaciones := c.PostForm("observaciones")

	var actividad models.Actividad
	if err := database.DB.First(&actividad, "id = ?", actividadID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Actividad no encontrada")
		return
	}

	var entradas []problemaEntrada
	if raw := c.PostForm("problemas"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &entradas); err != nil {
			respondError(c, http.StatusBadRequest, "El campo de problemas no es un JSON válido")
			return
		}
	}

	// los archivos se escriben antes de crear el registro que los
	// referencia; si la escritura del registro falla quedan huérfanos
	problemas := make([]models.Problema, 0, len(entradas))
	for i, entrada := range entradas {
		evidencias, err := Uploads.GuardarTodos(form.File[fmt.Sprintf("problema%d_evidencia", i)])
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Error al guardar las evidencias")
			return
		}
		reportes, err := Uploads.GuardarTodos(form.File[fmt.Sprintf("problema%d_reporte", i)])
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Error al guardar los reportes")
			return
		}

		problemas = append(problemas, models.Problema{
			ID:                  uuid.NewString(),
			Descripcion:         entrada.Descripcion,
			Evidencias:          evidencias,
			ReportesSecundarios: reportes,
			Estado:              models.ProblemaPendiente,
		})
	}

	inspeccion := models.Inspeccion{
		ObraID:        obra.ID,
		ActividadID:   actividad.ID,
		Fecha:         time.Now(),
		Observaciones: observaciones,
		Estado:        models.InspeccionPendiente,
		Problemas:     problemas,
	}

	if err := database.DB.Create(&inspeccion).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al guardar la inspección")
		return
	}

	if uid := usuarioActual(c); uid != "" {
		database.RegistrarBitacora(uid, "inspeccion", inspeccion.ID, "crear",
			"Inspección creada para la obra: "+obra.NombreObra)
	}

	c.JSON(http.StatusCreated, inspeccion)
}

// actividad con los campos mínimos que muestra la interfaz
type actividadResumen struct {
	ID     string `json:"_id"`
	Nombre string `json:"nombre"`
}

type inspeccionRespuesta struct {
	models.Inspeccion
	Actividad *actividadResumen `json:"actividad,omitempty"`
}

func conActividad(insp models.Inspeccion) inspeccionRespuesta {
	respuesta := inspeccionRespuesta{Inspeccion: insp}
	var actividad models.Actividad
	if err := database.DB.First(&actividad, "id = ?", insp.ActividadID).Error; err == nil {
		respuesta.Actividad = &actividadResumen{ID: actividad.ID, Nombre: actividad.Nombre}
	}
	return respuesta
}

func ListarInspecciones(c *gin.Context) {
	var inspecciones []models.Inspeccion
	if err := database.DB.Where("obra_id = ?", c.Param("id")).
		Order("fecha desc").Find(&inspecciones).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener las inspecciones")
		return
	}

	respuesta := make([]inspeccionRespuesta, 0, len(inspecciones))
	for _, insp := range inspecciones {
		respuesta = append(respuesta, conActividad(insp))
	}
	c.JSON(http.StatusOK, respuesta)
}

func ObtenerInspeccion(c *gin.Context) {
	var inspeccion models.Inspeccion
	if err := database.DB.First(&inspeccion, "id = ?", c.Param("inspeccionId")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Inspección no encontrada")
		return
	}
	c.JSON(http.StatusOK, conActividad(inspeccion))
}

// campos editables de una inspección; todo lo demás se ignora
type actualizarInspeccionPayload struct {
	Estado        *models.EstadoInspeccion `json:"estado"`
	Observaciones *string                  `json:"observaciones"`
}

func ActualizarInspeccion(c *gin.Context) {
	var inspeccion models.Inspeccion
	if err := database.DB.First(&inspeccion, "id = ?", c.Param("inspeccionId")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Inspección no encontrada")
		return
	}

	var payload actualizarInspeccionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de actualización inválidos")
		return
	}

	if payload.Estado != nil {
		if !payload.Estado.EsValido() {
			respondError(c, http.StatusBadRequest, "Estado de inspección inválido")
			return
		}
		inspeccion.Estado = *payload.Estado
	}
	if payload.Observaciones != nil {
		inspeccion.Observaciones = *payload.Observaciones
	}

	if err := database.GuardarInspeccion(&inspeccion); err != nil {
		if errors.Is(err, database.ErrVersionDesactualizada) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "Error al actualizar la inspección")
		return
	}

	c.JSON(http.StatusOK, inspeccion)
}

func EliminarInspeccion(c *gin.Context) {
	var inspeccion models.Inspeccion
	if err := database.DB.First(&inspeccion, "id = ?", c.Param("inspeccionId")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Inspección no encontrada")
		return
	}

	if err := database.DB.Delete(&inspeccion).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al eliminar la inspección")
		return
	}

	if uid := usuarioActual(c); uid != "" {
		database.RegistrarBitacora(uid, "inspeccion", inspeccion.ID, "eliminar",
			"Inspección eliminada")
	}

	respondMensaje(c, http.StatusOK, "Inspección eliminada correctamente")
}
