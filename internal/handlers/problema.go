package handlers

import (
	"errors"
	"net/http"
	"time"

	"obras-backend/internal/database"
	"obras-backend/internal/models"

	"github.com/gin-gonic/gin"
)

//
// PROBLEMAS DENTRO DE UNA INSPECCIÓN
//
// El problema se localiza siempre dentro de su inspección, y la
// inspección por (id Y obra): un par que no coincide devuelve 404 aunque
// la inspección exista bajo otra obra.
//

// buscarInspeccionDeObra aplica la verificación de contención.
func buscarInspeccionDeObra(c *gin.Context) (*models.Inspeccion, bool) {
	var inspeccion models.Inspeccion
	err := database.DB.
		Where("id = ? AND obra_id = ?", c.Param("inspeccionId"), c.Param("id")).
		First(&inspeccion).Error
	if err != nil {
		respondError(c, http.StatusNotFound, "Inspección no encontrada")
		return nil, false
	}
	return &inspeccion, true
}

// la fecha llega del formulario como día simple o como marca completa
func parseFecha(valor string) time.Time {
	if t, err := time.Parse("2006-01-02", valor); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, valor); err == nil {
		return t
	}
	return time.Now()
}

func ActualizarProblema(c *gin.Context) {
	inspeccion, ok := buscarInspeccionDeObra(c)
	if !ok {
		return
	}

	indice := inspeccion.BuscarProblema(c.Param("problemaId"))
	if indice == -1 {
		respondError(c, http.StatusNotFound, "Problema no encontrado")
		return
	}
	problema := &inspeccion.Problemas[indice]

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Formulario del problema inválido")
		return
	}

	estado := models.EstadoProblema(c.PostForm("estado"))
	if !estado.EsValido() {
		respondError(c, http.StatusBadRequest, "Estado del problema inválido")
		return
	}

	problema.Descripcion = c.PostForm("descripcion")
	problema.Estado = estado

	// si vienen campos de solución, la solución anterior se reemplaza
	// completa; registrar una solución no fuerza el estado a Resuelto
	if solucionDescripcion := c.PostForm("solucion[descripcion]"); solucionDescripcion != "" {
		documentos, err := Uploads.GuardarTodos(form.File["solucion[documentos]"])
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Error al guardar los documentos de la solución")
			return
		}

		problema.Solucion = &models.Solucion{
			Descripcion:         solucionDescripcion,
			Responsable:         c.PostForm("solucion[responsable]"),
			FechaImplementacion: parseFecha(c.PostForm("solucion[fechaImplementacion]")),
			Documentos:          documentos,
		}
	}

	if err := database.GuardarInspeccion(inspeccion); err != nil {
		if errors.Is(err, database.ErrVersionDesactualizada) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "Error al actualizar el problema")
		return
	}

	c.JSON(http.StatusOK, problema)
}

func EliminarProblema(c *gin.Context) {
	inspeccion, ok := buscarInspeccionDeObra(c)
	if !ok {
		return
	}

	indice := inspeccion.BuscarProblema(c.Param("problemaId"))
	if indice == -1 {
		respondError(c, http.StatusNotFound, "Problema no encontrado")
		return
	}

	inspeccion.Problemas = append(inspeccion.Problemas[:indice], inspeccion.Problemas[indice+1:]...)

	if err := database.GuardarInspeccion(inspeccion); err != nil {
		if errors.Is(err, database.ErrVersionDesactualizada) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "Error al eliminar el problema")
		return
	}

	respondMensaje(c, http.StatusOK, "Problema eliminado correctamente")
}

// RegistrarSolucion deja constancia de la solución de un problema junto
// con sus evidencias de respaldo.
func RegistrarSolucion(c *gin.Context) {
	inspeccion, ok := buscarInspeccionDeObra(c)
	if !ok {
		return
	}

	indice := inspeccion.BuscarProblema(c.Param("problemaId"))
	if indice == -1 {
		respondError(c, http.StatusNotFound, "Problema no encontrado")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Formulario de la solución inválido")
		return
	}

	descripcion := c.PostForm("descripcion")
	if descripcion == "" {
		respondError(c, http.StatusBadRequest, "Debe describir la solución")
		return
	}

	documentos, err := Uploads.GuardarTodos(form.File["evidencias"])
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al guardar las evidencias de la solución")
		return
	}

	inspeccion.Problemas[indice].Solucion = &models.Solucion{
		Descripcion:         descripcion,
		Responsable:         c.PostForm("responsable"),
		FechaImplementacion: parseFecha(c.PostForm("fechaImplementacion")),
		Documentos:          documentos,
	}

	if err := database.GuardarInspeccion(inspeccion); err != nil {
		if errors.Is(err, database.ErrVersionDesactualizada) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "Error al registrar la solución")
		return
	}

	respondMensaje(c, http.StatusCreated, "Solución registrada correctamente")
}
