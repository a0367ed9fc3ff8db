package handlers

import (
	"errors"
	"net/http"
	"time"

	"obras-backend/internal/database"
	"obras-backend/internal/models"
	"obras-backend/internal/presupuesto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//
// CRUD DE OBRAS
//

type crearObraPayload struct {
	NombreObra               string             `json:"nombreObra"`
	CapacidadInfraestructura string             `json:"capacidadInfraestructura"`
	Categoria                string             `json:"categoria"`
	DescripcionObra          string             `json:"descripcionObra"`
	EstadoObra               string             `json:"estadoObra"`
	TipoIntervencion         string             `json:"tipoIntervencion"`
	CUP                      string             `json:"cup"`
	Ubicaciones              []models.Ubicacion `json:"ubicaciones"`
	FechaInicio              time.Time          `json:"fecha_inicio"`
	FechaFin                 *time.Time         `json:"fecha_fin"`
	Presupuesto              float64            `json:"presupuesto"`
}

func CrearObra(c *gin.Context) {
	var payload crearObraPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de la obra inválidos")
		return
	}

	if payload.NombreObra == "" || payload.Categoria == "" ||
		payload.TipoIntervencion == "" || payload.EstadoObra == "" {
		respondError(c, http.StatusBadRequest, "Faltan campos obligatorios de la obra")
		return
	}

	ubicaciones := make([]models.Ubicacion, 0, len(payload.Ubicaciones))
	for _, u := range payload.Ubicaciones {
		u.ID = uuid.NewString()
		u.FechaRegistro = time.Now()
		ubicaciones = append(ubicaciones, u)
	}

	obra := models.Obra{
		NombreObra:               payload.NombreObra,
		CapacidadInfraestructura: payload.CapacidadInfraestructura,
		Categoria:                payload.Categoria,
		DescripcionObra:          payload.DescripcionObra,
		EstadoObra:               payload.EstadoObra,
		TipoIntervencion:         payload.TipoIntervencion,
		CUP:                      payload.CUP,
		Ubicaciones:              ubicaciones,
		Actividades:              []models.ActividadAsignada{},
		FechaInicio:              payload.FechaInicio,
		FechaFin:                 payload.FechaFin,
		Presupuesto:              payload.Presupuesto,
	}

	if err := database.DB.Create(&obra).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al guardar la obra")
		return
	}

	if uid := usuarioActual(c); uid != "" {
		database.RegistrarBitacora(uid, "obra", obra.ID, "crear", "Obra creada: "+obra.NombreObra)
	}

	c.JSON(http.StatusCreated, obra)
}

func ListarObras(c *gin.Context) {
	var obras []models.Obra
	if err := database.DB.Order("created_at desc").Find(&obras).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener las obras")
		return
	}
	c.JSON(http.StatusOK, obras)
}

func ObtenerObra(c *gin.Context) {
	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}
	c.JSON(http.StatusOK, obra)
}

// actualización parcial: solo los campos presentes en el cuerpo se
// aplican; el resto de la obra queda intacto
type actualizarObraPayload struct {
	NombreObra               *string             `json:"nombreObra"`
	CapacidadInfraestructura *string             `json:"capacidadInfraestructura"`
	Categoria                *string             `json:"categoria"`
	DescripcionObra          *string             `json:"descripcionObra"`
	EstadoObra               *string             `json:"estadoObra"`
	TipoIntervencion         *string             `json:"tipoIntervencion"`
	CUP                      *string             `json:"cup"`
	Ubicaciones              *[]models.Ubicacion `json:"ubicaciones"`
	FechaInicio              *time.Time          `json:"fecha_inicio"`
	FechaFin                 *time.Time          `json:"fecha_fin"`
	Presupuesto              *float64            `json:"presupuesto"`
	DevengadoTotal           *float64            `json:"devengadoTotal"`
	PorcentajeAvance         *float64            `json:"porcentajeAvance"`
	PonderacionActiva        *bool               `json:"ponderacionActiva"`
}

func ActualizarObra(c *gin.Context) {
	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}

	var payload actualizarObraPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de actualización inválidos")
		return
	}

	if payload.NombreObra != nil {
		obra.NombreObra = *payload.NombreObra
	}
	if payload.CapacidadInfraestructura != nil {
		obra.CapacidadInfraestructura = *payload.CapacidadInfraestructura
	}
	if payload.Categoria != nil {
		obra.Categoria = *payload.Categoria
	}
	if payload.DescripcionObra != nil {
		obra.DescripcionObra = *payload.DescripcionObra
	}
	if payload.EstadoObra != nil {
		obra.EstadoObra = *payload.EstadoObra
	}
	if payload.TipoIntervencion != nil {
		obra.TipoIntervencion = *payload.TipoIntervencion
	}
	if payload.CUP != nil {
		obra.CUP = *payload.CUP
	}
	if payload.Ubicaciones != nil {
		obra.Ubicaciones = *payload.Ubicaciones
	}
	if payload.FechaInicio != nil {
		obra.FechaInicio = *payload.FechaInicio
	}
	if payload.FechaFin != nil {
		obra.FechaFin = payload.FechaFin
	}
	if payload.Presupuesto != nil {
		obra.Presupuesto = *payload.Presupuesto
	}
	if payload.DevengadoTotal != nil {
		obra.DevengadoTotal = payload.DevengadoTotal
	}
	if payload.PonderacionActiva != nil {
		obra.PonderacionActiva = *payload.PonderacionActiva
	}

	// el porcentaje de avance se deriva siempre que exista la inversión
	// de la categoría; el valor enviado por el cliente solo se acepta
	// cuando no hay inversión registrada contra la cual recalcular
	var inv models.Inversion
	err := database.DB.Where("categoria = ?", obra.Categoria).First(&inv).Error
	switch {
	case err == nil:
		obra.PorcentajeAvance = presupuesto.CalcularPorcentaje(obra.DevengadoTotal, inv.Inversion)
	case errors.Is(err, gorm.ErrRecordNotFound):
		if payload.PorcentajeAvance != nil {
			obra.PorcentajeAvance = *payload.PorcentajeAvance
		}
	default:
		respondError(c, http.StatusInternalServerError, "Error al consultar la inversión")
		return
	}

	if err := database.DB.Save(&obra).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al actualizar la obra")
		return
	}

	if uid := usuarioActual(c); uid != "" {
		database.RegistrarBitacora(uid, "obra", obra.ID, "actualizar", "Obra actualizada: "+obra.NombreObra)
	}

	c.JSON(http.StatusOK, obra)
}

// EliminarObra archiva la obra y, en la misma transacción, sus contratos
// e inspecciones. Borrado lógico: los registros quedan con marca de
// eliminación, nunca se pierden.
func EliminarObra(c *gin.Context) {
	id := c.Param("id")

	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("obra_id = ?", id).Delete(&models.Contrato{}).Error; err != nil {
			return err
		}
		if err := tx.Where("obra_id = ?", id).Delete(&models.Inspeccion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&obra).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al eliminar la obra")
		return
	}

	if uid := usuarioActual(c); uid != "" {
		database.RegistrarBitacora(uid, "obra", obra.ID, "eliminar", "Obra eliminada: "+obra.NombreObra)
	}

	respondMensaje(c, http.StatusOK, "Obra eliminada correctamente")
}

//
// UBICACIONES DE LA OBRA
//

type agregarUbicacionPayload struct {
	Nombre   string  `json:"nombre"`
	Latitud  float64 `json:"latitud"`
	Longitud float64 `json:"longitud"`
}

func ListarUbicaciones(c *gin.Context) {
	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}
	c.JSON(http.StatusOK, obra.Ubicaciones)
}

func AgregarUbicacion(c *gin.Context) {
	var obra models.Obra
	if err := database.DB.First(&obra, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Obra no encontrada")
		return
	}

	var payload agregarUbicacionPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Nombre == "" {
		respondError(c, http.StatusBadRequest, "Datos de la ubicación inválidos")
		return
	}

	ubicacion := models.Ubicacion{
		ID:            uuid.NewString(),
		Nombre:        payload.Nombre,
		Latitud:       payload.Latitud,
		Longitud:      payload.Longitud,
		FechaRegistro: time.Now(),
	}
	obra.Ubicaciones = append(obra.Ubicaciones, ubicacion)

	if err := database.DB.Save(&obra).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al guardar la ubicación")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Ubicación añadida correctamente",
		"ubicacion": ubicacion,
	})
}
