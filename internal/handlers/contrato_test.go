package handlers_test

import (
	"net/http"
	"testing"

	"obras-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContratoIdaYVuelta(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Hospitales")

	w := peticionJSON(t, r, http.MethodPost, "/api/obras/"+obra.ID+"/contratos", gin.H{
		"tipoContrato":          "Principal",
		"nombreContratista":     "Constructora del Pacífico",
		"monto":                 120000.50,
		"fechaContrato":         "2025-05-10T00:00:00Z",
		"fuenteFinanciamiento":  "Crédito externo",
		"entidadFinanciamiento": "BID",
		"avanceContrato":        15,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = peticionJSON(t, r, http.MethodGet, "/api/obras/"+obra.ID+"/contratos", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var contratos []models.Contrato
	decodificar(t, w, &contratos)
	require.Len(t, contratos, 1)

	contrato := contratos[0]
	assert.NotEmpty(t, contrato.ID)
	assert.Equal(t, obra.ID, contrato.ObraID)
	assert.Equal(t, models.ContratoPrincipal, contrato.TipoContrato)
	assert.Equal(t, "Constructora del Pacífico", contrato.NombreContratista)
	assert.Equal(t, 120000.50, contrato.Monto)
	assert.Equal(t, models.FuenteCreditoExterno, contrato.FuenteFinanciamiento)
	assert.Equal(t, "BID", contrato.EntidadFinanciamiento)
	assert.Equal(t, 15.0, contrato.AvanceContrato)
}

func TestContratoInvalido(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")

	// tipo fuera del catálogo
	w := peticionJSON(t, r, http.MethodPost, "/api/obras/"+obra.ID+"/contratos", gin.H{
		"tipoContrato":         "Accesorio",
		"nombreContratista":    "Constructora Andina",
		"fuenteFinanciamiento": "Recursos Fiscales",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// avance fuera de rango
	w = peticionJSON(t, r, http.MethodPost, "/api/obras/"+obra.ID+"/contratos", gin.H{
		"tipoContrato":         "Principal",
		"nombreContratista":    "Constructora Andina",
		"fuenteFinanciamiento": "Recursos Fiscales",
		"avanceContrato":       120,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActualizarYEliminarContrato(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")

	w := peticionJSON(t, r, http.MethodPost, "/api/obras/"+obra.ID+"/contratos", gin.H{
		"tipoContrato":         "Otros",
		"nombreContratista":    "Fiscalizadora Nacional",
		"monto":                8000,
		"fechaContrato":        "2025-02-01T00:00:00Z",
		"fuenteFinanciamiento": "Recursos Fiscales",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var contrato models.Contrato
	decodificar(t, w, &contrato)

	ruta := "/api/obras/" + obra.ID + "/contratos/" + contrato.ID

	w = peticionJSON(t, r, http.MethodPatch, ruta, gin.H{"avanceContrato": 40})
	require.Equal(t, http.StatusOK, w.Code)

	var actualizado models.Contrato
	decodificar(t, w, &actualizado)
	assert.Equal(t, 40.0, actualizado.AvanceContrato)
	assert.Equal(t, contrato.NombreContratista, actualizado.NombreContratista)

	w = peticionJSON(t, r, http.MethodDelete, ruta, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = peticionJSON(t, r, http.MethodGet, ruta, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContratoInexistente(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")

	w := peticionJSON(t, r, http.MethodPatch,
		"/api/obras/"+obra.ID+"/contratos/00000000-0000-0000-0000-000000000000",
		gin.H{"avanceContrato": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
