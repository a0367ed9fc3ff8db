package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"obras-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// peticionMultipart arma y envía un formulario multipart; archivos mapea
// nombre de campo → nombre de archivo (el contenido es fijo).
func peticionMultipart(t *testing.T, r http.Handler, metodo, ruta string, campos map[string]string, archivos map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for nombre, valor := range campos {
		require.NoError(t, mw.WriteField(nombre, valor))
	}
	for campo, archivo := range archivos {
		fw, err := mw.CreateFormFile(campo, archivo)
		require.NoError(t, err)
		_, err = fw.Write([]byte("contenido de prueba"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(metodo, ruta, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func crearInspeccionDePrueba(t *testing.T, r http.Handler, obraID, actividadID string) models.Inspeccion {
	t.Helper()

	w := peticionMultipart(t, r, http.MethodPost, "/api/obras/"+obraID+"/inspecciones",
		map[string]string{
			"actividadId":   actividadID,
			"observaciones": "Inspección de rutina",
			"problemas":     `[{"descripcion":"Fisura en viga principal"},{"descripcion":"Acero de refuerzo expuesto"}]`,
		},
		map[string]string{
			"problema0_evidencia": "fisura.jpg",
			"problema1_evidencia": "acero.jpg",
		})
	require.Equal(t, http.StatusCreated, w.Code)

	var inspeccion models.Inspeccion
	decodificar(t, w, &inspeccion)
	return inspeccion
}

func TestCrearInspeccionConProblemas(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")
	actividad := crearActividadDePrueba(t, r, "Fundición de vigas")

	inspeccion := crearInspeccionDePrueba(t, r, obra.ID, actividad.ID)

	assert.Equal(t, obra.ID, inspeccion.ObraID)
	assert.Equal(t, models.InspeccionPendiente, inspeccion.Estado)
	require.Len(t, inspeccion.Problemas, 2)
	for _, problema := range inspeccion.Problemas {
		assert.NotEmpty(t, problema.ID)
		assert.Equal(t, models.ProblemaPendiente, problema.Estado)
		require.Len(t, problema.Evidencias, 1)
		assert.True(t, strings.HasPrefix(problema.Evidencias[0], "/uploads/"),
			"la evidencia debe quedar bajo /uploads/: %s", problema.Evidencias[0])
	}
}

func TestCrearInspeccionSinActividad(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")

	w := peticionMultipart(t, r, http.MethodPost, "/api/obras/"+obra.ID+"/inspecciones",
		map[string]string{
			"actividadId":   "00000000-0000-0000-0000-000000000000",
			"observaciones": "sin actividad",
		}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListarInspecciones(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")
	actividad := crearActividadDePrueba(t, r, "Compactación de subrasante")

	crearInspeccionDePrueba(t, r, obra.ID, actividad.ID)

	w := peticionJSON(t, r, http.MethodGet, "/api/obras/"+obra.ID+"/inspecciones", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var inspecciones []struct {
		Actividad *struct {
			Nombre string `json:"nombre"`
		} `json:"actividad"`
	}
	decodificar(t, w, &inspecciones)
	require.Len(t, inspecciones, 1)
	require.NotNil(t, inspecciones[0].Actividad)
	assert.Equal(t, "Compactación de subrasante", inspecciones[0].Actividad.Nombre)

	// obra sin inspecciones: lista vacía, no error
	otra := crearObraDePrueba(t, r, "Parques")
	w = peticionJSON(t, r, http.MethodGet, "/api/obras/"+otra.ID+"/inspecciones", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestTransicionesDeEstadoSinOrden(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")
	actividad := crearActividadDePrueba(t, r, "Señalización")
	inspeccion := crearInspeccionDePrueba(t, r, obra.ID, actividad.ID)

	ruta := "/api/obras/" + obra.ID + "/inspecciones/" + inspeccion.ID

	// salto directo y retroceso, ambos permitidos
	for _, estado := range []string{"Completada", "Pendiente", "En Proceso"} {
		w := peticionJSON(t, r, http.MethodPatch, ruta, gin.H{"estado": estado})
		require.Equal(t, http.StatusOK, w.Code, "transición a %s", estado)

		var actualizada models.Inspeccion
		decodificar(t, w, &actualizada)
		assert.Equal(t, models.EstadoInspeccion(estado), actualizada.Estado)
	}

	w := peticionJSON(t, r, http.MethodPatch, ruta, gin.H{"estado": "Cancelada"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActualizarProblema(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")
	actividad := crearActividadDePrueba(t, r, "Fundición de vigas")
	inspeccion := crearInspeccionDePrueba(t, r, obra.ID, actividad.ID)

	problema := inspeccion.Problemas[0]
	ruta := fmt.Sprintf("/api/obras/%s/inspecciones/%s/problemas/%s", obra.ID, inspeccion.ID, problema.ID)

	campos := map[string]string{
		"descripcion": "Fisura en viga principal, tramo 2",
		"estado":      "En Proceso",
	}

	w := peticionMultipart(t, r, http.MethodPatch, ruta, campos, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var actualizado models.Problema
	decodificar(t, w, &actualizado)
	assert.Equal(t, models.ProblemaEnProceso, actualizado.Estado)
	assert.Equal(t, "Fisura en viga principal, tramo 2", actualizado.Descripcion)

	// repetir el mismo parche deja el mismo estado almacenado
	w = peticionMultipart(t, r, http.MethodPatch, ruta, campos, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = peticionJSON(t, r, http.MethodGet, "/api/obras/"+obra.ID+"/inspecciones/"+inspeccion.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var guardada models.Inspeccion
	decodificar(t, w, &guardada)
	indice := guardada.BuscarProblema(problema.ID)
	require.NotEqual(t, -1, indice)
	assert.Equal(t, models.ProblemaEnProceso, guardada.Problemas[indice].Estado)
	assert.Equal(t, "Fisura en viga principal, tramo 2", guardada.Problemas[indice].Descripcion)
}

func TestActualizarProblemaConSolucion(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")
	actividad := crearActividadDePrueba(t, r, "Fundición de vigas")
	inspeccion := crearInspeccionDePrueba(t, r, obra.ID, actividad.ID)

	problema := inspeccion.Problemas[0]
	ruta := fmt.Sprintf("/api/obras/%s/inspecciones/%s/problemas/%s", obra.ID, inspeccion.ID, problema.ID)

	w := peticionMultipart(t, r, http.MethodPatch, ruta,
		map[string]string{
			"descripcion":                   problema.Descripcion,
			"estado":                        "En Proceso",
			"solucion[descripcion]":         "Inyección de resina epóxica",
			"solucion[responsable]":         "Ing. Morales",
			"solucion[fechaImplementacion]": "2025-07-15",
		},
		map[string]string{
			"solucion[documentos]": "informe-reparacion.pdf",
		})
	require.Equal(t, http.StatusOK, w.Code)

	var actualizado models.Problema
	decodificar(t, w, &actualizado)
	require.NotNil(t, actualizado.Solucion)
	assert.Equal(t, "Inyección de resina epóxica", actualizado.Solucion.Descripcion)
	assert.Equal(t, "Ing. Morales", actualizado.Solucion.Responsable)
	require.Len(t, actualizado.Solucion.Documentos, 1)
	assert.True(t, strings.HasPrefix(actualizado.Solucion.Documentos[0], "/uploads/"))

	// registrar la solución no fuerza el estado a Resuelto
	assert.Equal(t, models.ProblemaEnProceso, actualizado.Estado)
}

func TestContencionDeProblema(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")
	otraObra := crearObraDePrueba(t, r, "Hospitales")
	actividad := crearActividadDePrueba(t, r, "Fundición de vigas")
	inspeccion := crearInspeccionDePrueba(t, r, obra.ID, actividad.ID)

	problema := inspeccion.Problemas[0]

	// problemaId válido pero bajo la obra equivocada: 404, no el problema
	ruta := fmt.Sprintf("/api/obras/%s/inspecciones/%s/problemas/%s", otraObra.ID, inspeccion.ID, problema.ID)
	w := peticionMultipart(t, r, http.MethodPatch, ruta,
		map[string]string{"descripcion": "x", "estado": "Resuelto"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEliminarProblema(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")
	actividad := crearActividadDePrueba(t, r, "Fundición de vigas")
	inspeccion := crearInspeccionDePrueba(t, r, obra.ID, actividad.ID)

	problema := inspeccion.Problemas[0]
	ruta := fmt.Sprintf("/api/obras/%s/inspecciones/%s/problemas/%s", obra.ID, inspeccion.ID, problema.ID)

	w := peticionJSON(t, r, http.MethodDelete, ruta, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = peticionJSON(t, r, http.MethodGet, "/api/obras/"+obra.ID+"/inspecciones/"+inspeccion.ID, nil)
	var guardada models.Inspeccion
	decodificar(t, w, &guardada)
	assert.Len(t, guardada.Problemas, 1)
	assert.Equal(t, -1, guardada.BuscarProblema(problema.ID))

	// el problema ya no existe: 404, no una respuesta silenciosa
	w = peticionJSON(t, r, http.MethodDelete, ruta, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistrarSolucion(t *testing.T) {
	r := nuevoServidor(t)
	obra := crearObraDePrueba(t, r, "Vialidad")
	actividad := crearActividadDePrueba(t, r, "Fundición de vigas")
	inspeccion := crearInspeccionDePrueba(t, r, obra.ID, actividad.ID)

	problema := inspeccion.Problemas[1]
	ruta := fmt.Sprintf("/api/obras/%s/inspecciones/%s/problemas/%s/solucion", obra.ID, inspeccion.ID, problema.ID)

	w := peticionMultipart(t, r, http.MethodPost, ruta,
		map[string]string{
			"descripcion":         "Recubrimiento del acero expuesto",
			"responsable":         "Ing. Cevallos",
			"fechaImplementacion": "2025-08-01",
		},
		map[string]string{
			"evidencias": "foto-final.jpg",
		})
	require.Equal(t, http.StatusCreated, w.Code)

	w = peticionJSON(t, r, http.MethodGet, "/api/obras/"+obra.ID+"/inspecciones/"+inspeccion.ID, nil)
	var guardada models.Inspeccion
	decodificar(t, w, &guardada)
	indice := guardada.BuscarProblema(problema.ID)
	require.NotEqual(t, -1, indice)
	require.NotNil(t, guardada.Problemas[indice].Solucion)
	assert.Equal(t, "Recubrimiento del acero expuesto", guardada.Problemas[indice].Solucion.Descripcion)
	// el estado sigue siendo independiente de la solución
	assert.Equal(t, models.ProblemaPendiente, guardada.Problemas[indice].Estado)
}
