package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"obras-backend/internal/config"
	"obras-backend/internal/database"
	"obras-backend/internal/models"
	"obras-backend/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func nuevoServidor(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "obras.db")), &gorm.Config{})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, database.Migrar())

	cfg := &config.Config{
		ServerPort:    "8080",
		SessionSecret: "secreto-de-prueba",
		UploadsDir:    t.TempDir(),
	}
	return server.NewRouter(cfg)
}

func peticionJSON(t *testing.T, r http.Handler, metodo, ruta string, cuerpo any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if cuerpo != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(cuerpo))
	}
	req := httptest.NewRequest(metodo, ruta, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodificar(t *testing.T, w *httptest.ResponseRecorder, destino any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), destino))
}

func crearObraDePrueba(t *testing.T, r http.Handler, categoria string) models.Obra {
	t.Helper()
	w := peticionJSON(t, r, http.MethodPost, "/api/obras", gin.H{
		"nombreObra":               "Puente sobre el río Verde",
		"capacidadInfraestructura": "2 carriles",
		"categoria":                categoria,
		"descripcionObra":          "Construcción de puente vehicular",
		"estadoObra":               "En ejecución",
		"tipoIntervencion":         "Construcción",
		"fecha_inicio":             "2025-03-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var obra models.Obra
	decodificar(t, w, &obra)
	require.NotEmpty(t, obra.ID)
	return obra
}

func crearActividadDePrueba(t *testing.T, r http.Handler, nombre string) models.Actividad {
	t.Helper()
	w := peticionJSON(t, r, http.MethodPost, "/api/actividades", gin.H{
		"nombre":      nombre,
		"descripcion": "Actividad del cronograma",
		"fechaInicio": "2025-03-01T00:00:00Z",
		"fechaFin":    "2025-06-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var actividad models.Actividad
	decodificar(t, w, &actividad)
	return actividad
}
