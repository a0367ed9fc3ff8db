package server

import (
	"net/http"

	"obras-backend/internal/config"
	"obras-backend/internal/handlers"
	"obras-backend/internal/middleware"
	"obras-backend/internal/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	corsgin "github.com/rs/cors/wrapper/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	handlers.Uploads = storage.New(cfg.UploadsDir)

	// los adjuntos se sirven tal cual desde el área pública de uploads
	r.Static("/uploads", cfg.UploadsDir)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("obras_session", store))

	r.Use(middleware.InjectUser())

	// el frontend corre en otro origen
	r.Use(corsgin.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")

	// AUTH
	api.POST("/auth/login", handlers.Login)
	api.POST("/auth/logout", handlers.Logout)
	api.GET("/auth/me", handlers.UsuarioSesion)

	// OBRAS
	api.POST("/obras", handlers.CrearObra)
	api.GET("/obras", handlers.ListarObras)
	api.GET("/obras/:id", handlers.ObtenerObra)
	api.PATCH("/obras/:id", handlers.ActualizarObra)
	api.DELETE("/obras/:id", handlers.EliminarObra)

	// UBICACIONES
	api.GET("/obras/:id/ubicaciones", handlers.ListarUbicaciones)
	api.POST("/obras/:id/ubicaciones", handlers.AgregarUbicacion)

	// CATÁLOGO DE ACTIVIDADES
	api.POST("/actividades", handlers.CrearActividad)
	api.GET("/actividades", handlers.ListarActividades)
	api.GET("/actividades/:id", handlers.ObtenerActividad)
	api.PATCH("/actividades/:id", handlers.ActualizarActividad)
	api.DELETE("/actividades/:id", handlers.EliminarActividad)

	// ACTIVIDADES ASIGNADAS
	api.GET("/obras/:id/actividades", handlers.ListarActividadesDeObra)
	api.POST("/obras/:id/actividades", handlers.AsignarActividadAObra)
	api.PATCH("/obras/:id/actividades/:asignacionId", handlers.ActualizarActividadDeObra)

	// CONTRATOS
	api.POST("/obras/:id/contratos", handlers.CrearContrato)
	api.GET("/obras/:id/contratos", handlers.ListarContratos)
	api.GET("/obras/:id/contratos/:contratoId", handlers.ObtenerContrato)
	api.PATCH("/obras/:id/contratos/:contratoId", handlers.ActualizarContrato)
	api.DELETE("/obras/:id/contratos/:contratoId", handlers.EliminarContrato)

	// INSPECCIONES Y PROBLEMAS
	api.POST("/obras/:id/inspecciones", handlers.CrearInspeccion)
	api.GET("/obras/:id/inspecciones", handlers.ListarInspecciones)
	api.GET("/obras/:id/inspecciones/:inspeccionId", handlers.ObtenerInspeccion)
	api.PATCH("/obras/:id/inspecciones/:inspeccionId", handlers.ActualizarInspeccion)
	api.DELETE("/obras/:id/inspecciones/:inspeccionId", handlers.EliminarInspeccion)
	api.PATCH("/obras/:id/inspecciones/:inspeccionId/problemas/:problemaId", handlers.ActualizarProblema)
	api.DELETE("/obras/:id/inspecciones/:inspeccionId/problemas/:problemaId", handlers.EliminarProblema)
	api.POST("/obras/:id/inspecciones/:inspeccionId/problemas/:problemaId/solucion", handlers.RegistrarSolucion)

	// PRESUPUESTO E INVERSIONES
	api.GET("/obras/:id/presupuesto", handlers.ObtenerPresupuesto)
	api.GET("/inversiones/:categoria", handlers.ObtenerInversion)
	api.POST("/inversiones", handlers.GuardarInversion)

	// BITÁCORA
	api.GET("/bitacora", middleware.RequireAuth(), handlers.ListarBitacora)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
