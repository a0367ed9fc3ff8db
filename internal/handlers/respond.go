package handlers

import (
	"github.com/gin-gonic/gin"

	"obras-backend/internal/storage"
)

// Uploads es el almacén de adjuntos compartido por los handlers; lo
// configura el router a partir de la configuración.
var Uploads *storage.Store

// respondError devuelve el cuerpo de error uniforme de toda la API.
func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func respondMensaje(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}
