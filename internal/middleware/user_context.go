package middleware

import (
	"obras-backend/internal/database"
	"obras-backend/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// InjectUser carga el usuario de la sesión en el contexto de la
// petición para atribuir los movimientos de la bitácora.
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(string); ok && uid != "" {
				var usuario models.Usuario
				if err := database.DB.First(&usuario, "id = ?", uid).Error; err == nil {
					c.Set("CurrentUser", usuario)
				}
			}
		}

		c.Next()
	}
}
