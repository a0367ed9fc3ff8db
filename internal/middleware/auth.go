package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth protege las rutas que exigen sesión iniciada (la
// bitácora); las rutas de negocio quedan abiertas como siempre.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID := sess.Get("user_id")
		if userID == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Debe iniciar sesión"})
			return
		}
		c.Next()
	}
}
