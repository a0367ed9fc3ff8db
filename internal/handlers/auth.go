package handlers

import (
	"net/http"

	"obras-backend/internal/database"
	"obras-backend/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// usuarioActual devuelve el id del usuario de la sesión, o cadena vacía
// si nadie inició sesión. Solo alimenta la bitácora: la API no exige
// autenticación en las rutas de negocio.
func usuarioActual(c *gin.Context) string {
	sess := sessions.Default(c)
	if id, ok := sess.Get("user_id").(string); ok {
		return id
	}
	return ""
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Credenciales inválidas")
		return
	}

	var usuario models.Usuario
	if err := database.DB.Where("username = ?", payload.Username).First(&usuario).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(payload.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", usuario.ID)
	_ = sess.Save()

	c.JSON(http.StatusOK, usuario)
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	respondMensaje(c, http.StatusOK, "Sesión cerrada")
}

func UsuarioSesion(c *gin.Context) {
	uid := usuarioActual(c)
	if uid == "" {
		respondError(c, http.StatusUnauthorized, "No hay sesión activa")
		return
	}

	var usuario models.Usuario
	if err := database.DB.First(&usuario, "id = ?", uid).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "No hay sesión activa")
		return
	}
	c.JSON(http.StatusOK, usuario)
}
