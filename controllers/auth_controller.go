package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"automotora-api/auth"
	"automotora-api/models"
	"automotora-api/utils"
)

type AuthController struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthController(db *gorm.DB, jwtSecret string) *AuthController {
	return &AuthController{db: db, jwtSecret: jwtSecret}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Email y contraseña son requeridos")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.SendError(c, http.StatusBadRequest, "Email y contraseña son requeridos")
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	if !user.Active {
		utils.SendError(c, http.StatusForbidden, "Usuario desactivado. Contacte al administrador.")
		return
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		utils.SendError(c, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	token, err := auth.GenerateToken(ac.jwtSecret, user.ID, user.Email, user.Role)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Error al generar token de autenticación")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login exitoso",
		"token":   token,
		"usuario": user,
	})
}

// Logout is stateless: the client discards its token. Kept as an
// endpoint so the dashboard has something to call.
func (ac *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sesión cerrada exitosamente",
	})
}

// Me returns the account behind the presented token.
func (ac *AuthController) Me(c *gin.Context) {
	token := auth.ExtractToken(c.GetHeader("Authorization"))
	if token == "" {
		utils.SendError(c, http.StatusUnauthorized, "No autorizado. Token requerido.")
		return
	}

	claims, err := auth.VerifyToken(ac.jwtSecret, token)
	if err != nil {
		utils.SendError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var user models.User
	if err := ac.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Usuario no encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"usuario": user,
	})
}
