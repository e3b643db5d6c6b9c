package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"reservas/internal/domain"
	"reservas/internal/http/middleware"
	"reservas/internal/mail"
	"reservas/internal/repositories"
	"reservas/internal/services"
)

// AuthUser is the user payload returned on login/register.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := repositories.UserRepository{}.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		// Same message whether the account or the password was wrong.
		RespondError(c, http.StatusUnauthorized, "usuario o contraseña incorrectos", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "usuario o contraseña incorrectos", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(env.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudo generar el token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  AuthUser{ID: user.ID, Username: user.Username, Role: user.Role},
	})
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" || req.ConfirmPassword == "" {
		RespondError(c, http.StatusBadRequest, "completa todos los campos", nil)
		return
	}
	if req.Password != req.ConfirmPassword {
		RespondError(c, http.StatusBadRequest, "las contraseñas no coinciden", nil)
		return
	}
	if len(req.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "la contraseña debe tener al menos 6 caracteres", nil)
		return
	}

	repo := repositories.UserRepository{}
	exists, err := repo.ExistsByUsername(req.Username)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudo comprobar el usuario", err)
		return
	}
	if exists {
		RespondError(c, http.StatusBadRequest, "el usuario ya existe", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudo procesar la contraseña", err)
		return
	}

	id, err := repo.Create(req.Username, string(hash), domain.RoleUser)
	if err != nil {
		// A concurrent registration may land between the exists check and
		// the insert; the unique key reports it as a conflict.
		if domain.IsConflict(err) {
			RespondError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "no se pudo guardar el usuario", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registro exitoso",
		"user":    AuthUser{ID: id, Username: req.Username, Role: domain.RoleUser},
	})
}

func resetService(c *gin.Context) services.PasswordResetService {
	return services.PasswordResetService{
		UserRepo:  repositories.UserRepository{},
		Mailer:    mail.New(env.SMTP),
		Secret:    []byte(env.JWTSecret),
		TTL:       time.Duration(env.ResetTokenTTL) * time.Second,
		BaseURL:   env.PublicBaseURL,
		RequestID: middleware.GetRequestID(c),
	}
}

type forgotPasswordRequest struct {
	Username string `json:"username"`
}

// POST /api/auth/forgot-password
//
// The response is identical whether or not the account exists.
func ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		RespondError(c, http.StatusBadRequest, "indica tu usuario o correo", nil)
		return
	}

	resetService(c).Request(strings.TrimSpace(req.Username))

	c.JSON(http.StatusOK, gin.H{
		"message": "si la cuenta existe, recibirás instrucciones para restablecer tu contraseña",
	})
}

// GET /api/auth/reset-password?token=...
//
// Lets the frontend validate the link before showing the password form.
func VerifyResetToken(c *gin.Context) {
	if _, err := resetService(c).VerifyToken(c.Query("token")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// POST /api/auth/reset-password
func ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := resetService(c).Reset(req.Token, req.Password, req.ConfirmPassword); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contraseña actualizada, ya puedes iniciar sesión"})
}
