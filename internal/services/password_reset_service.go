package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"reservas/internal/domain"
	"reservas/internal/repositories"
	"reservas/internal/utils"
)

const resetTokenPurpose = "password_reset"

// MailSender is satisfied by mail.Mailer.
type MailSender interface {
	Send(to, subject, textBody, htmlBody string) error
}

// PasswordResetService issues and redeems signed, time-boxed reset tokens.
// The request side never reveals whether an account exists: the caller sees
// the same confirmation either way, and mail delivery is best-effort.
type PasswordResetService struct {
	UserRepo  repositories.UserRepository
	Mailer    MailSender
	Secret    []byte
	TTL       time.Duration
	BaseURL   string
	RequestID string

	// Now is swapped in tests to drive expiry.
	Now func() time.Time
}

func (s PasswordResetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s PasswordResetService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return time.Hour
}

// Request starts the flow for a username/email. It always succeeds from the
// caller's point of view; lookups and delivery failures only reach the logs.
func (s PasswordResetService) Request(username string) {
	user, err := s.UserRepo.GetByUsername(username)
	if err != nil {
		utils.LogEvent(s.RequestID, "reset", "solicitud_descartada", "cuenta desconocida o error de consulta")
		return
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		utils.LogEvent(s.RequestID, "reset", "token_error", err.Error())
		return
	}

	url := fmt.Sprintf("%s/reset-password?token=%s", s.BaseURL, token)

	// Fire and forget: the HTTP response never waits on SMTP.
	go func() {
		text := "Para restablecer tu contraseña visita el siguiente enlace (válido por 1 hora):\n\n" + url
		html := fmt.Sprintf(`<p>Para restablecer tu contraseña haz clic <a href="%s">aquí</a>. El enlace es válido por 1 hora.</p>`, url)
		if err := s.Mailer.Send(user.Username, "Restablecimiento de contraseña", text, html); err != nil {
			utils.LogEvent(s.RequestID, "reset", "envio_fallido", err.Error())
			return
		}
		utils.LogEvent(s.RequestID, "reset", "correo_enviado", "user_id="+strconv.FormatInt(user.ID, 10))
	}()
}

// IssueToken signs a purpose-scoped token binding the user id, valid for TTL.
func (s PasswordResetService) IssueToken(userID int64) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":     strconv.FormatInt(userID, 10),
		"purpose": resetTokenPurpose,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl()).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// VerifyToken checks signature, purpose and freshness. Expired and tampered
// tokens come back as the same error on purpose.
func (s PasswordResetService) VerifyToken(tokenString string) (int64, error) {
	parsed, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return 0, domain.ErrInvalidResetToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidResetToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != resetTokenPurpose {
		return 0, domain.ErrInvalidResetToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return 0, domain.ErrInvalidResetToken
	}
	return userID, nil
}

// Reset redeems a token and replaces the credential.
func (s PasswordResetService) Reset(tokenString, password, confirm string) error {
	userID, err := s.VerifyToken(tokenString)
	if err != nil {
		return err
	}

	if len(password) < 6 {
		return domain.ValidationError{Field: "password", Msg: "la contraseña debe tener al menos 6 caracteres"}
	}
	if password != confirm {
		return domain.ValidationError{Field: "confirm_password", Msg: "las contraseñas no coinciden"}
	}

	// The account may have been removed since the token was issued.
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "no se pudo procesar la contraseña", Err: err}
	}

	if err := s.UserRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "reset", "completado", "user_id="+strconv.FormatInt(userID, 10))
	return nil
}
