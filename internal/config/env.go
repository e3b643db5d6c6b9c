package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether outbound mail can be attempted at all.
func (s SMTP) Configured() bool {
	return s.Host != "" && s.Port > 0 && s.From != ""
}

type Env struct {
	AppAddr string
	GinMode string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	UploadDir     string
	PublicBaseURL string

	JWTSecret        string
	ResetTokenTTL    int // seconds
	ReservationLimit int

	SMTP SMTP

	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := Env{
		AppAddr:    getDefault("APP_ADDR", ":8080"),
		GinMode:    strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBHost:     getDefault("DB_HOST", "127.0.0.1"),
		DBPort:     getDefault("DB_PORT", "3306"),
		DBUser:     getDefault("DB_USER", "root"),
		DBPassword: strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBName:     getDefault("DB_NAME", "reservasdb"),

		UploadDir:     getDefault("UPLOAD_DIR", "static/img"),
		PublicBaseURL: getDefault("PUBLIC_BASE_URL", "http://localhost:8080"),

		JWTSecret:        getDefault("JWT_SECRET", "dev-secret-key"),
		ResetTokenTTL:    getIntDefault("RESET_TOKEN_TTL", 3600),
		ReservationLimit: getIntDefault("RESERVATION_LIMIT", 7),

		SMTP: SMTP{
			Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Port:     getIntDefault("SMTP_PORT", 587),
			Username: strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     strings.TrimSpace(os.Getenv("SMTP_FROM")),
		},
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	}
	if len(env.CORSAllowedOrigins) == 0 {
		env.CORSAllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}

	return env
}

func getDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
