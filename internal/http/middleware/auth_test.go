package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"reservas/internal/domain"
)

var testSecret = []byte("secreto-de-prueba")

func signToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatalf("firmar token: %v", err)
	}
	return s
}

func newTestRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity(testSecret))
	handlers := append(extra, func(c *gin.Context) {
		id := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": id.ID, "role": id.Role})
	})
	r.GET("/probe", handlers...)
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentity_ValidTokenAttachesIdentity(t *testing.T) {
	r := newTestRouter()
	w := doGet(r, signToken(t, 9, domain.RoleUser))
	if w.Code != http.StatusOK {
		t.Fatalf("código %d", w.Code)
	}
	if body := w.Body.String(); body != `{"id":9,"role":"user"}` {
		t.Fatalf("cuerpo inesperado: %s", body)
	}
}

func TestIdentity_GarbageTokenStaysAnonymous(t *testing.T) {
	r := newTestRouter()
	w := doGet(r, "no-es-un-jwt")
	if w.Code != http.StatusOK {
		t.Fatalf("código %d", w.Code)
	}
	if body := w.Body.String(); body != `{"id":0,"role":""}` {
		t.Fatalf("cuerpo inesperado: %s", body)
	}
}

func TestRequireAuth_AnonymousGets401(t *testing.T) {
	r := newTestRouter(RequireAuth())
	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("código %d, esperado 401", w.Code)
	}
}

func TestRequireRoles_UserBlockedFromAdminRoute(t *testing.T) {
	r := newTestRouter(RequireRoles(domain.RoleAdmin))

	if w := doGet(r, signToken(t, 9, domain.RoleUser)); w.Code != http.StatusForbidden {
		t.Fatalf("código %d, esperado 403", w.Code)
	}
	if w := doGet(r, signToken(t, 1, domain.RoleAdmin)); w.Code != http.StatusOK {
		t.Fatalf("código %d, esperado 200 para admin", w.Code)
	}
	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("código %d, esperado 401 para anónimo", w.Code)
	}
}
