package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"automotora-api/auth"
)

const testSecret = "gate-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func gateRouter() *gin.Engine {
	r := gin.New()
	r.Use(AccessGate(testSecret))

	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"authenticated": IsAuthenticated(c),
			"user_id":       c.GetString("user_id"),
		})
	}
	r.GET("/api/vehiculos", ok)
	r.POST("/api/vehiculos", ok)
	r.PUT("/api/vehiculos/:id", ok)
	r.DELETE("/api/vehiculos/:id", ok)
	r.GET("/api/consultas", ok)
	r.POST("/api/consultas", ok)
	r.POST("/api/upload", ok)
	r.POST("/api/auth/login", ok)
	return r
}

func request(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequiresAuthTable(t *testing.T) {
	cases := []struct {
		method    string
		path      string
		protected bool
	}{
		{http.MethodGet, "/api/vehiculos", false},
		{http.MethodGet, "/api/vehiculos/abc", false},
		{http.MethodPost, "/api/vehiculos", true},
		{http.MethodPut, "/api/vehiculos/abc", true},
		{http.MethodDelete, "/api/vehiculos/abc", true},
		{http.MethodPost, "/api/vehiculos/abc/imagenes", true},
		{http.MethodDelete, "/api/vehiculos/abc/imagenes/img", true},
		{http.MethodPost, "/api/consultas", false},
		{http.MethodGet, "/api/consultas", true},
		{http.MethodPut, "/api/consultas/abc", true},
		{http.MethodDelete, "/api/consultas/abc", true},
		{http.MethodPost, "/api/upload", true},
		{http.MethodPost, "/api/auth/login", false},
		{http.MethodGet, "/api/health", false},
	}
	for _, tc := range cases {
		if got := requiresAuth(tc.path, tc.method); got != tc.protected {
			t.Fatalf("requiresAuth(%s %s) = %v, want %v", tc.method, tc.path, got, tc.protected)
		}
	}
}

func TestGateBlocksWithoutToken(t *testing.T) {
	r := gateRouter()

	w := request(r, http.MethodPost, "/api/vehiculos", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = request(r, http.MethodGet, "/api/consultas", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGateBlocksBadToken(t *testing.T) {
	r := gateRouter()

	w := request(r, http.MethodPost, "/api/vehiculos", "garbage")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", w.Code)
	}

	wrong, err := auth.GenerateToken("another-secret", "u-1", "a@b.com", "ADMIN")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	w = request(r, http.MethodPost, "/api/vehiculos", wrong)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong signature, got %d", w.Code)
	}
}

func TestGatePassesValidToken(t *testing.T) {
	r := gateRouter()

	token, err := auth.GenerateToken(testSecret, "u-1", "a@b.com", "VENDEDOR")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := request(r, http.MethodPost, "/api/vehiculos", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGatePublicRoutesPassThrough(t *testing.T) {
	r := gateRouter()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/vehiculos"},
		{http.MethodPost, "/api/consultas"},
		{http.MethodPost, "/api/auth/login"},
	} {
		w := request(r, tc.method, tc.path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d", tc.method, tc.path, w.Code)
		}
	}
}

// A valid token on a public route still attaches the identity, so
// handlers can tell staff apart from anonymous visitors.
func TestGateOptionalIdentityOnPublicRoute(t *testing.T) {
	r := gateRouter()

	token, err := auth.GenerateToken(testSecret, "u-7", "staff@automotora.com", "ADMIN")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := request(r, http.MethodGet, "/api/vehiculos", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"authenticated":true`) {
		t.Fatalf("expected identity in context, got %s", w.Body.String())
	}

	// An invalid token on a public route is ignored, not rejected.
	w = request(r, http.MethodGet, "/api/vehiculos", "garbage")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"authenticated":false`) {
		t.Fatalf("expected anonymous context, got %s", w.Body.String())
	}
}
