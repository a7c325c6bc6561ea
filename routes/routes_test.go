package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"automotora-api/config"
	"automotora-api/database"
	"automotora-api/middleware"
	"automotora-api/models"
	"automotora-api/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeHost struct{}

func (fakeHost) Upload(_ context.Context, _ string) (*services.UploadedImage, error) {
	return &services.UploadedImage{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/automotora/vehiculos/x.jpg",
		PublicID: "automotora/vehiculos/x",
		Width:    1200,
		Height:   900,
	}, nil
}

func (fakeHost) Delete(_ context.Context, _ string) error { return nil }

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:     "integration-secret",
		AdminEmail:    "admin@automotora.com",
		AdminPassword: "clave-segura",
	}
	if err := database.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		t.Fatalf("seed: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	r := gin.New()
	r.Use(middleware.AccessGate(cfg.JWTSecret))
	SetupRoutes(r, db, cfg, fakeHost{}, nil, log)

	return r, db, cfg
}

func do(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()

	w := do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if out.Token == "" {
		t.Fatalf("expected a token")
	}
	return out.Token
}

func TestLoginFlow(t *testing.T) {
	r, _, _ := newTestServer(t)

	// Wrong password and unknown user look identical.
	w := do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@automotora.com", "password": "incorrecta",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nadie@automotora.com", "password": "clave-segura",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	// Missing fields.
	w = do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@automotora.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	login(t, r, "admin@automotora.com", "clave-segura")
}

func TestLoginDeactivatedAccount(t *testing.T) {
	r, db, _ := newTestServer(t)

	if err := db.Model(&models.User{}).Where("email = ?", "admin@automotora.com").Update("active", false).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	w := do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@automotora.com", "password": "clave-segura",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestVehicleLifecycleThroughGate(t *testing.T) {
	r, _, _ := newTestServer(t)

	payload := map[string]interface{}{
		"marca":       "Toyota",
		"modelo":      "Corolla",
		"anio":        2022,
		"precio":      15000,
		"kilometraje": 0,
		"combustible": "NAFTA",
		"transmision": "MANUAL",
		"color":       "Blanco",
		"puertas":     4,
	}

	// Creation is gated.
	w := do(t, r, http.MethodPost, "/api/vehiculos", "", payload)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	token := login(t, r, "admin@automotora.com", "clave-segura")
	w = do(t, r, http.MethodPost, "/api/vehiculos", token, payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		Vehiculo models.Vehicle `json:"vehiculo"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	// Mark it sold, then check listing visibility.
	w = do(t, r, http.MethodPut, "/api/vehiculos/"+created.Vehiculo.ID, token, map[string]string{"estado": "VENDIDO"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Anonymous callers only see available vehicles.
	w = do(t, r, http.MethodGet, "/api/vehiculos", "", nil)
	var anonList struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &anonList); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if anonList.Count != 0 {
		t.Fatalf("anonymous list should hide sold vehicles, got %d", anonList.Count)
	}

	// Staff see everything.
	w = do(t, r, http.MethodGet, "/api/vehiculos", token, nil)
	var staffList struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &staffList); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if staffList.Count != 1 {
		t.Fatalf("staff list should include sold vehicles, got %d", staffList.Count)
	}

	// Public detail page stays reachable.
	w = do(t, r, http.MethodGet, "/api/vehiculos/"+created.Vehiculo.ID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected public 200, got %d", w.Code)
	}

	// Deletion is gated too.
	w = do(t, r, http.MethodDelete, "/api/vehiculos/"+created.Vehiculo.ID, "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = do(t, r, http.MethodDelete, "/api/vehiculos/"+created.Vehiculo.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestInquiryGateMatrix(t *testing.T) {
	r, _, _ := newTestServer(t)

	payload := map[string]interface{}{
		"nombre":   "Cliente",
		"email":    "cliente@example.com",
		"telefono": "1155550000",
		"mensaje":  "Me interesa, quisiera coordinar una visita",
	}

	// Submission is public.
	w := do(t, r, http.MethodPost, "/api/consultas", "", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected public 201, got %d: %s", w.Code, w.Body.String())
	}

	// Reading customer data is not.
	w = do(t, r, http.MethodGet, "/api/consultas", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	token := login(t, r, "admin@automotora.com", "clave-segura")
	w = do(t, r, http.MethodGet, "/api/consultas", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestUploadRequiresToken(t *testing.T) {
	r, _, _ := newTestServer(t)

	body := map[string]interface{}{"images": []string{"data:image/jpeg;base64,AAAA"}}

	w := do(t, r, http.MethodPost, "/api/upload", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	token := login(t, r, "admin@automotora.com", "clave-segura")
	w = do(t, r, http.MethodPost, "/api/upload", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMe(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := do(t, r, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	token := login(t, r, "admin@automotora.com", "clave-segura")
	w = do(t, r, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
