package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/carkeep/car-registry/internal/config"
	"github.com/carkeep/car-registry/internal/models"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Car{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := NewAuthHandler(db, &config.Config{JWTSecret: "test-secret"})
	r := gin.New()
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	r, _ := setupAuthTest(t)

	for _, body := range []string{
		`{"email":"a@x.com","password":"p"}`,
		`{"name":"  ","email":"a@x.com","password":"p"}`,
		`{"name":"A","password":"p"}`,
		`{"name":"A","email":"a@x.com"}`,
	} {
		if w := postJSON(t, r, "/api/register", body); w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400 got %d", body, w.Code)
		}
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	r, _ := setupAuthTest(t)

	if w := postJSON(t, r, "/api/register", `{"name":"Ann","email":"ANN@x.com","password":"p1"}`); w.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201 got %d (%s)", w.Code, w.Body.String())
	}

	w := postJSON(t, r, "/api/register", `{"name":"Other","email":"ann@X.COM","password":"p2"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second register: expected 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "email_already_exists") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestPasswordStoredHashed(t *testing.T) {
	r, db := setupAuthTest(t)

	if w := postJSON(t, r, "/api/register", `{"name":"Ann","email":"ann@x.com","password":"p1"}`); w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d", w.Code)
	}

	var user models.User
	if err := db.Where("email = ?", "ann@x.com").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.PasswordHash == "p1" {
		t.Fatal("password stored in cleartext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("p1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestLoginAmbiguousFailure(t *testing.T) {
	r, _ := setupAuthTest(t)

	if w := postJSON(t, r, "/api/register", `{"name":"Ann","email":"ann@x.com","password":"p1"}`); w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d", w.Code)
	}

	wrongPassword := postJSON(t, r, "/api/login", `{"email":"ann@x.com","password":"nope"}`)
	unknownEmail := postJSON(t, r, "/api/login", `{"email":"ghost@x.com","password":"p1"}`)

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401 got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	// Neither response may reveal which part was wrong.
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("failure bodies differ: %s vs %s", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestLoginAcceptsUnnormalizedEmail(t *testing.T) {
	r, _ := setupAuthTest(t)

	if w := postJSON(t, r, "/api/register", `{"name":"Ann","email":"ANN@x.com","password":"p1"}`); w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d", w.Code)
	}

	w := postJSON(t, r, "/api/login", `{"email":"  Ann@X.com ","password":"p1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
}
