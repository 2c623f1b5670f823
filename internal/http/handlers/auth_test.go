package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	intconfig "fjelldrift/internal/config"
	"fjelldrift/internal/http/middleware"
)

var customerCols = []string{
	"Id", "Name", "Email", "Phone",
	"Latitude", "Longitude", "Subscription", "Role",
	"PasswordHash",
}

func loginRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetJWTSecret("test-secret")

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	prev := intconfig.DB
	intconfig.DB = db

	r := gin.New()
	r.POST("/api/auth/login", Login)
	return r, mock, func() {
		intconfig.DB = prev
		db.Close()
	}
}

func TestLoginRecordsHistory(t *testing.T) {
	r, mock, cleanup := loginRouter(t)
	defer cleanup()

	hash, err := bcrypt.GenerateFromPassword([]byte("hemmelig"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE Id").
		WithArgs("142").
		WillReturnRows(sqlmock.NewRows(customerCols).
			AddRow("142", "Kari Nordmann", "kari@example.com", "", nil, nil, "Årsabonnement", "user", string(hash)))
	mock.ExpectExec("INSERT INTO login_history").
		WithArgs("142", sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"cabin_id":"142","password":"hemmelig"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || resp.User.ID != "142" || resp.User.Role != "user" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLoginFailureSurvivesHistoryWriteError(t *testing.T) {
	r, mock, cleanup := loginRouter(t)
	defer cleanup()

	hash, err := bcrypt.GenerateFromPassword([]byte("hemmelig"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE Id").
		WithArgs("142").
		WillReturnRows(sqlmock.NewRows(customerCols).
			AddRow("142", "Kari Nordmann", "kari@example.com", "", nil, nil, "Årsabonnement", "user", string(hash)))
	mock.ExpectExec("INSERT INTO login_history").
		WithArgs("142", sqlmock.AnyArg(), false).
		WillReturnError(errors.New("disk full"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"cabin_id":"142","password":"feil"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
