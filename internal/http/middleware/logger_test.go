package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLoggerUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/api/bookings/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/42", nil)
	r.ServeHTTP(w, req)

	line := buf.String()
	if !strings.Contains(line, "action=request") {
		t.Fatalf("missing action tag in log line: %q", line)
	}
	if !strings.Contains(line, "route=/api/bookings/:id") {
		t.Fatalf("expected route pattern, got: %q", line)
	}
	if !strings.Contains(line, "status=200") {
		t.Fatalf("missing status in log line: %q", line)
	}
	if strings.Contains(line, "request_id= ") {
		t.Fatalf("request_id should be populated: %q", line)
	}
}

func TestLoggerFallsBackToRawPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	r := gin.New()
	r.Use(RequestID(), Logger())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
	r.ServeHTTP(w, req)

	if !strings.Contains(buf.String(), "route=/no/such/route") {
		t.Fatalf("expected raw path for unmatched route, got: %q", buf.String())
	}
}
