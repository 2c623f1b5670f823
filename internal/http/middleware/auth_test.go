package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequireAuthRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetJWTSecret("test-secret")

	r := gin.New()
	r.GET("/whoami", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "role": Role(c)})
	})
	r.GET("/admin-only", RequireAuth(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := GenerateToken("142", "user")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"valid token", "/whoami", "Bearer " + token, http.StatusOK},
		{"missing header", "/whoami", "", http.StatusUnauthorized},
		{"garbage token", "/whoami", "Bearer not.a.token", http.StatusUnauthorized},
		{"non-admin blocked", "/admin-only", "Bearer " + token, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected status %d, got %d (body %s)", tc.want, w.Code, w.Body.String())
			}
		})
	}

	adminToken, err := GenerateToken("1", "admin")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin token rejected: %d", w.Code)
	}
}
