package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"teacher_portal_backend/internal/config"
	"teacher_portal_backend/internal/model"
	"teacher_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func newAuthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthMiddleware(cfg), RoleMiddleware(model.Admin), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/staff", AuthMiddleware(cfg), RoleMiddleware(model.Staff), func(c *gin.Context) {
		c.String(http.StatusOK, util.GetUserFromContext(c).Email)
	})
	return r
}

func tokenFor(t *testing.T, role model.UserRole, secret string) string {
	t.Helper()
	u := &model.User{Email: string(role) + "@example.com", Role: role}
	u.ID = 1
	token, err := util.GenerateJWT(u, secret, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret"}}
	r := newAuthRouter(cfg)

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no token", "/admin", "", http.StatusUnauthorized},
		{"bad token", "/admin", "Bearer nope", http.StatusUnauthorized},
		{"wrong secret", "/admin", "Bearer " + tokenFor(t, model.Admin, "other"), http.StatusUnauthorized},
		{"staff on admin route", "/admin", "Bearer " + tokenFor(t, model.Staff, "secret"), http.StatusForbidden},
		{"admin", "/admin", "Bearer " + tokenFor(t, model.Admin, "secret"), http.StatusOK},
		{"admin on staff route", "/staff", "Bearer " + tokenFor(t, model.Admin, "secret"), http.StatusOK},
		{"staff", "/staff", "Bearer " + tokenFor(t, model.Staff, "secret"), http.StatusOK},
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
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
