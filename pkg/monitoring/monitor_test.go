package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/api/teachers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/api/teachers/:id", "200"))
	for _, path := range []string{"/api/teachers/1", "/api/teachers/2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}
	after := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/api/teachers/:id", "200"))
	if after-before != 2 {
		t.Fatalf("counter delta = %v, want 2", after-before)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if got := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "unmatched", "404")); got < 1 {
		t.Errorf("unmatched counter = %v", got)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	Init()
	Init()
}
