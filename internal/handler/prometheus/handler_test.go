package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(prometheus.NewRegistry(), "test")

	r := gin.New()
	r.Use(h.Middleware())
	r.GET("/patients/:national_id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", h.Handler())

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/patients/"+id, nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(h.requestTotal.WithLabelValues("GET", "/patients/:national_id", "404")))
	assert.Equal(t, float64(2), testutil.ToFloat64(h.errorTotal.WithLabelValues("GET", "/patients/:national_id", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}
