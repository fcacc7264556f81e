package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-registry/internal/handler"
	"github.com/jwalitptl/clinic-registry/internal/handler/appointment"
	"github.com/jwalitptl/clinic-registry/internal/handler/doctor"
	"github.com/jwalitptl/clinic-registry/internal/handler/patient"
	"github.com/jwalitptl/clinic-registry/internal/handler/prescription"
	"github.com/jwalitptl/clinic-registry/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-registry/internal/middleware"
	"github.com/jwalitptl/clinic-registry/internal/service/clinic"
	"github.com/jwalitptl/clinic-registry/pkg/auth"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newTestServer(t *testing.T, withAuth bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := clinic.NewService()
	reg := promclient.NewRegistry()

	var authMW *middleware.AuthMiddleware
	ts := &testServer{t: t}
	if withAuth {
		jwtSvc := auth.NewJWTService("secret", "clinic", time.Hour)
		token, err := jwtSvc.GenerateToken("recepcion")
		require.NoError(t, err)
		ts.token = token
		authMW = middleware.NewAuthMiddleware(jwtSvc)
	}

	r := NewRouter(zerolog.Nop(), authMW, handler.NewHandler(nil), prometheus.New(reg, "test"),
		RouterConfig{Idempotency: middleware.IdempotencyConfig{TTL: time.Minute}},
		patient.NewHandler(svc),
		doctor.NewHandler(svc),
		appointment.NewHandler(svc),
		prescription.NewHandler(svc),
	)
	r.Setup()
	ts.engine = r.Engine()
	return ts
}

func (s *testServer) do(method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	req := httptest.NewRequest(method, "/api/v1"+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *testServer) seed() {
	s.t.Helper()
	w, _ := s.do(http.MethodPost, "/patients", `{"name":"Juan Perez","national_id":"12345678","birth_date":"01/01/2000"}`)
	require.Equal(s.t, http.StatusCreated, w.Code)
	w, _ = s.do(http.MethodPost, "/doctors", `{"name":"Dra. López","license":"M001"}`)
	require.Equal(s.t, http.StatusCreated, w.Code)
	w, _ = s.do(http.MethodPost, "/doctors/M001/specialties", `{"name":"Cardiología","days":["lunes","Miércoles"]}`)
	require.Equal(s.t, http.StatusCreated, w.Code)
}

func TestSchedulingFlow(t *testing.T) {
	s := newTestServer(t, false)
	s.seed()

	w, env := s.do(http.MethodPost, "/appointments", `{"national_id":"12345678","license":"M001","specialty":"Cardiología","scheduled_at":"2025-06-16T10:00"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var appt struct {
		License     string `json:"license"`
		ScheduledAt string `json:"scheduled_at"`
		Weekday     string `json:"weekday"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &appt))
	assert.Equal(t, "M001", appt.License)
	assert.Equal(t, "2025-06-16T10:00", appt.ScheduledAt)
	assert.Equal(t, "lunes", appt.Weekday)

	w, env = s.do(http.MethodPost, "/appointments", `{"national_id":"12345678","license":"M001","specialty":"Cardiología","scheduled_at":"16/06/2025 10:00"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", env.Status)

	w, _ = s.do(http.MethodPost, "/appointments", `{"national_id":"12345678","license":"M001","specialty":"Cardiología","scheduled_at":"2025-06-17T10:00"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = s.do(http.MethodPost, "/appointments", `{"national_id":"12345678","license":"M001","specialty":"Cardiología","scheduled_at":"tomorrow"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, "/appointments", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestPrescriptionsAndRecord(t *testing.T) {
	s := newTestServer(t, false)
	s.seed()

	w, _ := s.do(http.MethodPost, "/prescriptions", `{"national_id":"12345678","license":"M001","medications":["Ibuprofeno"," "],"issued_at":"2025-06-16T11:00"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := s.do(http.MethodPost, "/prescriptions", `{"national_id":"12345678","license":"M001","medications":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "invalid prescription")

	w, env = s.do(http.MethodGet, "/patients/12345678/record", "")
	require.Equal(t, http.StatusOK, w.Code)
	var record struct {
		Patient struct {
			Name string `json:"name"`
		} `json:"patient"`
		Prescriptions []struct {
			Medications []string `json:"medications"`
		} `json:"prescriptions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &record))
	assert.Equal(t, "Juan Perez", record.Patient.Name)
	require.Len(t, record.Prescriptions, 1)
	assert.Equal(t, []string{"Ibuprofeno"}, record.Prescriptions[0].Medications)

	w, _ = s.do(http.MethodGet, "/patients/00000000/record", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDirectories(t *testing.T) {
	s := newTestServer(t, false)
	s.seed()

	w, _ := s.do(http.MethodPost, "/patients", `{"name":"Otro","national_id":"12345678"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env := s.do(http.MethodPost, "/patients", `{"name":"Sin DNI"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "national_id is required", env.Message)

	w, env = s.do(http.MethodGet, "/doctors/M001", "")
	require.Equal(t, http.StatusOK, w.Code)
	var d struct {
		Specialties []struct {
			Name string   `json:"name"`
			Days []string `json:"days"`
		} `json:"specialties"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &d))
	require.Len(t, d.Specialties, 1)
	assert.Equal(t, []string{"lunes", "miércoles"}, d.Specialties[0].Days)

	w, _ = s.do(http.MethodGet, "/doctors/M999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodPost, "/doctors/M999/specialties", `{"name":"Clínica","days":["viernes"]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodGet, "/patients", "")
	require.Equal(t, http.StatusOK, w.Code)
	var patients []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &patients))
	assert.Len(t, patients, 1)

	w, _ = s.do(http.MethodGet, "/doctors", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestIdempotentRegistration(t *testing.T) {
	s := newTestServer(t, false)
	body := `{"name":"Juan Perez","national_id":"12345678"}`

	w1, _ := s.do(http.MethodPost, "/patients", body, middleware.HeaderIdempotencyKey, "abc")
	w2, _ := s.do(http.MethodPost, "/patients", body, middleware.HeaderIdempotencyKey, "abc")

	assert.Equal(t, http.StatusCreated, w1.Code)
	assert.Equal(t, http.StatusCreated, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())

	w3, _ := s.do(http.MethodPost, "/patients", body)
	assert.Equal(t, http.StatusConflict, w3.Code)
}

func TestWritesRequireTokenWhenAuthEnabled(t *testing.T) {
	s := newTestServer(t, true)
	s.seed()

	token := s.token
	s.token = ""
	w, _ := s.do(http.MethodPost, "/doctors", `{"name":"Dr. García","license":"M002"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/doctors", "")
	assert.Equal(t, http.StatusOK, w.Code)

	s.token = token
	w, _ = s.do(http.MethodPost, "/doctors", `{"name":"Dr. García","license":"M002"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.do(http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.Status)

	w, _ = s.do(http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_http_requests_total")
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(trusted []string) *gin.Engine {
		r := NewRouter(zerolog.Nop(), nil, handler.NewHandler(nil), nil, RouterConfig{
			RateLimit:      1,
			RateBurst:      1,
			TrustedProxies: trusted,
		})
		r.Setup()
		return r.Engine()
	}

	get := func(engine *gin.Engine, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w.Code
	}

	untrusted := newEngine(nil)
	assert.Equal(t, http.StatusOK, get(untrusted, "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, get(untrusted, "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, get(untrusted, "203.0.113.3"))

	behindProxy := newEngine([]string{"192.0.2.1"})
	assert.Equal(t, http.StatusOK, get(behindProxy, "203.0.113.1"))
	assert.Equal(t, http.StatusOK, get(behindProxy, "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, get(behindProxy, "203.0.113.2"))
}
