package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberdev/barberdev-web/internal/audit"
	"github.com/barberdev/barberdev-web/internal/availability"
	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/booking"
	"github.com/barberdev/barberdev-web/internal/cache"
	"github.com/barberdev/barberdev-web/internal/logging"
	"github.com/barberdev/barberdev-web/internal/middleware"
	"github.com/barberdev/barberdev-web/internal/session"
)

// harness wires the JSON sub-API against a scripted backend.
type harness struct {
	engine      *gin.Engine
	backendHits *atomic.Int32
}

func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, _ := json.Marshal(map[string]any{"alg": "HS256", "typ": "JWT"})
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + ".sig"
}

func newHarness(t *testing.T, backendHandler http.HandlerFunc) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		backendHandler(w, r)
	}))
	t.Cleanup(srv.Close)

	logger := logging.New("error")
	client, err := backend.New(backend.Config{BaseURL: srv.URL, Logger: logger.Logger})
	require.NoError(t, err)

	users := backend.NewUsers(client)
	haircuts := backend.NewHaircuts(client)
	appointments := backend.NewAppointments(client)

	reference := cache.NewReference("", "", time.Minute, logger.Logger)
	catalog := cache.NewCatalog(haircuts, users, reference)
	enricher := backend.NewEnricher(users, haircuts)
	store := session.NewStore(users, "token", false, logger.Logger)
	hub := availability.NewHub(appointments, 0, time.UTC, logger.Logger)
	submitter := booking.NewSubmitter(appointments)
	dispatcher := audit.NewDispatcher(logger.Logger)

	h := NewAppointmentHandler(appointments, catalog, enricher, submitter, hub, dispatcher, time.UTC, logger)

	r := gin.New()
	api := r.Group("/api", middleware.RoleGate(store))
	{
		api.GET("/appointments", h.APIList)
		api.POST("/appointments", h.APISubmit)
		api.POST("/appointments/availability", h.APIAvailability)
		api.POST("/appointments/:id/cancel", h.APICancel)
		api.POST("/appointments/:id/complete", h.APIComplete)
		api.POST("/appointments/:id/payment-status", h.APIPaymentStatus)
	}
	r.GET("/appointments/:id/edit", middleware.RoleGate(store), h.Form)

	return &harness{engine: r, backendHits: &hits}
}

func (h *harness) do(t *testing.T, method, path, tok, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if tok != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: tok})
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func TestAPIAvailabilityWithoutServiceHints(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend call expected")
	})
	tok := makeToken(t, map[string]any{"nameid": "7", "role": 1})

	rec := h.do(t, http.MethodPost, "/api/appointments/availability", tok,
		`{"formSession":"f1","barberId":5,"appointmentDate":"2025-03-07"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			Times []string `json:"times"`
			Hint  string   `json:"hint"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Selecciona un servicio para ver los horarios disponibles", resp.Data.Hint)
	assert.Empty(t, resp.Data.Times)
	assert.Zero(t, h.backendHits.Load())
}

func TestAPIAvailabilityNormalizesIntervals(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appointments/availability", r.URL.Path)
		assert.Equal(t, "2025/03/07", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`[{"start":"2025-03-07T09:00:00","end":"2025-03-07T09:30:00"},{"start":"2025-03-07T09:30:00","end":"2025-03-07T10:00:00"}]`))
	})
	tok := makeToken(t, map[string]any{"nameid": "7", "role": 1})

	rec := h.do(t, http.MethodPost, "/api/appointments/availability", tok,
		`{"formSession":"f1","barberId":5,"haircutId":2,"appointmentDate":"2025-03-07"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			Times []string `json:"times"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"09:00", "09:30"}, resp.Data.Times)
}

func TestAPISubmitValidationErrors(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend call expected")
	})
	tok := makeToken(t, map[string]any{"nameid": "7", "role": 1})

	rec := h.do(t, http.MethodPost, "/api/appointments", tok, `{"notes":"hola"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Debes seleccionar un barbero", resp.Fields["barberId"])
	assert.Equal(t, "Debes seleccionar un servicio", resp.Fields["haircutId"])
	assert.Equal(t, "Debes seleccionar una fecha", resp.Fields["appointmentDate"])
	assert.Equal(t, "Debes seleccionar una hora", resp.Fields["appointmentTime"])
}

func TestAPISubmitCreatePostsWireBody(t *testing.T) {
	var wireBody map[string]any
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/appointments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&wireBody))
		_, _ = w.Write([]byte(`{"id":60,"clientId":7,"barberId":5,"hairCutId":2,"startTime":"2025-06-10T10:00:00","status":1}`))
	})
	tok := makeToken(t, map[string]any{"nameid": "7", "role": 1})

	future := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	rec := h.do(t, http.MethodPost, "/api/appointments", tok,
		`{"barberId":5,"haircutId":2,"appointmentDate":"`+future+`","appointmentTime":"10:00"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	// the client id comes from the session identity, not the request body
	assert.Equal(t, float64(7), wireBody["clientId"])
	assert.Equal(t, float64(2), wireBody["hairCutId"])
	assert.Contains(t, wireBody["startTime"], "T10:00:00")
}

func TestAPICancelForbiddenForStranger(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		// the mutation path loads the appointment first
		_, _ = w.Write([]byte(`{"id":9,"clientId":1,"barberId":2,"startTime":"2025-06-10T10:00:00","status":1}`))
	})
	strangerTok := makeToken(t, map[string]any{"nameid": "42", "role": 1})

	rec := h.do(t, http.MethodPost, "/api/appointments/9/cancel", strangerTok, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPICompleteTerminalIsForbidden(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":9,"clientId":1,"barberId":2,"startTime":"2025-06-10T10:00:00","status":3}`))
	})
	adminTok := makeToken(t, map[string]any{"nameid": "99", "role": 3})

	rec := h.do(t, http.MethodPost, "/api/appointments/9/complete", adminTok, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFormRedirectsWhenAppointmentNoLongerEditable(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/appointments/9" {
			_, _ = w.Write([]byte(`{"id":9,"clientId":7,"barberId":2,"startTime":"2025-06-10T10:00:00","status":3}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})
	ownerTok := makeToken(t, map[string]any{"nameid": "7", "role": 1})

	rec := h.do(t, http.MethodGet, "/appointments/9/edit", ownerTok, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/appointments", rec.Header().Get("Location"))
}

func TestAPIPaymentStatusRelaysChosenValue(t *testing.T) {
	var wireBody map[string]any
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"id":9,"clientId":7,"barberId":2,"startTime":"2025-06-10T10:00:00","status":1,"paymentStatus":1}`))
			return
		}
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/appointments/9/payment-status", r.URL.Path)
		if err := json.NewDecoder(r.Body).Decode(&wireBody); err != nil {
			t.Error(err)
		}
		_, _ = w.Write([]byte(`{"id":9,"clientId":7,"barberId":2,"startTime":"2025-06-10T10:00:00","status":1,"paymentStatus":3}`))
	})
	ownerTok := makeToken(t, map[string]any{"nameid": "7", "role": 1})

	// the page sends whatever the select holds, not a fixed "paid" value
	rec := h.do(t, http.MethodPost, "/api/appointments/9/payment-status", ownerTok, `{"paymentStatus":3}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(3), wireBody["paymentStatus"])
}

func TestAPIRequiresSession(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend call expected")
	})

	rec := h.do(t, http.MethodGet, "/api/appointments", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
