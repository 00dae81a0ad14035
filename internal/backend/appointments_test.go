package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppointments(t *testing.T, handler http.HandlerFunc) *Appointments {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return NewAppointments(client)
}

func TestCreateSendsWireBody(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string

	a := newTestAppointments(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/appointments", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":33,"clientId":7,"barberId":5,"hairCutId":2,"startTime":"2025-06-10T10:00:00","status":1}`))
	})

	ctx := WithToken(context.Background(), "tok123")
	ap, err := a.Create(ctx, CreateInput{
		ClientID:  7,
		BarberID:  5,
		HaircutID: 2,
		Date:      "2025-06-10",
		Time:      "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, map[string]any{
		"clientId":  float64(7),
		"barberId":  float64(5),
		"hairCutId": float64(2),
		"startTime": "2025-06-10T10:00:00",
	}, gotBody)

	assert.Equal(t, 33, ap.ID)
	assert.Equal(t, 2, ap.HaircutID)
	assert.Equal(t, "2025-06-10", ap.Date)
	assert.Equal(t, "10:00", ap.Time)
}

func TestCreateRejectsMissingClient(t *testing.T) {
	a := newTestAppointments(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := a.Create(context.Background(), CreateInput{
		BarberID:  5,
		HaircutID: 2,
		Date:      "2025-06-10",
		Time:      "10:00",
	})
	assert.True(t, IsPrecondition(err))
}

func TestListToleratesBothWireShapes(t *testing.T) {
	a := newTestAppointments(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appointments/all", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":1,"clientId":7,"barberId":5,"hairCutId":2,"startTime":"2025-03-07T14:30:00","status":2},
			{"id":2,"clientId":7,"barberId":5,"haircutId":3,"appointmentDate":"2025-03-08","appointmentTime":"09:00","status":1}
		]`))
	})

	aps, err := a.List(context.Background())
	require.NoError(t, err)
	require.Len(t, aps, 2)

	assert.Equal(t, 2, aps[0].HaircutID)
	assert.Equal(t, "2025-03-07", aps[0].Date)
	assert.Equal(t, "14:30", aps[0].Time)

	assert.Equal(t, 3, aps[1].HaircutID)
	assert.Equal(t, "2025-03-08", aps[1].Date)
	assert.Equal(t, "09:00", aps[1].Time)
}

func TestUpdateRejectsThenRelaysServerMessage(t *testing.T) {
	a := newTestAppointments(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/appointments/9", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"El horario ya fue tomado"}`))
	})

	barber := 5
	_, err := a.Update(context.Background(), 9, UpdateInput{BarberID: &barber})
	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, ae.Status)
	assert.Equal(t, "El horario ya fue tomado", ae.Message)
}

// ===============================
// Availability
// ===============================

func TestAvailabilityQueryEncoding(t *testing.T) {
	a := newTestAppointments(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "5", q.Get("barberId"))
		assert.Equal(t, "2025/03/07", q.Get("date"))
		assert.Equal(t, "2", q.Get("haircutId"))
		_, _ = w.Write([]byte(`["09:00","09:30"]`))
	})

	payload, err := a.Availability(context.Background(), 5, "2025-03-07", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, payload.Times)
	assert.Empty(t, payload.Intervals)
}

func TestAvailabilityBadDateShortCircuits(t *testing.T) {
	a := newTestAppointments(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := a.Availability(context.Background(), 5, "07/03/2025", 2)
	assert.True(t, IsPrecondition(err))
}

func TestDecodeAvailabilityShapes(t *testing.T) {
	// flat list
	p, err := decodeAvailability(json.RawMessage(`["10:00","10:30"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30"}, p.Times)

	// interval objects
	p, err = decodeAvailability(json.RawMessage(`[{"start":"2025-03-07T09:00:00","end":"2025-03-07T09:30:00"}]`))
	require.NoError(t, err)
	require.Len(t, p.Intervals, 1)
	assert.Equal(t, "2025-03-07T09:00:00", p.Intervals[0].Start)

	// object wrapper
	p, err = decodeAvailability(json.RawMessage(`{"date":"2025/03/07","availableTimes":["11:00"]}`))
	require.NoError(t, err)
	assert.Equal(t, "2025/03/07", p.Date)
	assert.Equal(t, []string{"11:00"}, p.Times)

	// empty body
	p, err = decodeAvailability(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Times)
}
