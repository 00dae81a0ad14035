package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/barberdev/barberdev-web/internal/domain/appointment"
	"github.com/barberdev/barberdev-web/internal/domain/user"
)

// Appointments wraps the appointment endpoints. Every function translates
// between the app's split date/time + haircutId shape and the backend's
// combined startTime + hairCutId wire shape.
type Appointments struct {
	client *Client
}

func NewAppointments(client *Client) *Appointments {
	return &Appointments{client: client}
}

// ===============================
// Wire shapes
// ===============================

// wireAppointment tolerates both field spellings and both date encodings the
// backend has been observed sending.
type wireAppointment struct {
	ID        int `json:"id"`
	ClientID  int `json:"clientId"`
	BarberID  int `json:"barberId"`
	HairCutID int `json:"hairCutId"`
	HaircutID int `json:"haircutId"`

	StartTime       string `json:"startTime"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`

	Status        appointment.Status        `json:"status"`
	PaymentStatus appointment.PaymentStatus `json:"paymentStatus"`
	Notes         string                    `json:"notes"`
	CreatedAt     string                    `json:"createdAt"`
	UpdatedAt     string                    `json:"updatedAt"`

	Client  *user.Profile        `json:"client"`
	Barber  *user.Profile        `json:"barber"`
	Haircut *appointment.Haircut `json:"haircut"`
}

func (w *wireAppointment) toEntity() appointment.Appointment {
	haircutID := w.HairCutID
	if haircutID == 0 {
		haircutID = w.HaircutID
	}

	date, hhmm := w.AppointmentDate, w.AppointmentTime
	if w.StartTime != "" {
		date, hhmm = SplitStartTime(w.StartTime)
	} else if d, _ := SplitStartTime(w.AppointmentDate); d != w.AppointmentDate {
		// appointmentDate sometimes arrives as a full timestamp
		date = d
	}

	return appointment.Appointment{
		ID:            w.ID,
		ClientID:      w.ClientID,
		BarberID:      w.BarberID,
		HaircutID:     haircutID,
		Date:          date,
		Time:          hhmm,
		Status:        w.Status,
		PaymentStatus: w.PaymentStatus,
		Notes:         w.Notes,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
		Client:        w.Client,
		Barber:        w.Barber,
		Haircut:       w.Haircut,
	}
}

type createRequest struct {
	ClientID  int    `json:"clientId"`
	BarberID  int    `json:"barberId"`
	HairCutID int    `json:"hairCutId"`
	StartTime string `json:"startTime"`
	Notes     string `json:"notes,omitempty"`
}

type updateRequest struct {
	BarberID  *int    `json:"barberId,omitempty"`
	HairCutID *int    `json:"hairCutId,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ===============================
// Operations
// ===============================

// List fetches the raw appointment collection. The backend filters by the
// caller's role; enrichment happens separately (see Enricher).
func (a *Appointments) List(ctx context.Context) ([]appointment.Appointment, error) {
	var wire []wireAppointment
	if err := a.client.do(ctx, http.MethodGet, "/appointments/all", nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]appointment.Appointment, 0, len(wire))
	for i := range wire {
		out = append(out, wire[i].toEntity())
	}
	return out, nil
}

func (a *Appointments) Get(ctx context.Context, id int) (*appointment.Appointment, error) {
	if id <= 0 {
		return nil, Precondition("invalid appointment id: %d", id)
	}
	var wire wireAppointment
	if err := a.client.do(ctx, http.MethodGet, fmt.Sprintf("/appointments/%d", id), nil, nil, &wire); err != nil {
		return nil, err
	}
	ap := wire.toEntity()
	return &ap, nil
}

type CreateInput struct {
	ClientID  int
	BarberID  int
	HaircutID int
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	Notes     string
}

func (a *Appointments) Create(ctx context.Context, in CreateInput) (*appointment.Appointment, error) {
	if in.ClientID <= 0 {
		return nil, Precondition("missing client id")
	}
	startTime, err := CombineStartTime(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	req := createRequest{
		ClientID:  in.ClientID,
		BarberID:  in.BarberID,
		HairCutID: in.HaircutID,
		StartTime: startTime,
		Notes:     in.Notes,
	}

	var wire wireAppointment
	if err := a.client.do(ctx, http.MethodPost, "/appointments", nil, req, &wire); err != nil {
		return nil, err
	}
	ap := wire.toEntity()
	return &ap, nil
}

type UpdateInput struct {
	BarberID  *int
	HaircutID *int
	Date      *string
	Time      *string
	Notes     *string
}

func (a *Appointments) Update(ctx context.Context, id int, in UpdateInput) (*appointment.Appointment, error) {
	if id <= 0 {
		return nil, Precondition("invalid appointment id: %d", id)
	}

	req := updateRequest{
		BarberID:  in.BarberID,
		HairCutID: in.HaircutID,
		Notes:     in.Notes,
	}
	if in.Date != nil && in.Time != nil {
		startTime, err := CombineStartTime(*in.Date, *in.Time)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	var wire wireAppointment
	if err := a.client.do(ctx, http.MethodPut, fmt.Sprintf("/appointments/%d", id), nil, req, &wire); err != nil {
		return nil, err
	}
	ap := wire.toEntity()
	return &ap, nil
}

// Cancel releases the slot server-side; callers must reload the collection
// afterwards rather than patch locally.
func (a *Appointments) Cancel(ctx context.Context, id int) error {
	if id <= 0 {
		return Precondition("invalid appointment id: %d", id)
	}
	return a.client.do(ctx, http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil, nil)
}

func (a *Appointments) Complete(ctx context.Context, id int) (*appointment.Appointment, error) {
	if id <= 0 {
		return nil, Precondition("invalid appointment id: %d", id)
	}
	var wire wireAppointment
	if err := a.client.do(ctx, http.MethodPut, fmt.Sprintf("/appointments/%d/complete", id), nil, nil, &wire); err != nil {
		return nil, err
	}
	ap := wire.toEntity()
	return &ap, nil
}

type updatePaymentRequest struct {
	PaymentStatus appointment.PaymentStatus `json:"paymentStatus"`
}

// UpdatePaymentStatus uses the path-id contract; the body-id variant seen in
// older deployments is deprecated.
func (a *Appointments) UpdatePaymentStatus(ctx context.Context, id int, status appointment.PaymentStatus) (*appointment.Appointment, error) {
	if id <= 0 {
		return nil, Precondition("invalid appointment id: %d", id)
	}
	if !status.Valid() {
		return nil, Precondition("invalid payment status: %d", int(status))
	}
	var wire wireAppointment
	path := fmt.Sprintf("/appointments/%d/payment-status", id)
	if err := a.client.do(ctx, http.MethodPut, path, nil, updatePaymentRequest{PaymentStatus: status}, &wire); err != nil {
		return nil, err
	}
	ap := wire.toEntity()
	return &ap, nil
}

// ===============================
// Availability
// ===============================

// Interval is one bookable window in the interval-shaped availability
// response.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityPayload is the undecoded union of the two response shapes the
// availability endpoint produces. Exactly one of Times/Intervals is set.
type AvailabilityPayload struct {
	Date      string
	Times     []string
	Intervals []Interval
}

type availabilityObject struct {
	Date           string          `json:"date"`
	AvailableTimes json.RawMessage `json:"availableTimes"`
}

// Availability queries the bookable slots for (barber, date, haircut). The
// date is rewritten to the slash-separated form the endpoint expects.
func (a *Appointments) Availability(ctx context.Context, barberID int, date string, haircutID int) (*AvailabilityPayload, error) {
	if barberID <= 0 {
		return nil, Precondition("invalid barber id: %d", barberID)
	}
	wireDate, err := AvailabilityDate(date)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("barberId", strconv.Itoa(barberID))
	query.Set("date", wireDate)
	if haircutID > 0 {
		query.Set("haircutId", strconv.Itoa(haircutID))
	}

	var raw json.RawMessage
	if err := a.client.do(ctx, http.MethodGet, "/appointments/availability", query, nil, &raw); err != nil {
		return nil, err
	}
	return decodeAvailability(raw)
}

func decodeAvailability(raw json.RawMessage) (*AvailabilityPayload, error) {
	payload := &AvailabilityPayload{}
	if len(raw) == 0 {
		return payload, nil
	}

	if raw[0] == '[' {
		if err := decodeTimeList(raw, payload); err != nil {
			return nil, err
		}
		return payload, nil
	}

	var obj availabilityObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode availability: %w", err)
	}
	payload.Date = obj.Date
	if len(obj.AvailableTimes) > 0 {
		if err := decodeTimeList(obj.AvailableTimes, payload); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// decodeTimeList accepts either a flat list of time strings or a list of
// interval objects.
func decodeTimeList(raw json.RawMessage, payload *AvailabilityPayload) error {
	var times []string
	if err := json.Unmarshal(raw, &times); err == nil {
		payload.Times = times
		return nil
	}

	var intervals []Interval
	if err := json.Unmarshal(raw, &intervals); err != nil {
		return fmt.Errorf("decode availability times: %w", err)
	}
	payload.Intervals = intervals
	return nil
}
