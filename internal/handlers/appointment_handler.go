package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/barberdev/barberdev-web/internal/audit"
	"github.com/barberdev/barberdev-web/internal/availability"
	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/booking"
	"github.com/barberdev/barberdev-web/internal/cache"
	"github.com/barberdev/barberdev-web/internal/domain/appointment"
	"github.com/barberdev/barberdev-web/internal/domain/user"
	"github.com/barberdev/barberdev-web/internal/flash"
	"github.com/barberdev/barberdev-web/internal/httperr"
	"github.com/barberdev/barberdev-web/internal/httpresp"
	"github.com/barberdev/barberdev-web/internal/logging"
	"github.com/barberdev/barberdev-web/internal/middleware"
	"github.com/barberdev/barberdev-web/internal/views"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	appointments *backend.Appointments
	catalog      *cache.Catalog
	enricher     *backend.Enricher
	submitter    *booking.Submitter
	hub          *availability.Hub
	audit        *audit.Dispatcher
	loc          *time.Location
	logger       *logging.Logger
}

func NewAppointmentHandler(
	appointments *backend.Appointments,
	catalog *cache.Catalog,
	enricher *backend.Enricher,
	submitter *booking.Submitter,
	hub *availability.Hub,
	auditDispatcher *audit.Dispatcher,
	loc *time.Location,
	logger *logging.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		catalog:      catalog,
		enricher:     enricher,
		submitter:    submitter,
		hub:          hub,
		audit:        auditDispatcher,
		loc:          loc,
		logger:       logger,
	}
}

// ======================================================
// HELPERS
// ======================================================

func actorFrom(c *gin.Context) appointment.Actor {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return appointment.Actor{}
	}
	return appointment.Actor{UserID: sess.Identity.ID, Role: sess.Identity.Role}
}

// visibleTo keeps the rows the actor participates in. Admins see everything.
func visibleTo(actor appointment.Actor, aps []appointment.Appointment) []appointment.Appointment {
	if actor.Role == user.RoleAdmin {
		return aps
	}
	out := make([]appointment.Appointment, 0, len(aps))
	for _, ap := range aps {
		switch actor.Role {
		case user.RoleBarber:
			if ap.BarberID == actor.UserID {
				out = append(out, ap)
			}
		default:
			if ap.ClientID == actor.UserID {
				out = append(out, ap)
			}
		}
	}
	return out
}

// loadRows is the full read path for every appointment view: fetch, filter
// by actor, enrich, then project into row view models.
func (h *AppointmentHandler) loadRows(c *gin.Context) ([]views.Row, []appointment.Appointment, error) {
	sess := middleware.SessionFrom(c)
	ctx := backend.WithToken(c.Request.Context(), sess.Token)
	actor := actorFrom(c)

	aps, err := h.appointments.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	aps = visibleTo(actor, aps)

	enriched, err := h.enricher.Enrich(ctx, aps)
	if err != nil {
		// enrichment never blocks the list; partial rows beat no rows
		h.logger.Warn("enrichment failed", "error", err)
		enriched = aps
	}
	return views.Rows(actor, enriched), enriched, nil
}

// ======================================================
// PAGES
// ======================================================

func (h *AppointmentHandler) Index(c *gin.Context) {
	rows, enriched, err := h.loadRows(c)
	if err != nil {
		h.logger.Error("list appointments failed", "error", err)
		c.HTML(http.StatusOK, "appointments.html", gin.H{
			"Error":   "No se pudieron cargar las citas",
			"Session": middleware.SessionFrom(c),
		})
		return
	}

	view := views.CalendarView(c.DefaultQuery("view", string(views.ViewTable)))
	var calendar *views.Calendar
	if view == views.ViewMonth || view == views.ViewWeek || view == views.ViewDay {
		cal := views.BuildCalendar(actorFrom(c), enriched, view, time.Now().In(h.loc))
		calendar = &cal
	}

	c.HTML(http.StatusOK, "appointments.html", gin.H{
		"Rows":     rows,
		"View":     view,
		"Calendar": calendar,
		"Session":  middleware.SessionFrom(c),
		"Flash":    flash.Pop(c),
	})
}

// Form renders the booking form, for a new appointment or an edit. Every
// render gets a fresh form session key; the availability endpoint uses it to
// keep one negotiator per open form.
func (h *AppointmentHandler) Form(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.SessionFrom(c)

	haircuts, err := h.catalog.Haircuts(ctx)
	if err != nil {
		h.logger.Warn("form: haircuts unavailable", "error", err)
	}
	barbers, err := h.catalog.Barbers(ctx)
	if err != nil {
		h.logger.Warn("form: barbers unavailable", "error", err)
	}

	var editing *appointment.Appointment
	if idParam := c.Param("id"); idParam != "" {
		id, err := strconv.Atoi(idParam)
		if err != nil || id <= 0 {
			c.Redirect(http.StatusFound, "/appointments")
			return
		}
		editing, err = h.appointments.Get(backend.WithToken(ctx, sess.Token), id)
		if err != nil {
			flash.Error(c, "No se pudo cargar la cita")
			c.Redirect(http.StatusFound, "/appointments")
			return
		}
		if !appointment.CanEdit(actorFrom(c), editing) {
			flash.Set(c, flash.KindWarning, "Esta cita ya no se puede editar")
			c.Redirect(http.StatusFound, "/appointments")
			return
		}
	}

	c.HTML(http.StatusOK, "appointment_form.html", gin.H{
		"FormSession": uuid.NewString(),
		"Haircuts":    haircuts,
		"Barbers":     barbers,
		"Editing":     editing,
		"Session":     sess,
	})
}

// ======================================================
// JSON API — LIST
// ======================================================

func (h *AppointmentHandler) APIList(c *gin.Context) {
	rows, _, err := h.loadRows(c)
	if err != nil {
		httperr.FromBackend(c, err)
		return
	}
	httpresp.List(c, rows)
}

// ======================================================
// JSON API — AVAILABILITY
// ======================================================

type availabilityRequest struct {
	FormSession string `json:"formSession" binding:"required"`
	BarberID    int    `json:"barberId"`
	HaircutID   int    `json:"haircutId"`
	Date        string `json:"appointmentDate"`
	Selected    string `json:"appointmentTime"`
}

type availabilityResponse struct {
	Times            []string `json:"times"`
	Hint             string   `json:"hint,omitempty"`
	Warning          string   `json:"warning,omitempty"`
	SelectionCleared bool     `json:"selectionCleared"`
	Selected         string   `json:"selected"`
}

func (h *AppointmentHandler) APIAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Solicitud inválida")
		return
	}

	neg := h.hub.Get(req.FormSession)
	neg.SetInputs(availability.Input{
		BarberID:  req.BarberID,
		HaircutID: req.HaircutID,
		Date:      req.Date,
	})
	if req.Selected != "" {
		neg.Select(req.Selected)
	}

	res, err := neg.Resolve(c.Request.Context())
	if err != nil {
		// a superseded resolve means a newer request is already in
		// flight for this form; the stale caller just gets no update
		if err == availability.ErrSuperseded {
			c.Status(http.StatusNoContent)
			return
		}
		httperr.Internal(c, "availability_failed", availability.WarnUnavailable)
		return
	}

	httpresp.OK(c, availabilityResponse{
		Times:            res.Times,
		Hint:             res.Hint,
		Warning:          res.Warning,
		SelectionCleared: res.SelectionCleared,
		Selected:         neg.Selected(),
	})
}

// ======================================================
// JSON API — SUBMIT (CREATE / UPDATE)
// ======================================================

type submitRequest struct {
	FormSession string `json:"formSession"`
	booking.Form
}

type submitResponse struct {
	Appointment *appointment.Appointment `json:"appointment"`
}

type fieldErrorsResponse struct {
	Message string              `json:"message"`
	Fields  booking.FieldErrors `json:"fields"`
}

func (h *AppointmentHandler) APISubmit(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Solicitud inválida")
		return
	}

	var candidates []string
	if req.FormSession != "" {
		candidates = h.hub.Get(req.FormSession).Candidates()
	}

	if errs := req.Form.Validate(time.Now().In(h.loc), candidates); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, fieldErrorsResponse{
			Message: "Revisa los campos marcados",
			Fields:  errs,
		})
		return
	}

	ctx := backend.WithToken(c.Request.Context(), sess.Token)
	ap, err := h.submitter.Submit(ctx, req.Form, sess.Identity.ID, func() {
		if req.FormSession != "" {
			h.hub.Drop(req.FormSession)
		}
	})
	if err != nil {
		httperr.FromBackend(c, err)
		return
	}

	action := "appointment.create"
	if req.Form.Editing() {
		action = "appointment.update"
	}
	h.audit.Dispatch(audit.Event{
		UserID:   sess.Identity.ID,
		Action:   action,
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	httpresp.Created(c, submitResponse{Appointment: ap})
}

// ======================================================
// JSON API — MUTATIONS (CANCEL / COMPLETE / PAYMENT)
// ======================================================

// loadFor fetches the appointment a mutation targets so the action can be
// authorized against the current server state, not whatever the page shows.
func (h *AppointmentHandler) loadFor(c *gin.Context) (*appointment.Appointment, appointment.Actor, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido")
		return nil, appointment.Actor{}, false
	}

	sess := middleware.SessionFrom(c)
	ctx := backend.WithToken(c.Request.Context(), sess.Token)

	ap, err := h.appointments.Get(ctx, id)
	if err != nil {
		httperr.FromBackend(c, err)
		return nil, appointment.Actor{}, false
	}
	return ap, actorFrom(c), true
}

func (h *AppointmentHandler) APICancel(c *gin.Context) {
	ap, actor, ok := h.loadFor(c)
	if !ok {
		return
	}
	if !appointment.CanCancel(actor, ap) {
		httperr.Write(c, http.StatusForbidden, "not_allowed", "No puedes cancelar esta cita")
		return
	}

	sess := middleware.SessionFrom(c)
	ctx := backend.WithToken(c.Request.Context(), sess.Token)
	if err := h.appointments.Cancel(ctx, ap.ID); err != nil {
		httperr.FromBackend(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "appointment.cancel",
		Entity:   "appointment",
		EntityID: ap.ID,
	})
	httpresp.OK(c, gin.H{"canceled": true})
}

func (h *AppointmentHandler) APIComplete(c *gin.Context) {
	ap, actor, ok := h.loadFor(c)
	if !ok {
		return
	}
	if !appointment.CanComplete(actor, ap) {
		httperr.Write(c, http.StatusForbidden, "not_allowed", "No puedes completar esta cita")
		return
	}

	sess := middleware.SessionFrom(c)
	ctx := backend.WithToken(c.Request.Context(), sess.Token)
	updated, err := h.appointments.Complete(ctx, ap.ID)
	if err != nil {
		httperr.FromBackend(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "appointment.complete",
		Entity:   "appointment",
		EntityID: ap.ID,
	})
	httpresp.OK(c, submitResponse{Appointment: updated})
}

type paymentRequest struct {
	PaymentStatus appointment.PaymentStatus `json:"paymentStatus" binding:"required"`
}

func (h *AppointmentHandler) APIPaymentStatus(c *gin.Context) {
	ap, actor, ok := h.loadFor(c)
	if !ok {
		return
	}
	if !appointment.CanChangePayment(actor, ap) {
		httperr.Write(c, http.StatusForbidden, "not_allowed", "No puedes cambiar el pago de esta cita")
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.PaymentStatus.Valid() {
		httperr.BadRequest(c, "invalid_payment_status", "Estado de pago inválido")
		return
	}

	sess := middleware.SessionFrom(c)
	ctx := backend.WithToken(c.Request.Context(), sess.Token)
	updated, err := h.appointments.UpdatePaymentStatus(ctx, ap.ID, req.PaymentStatus)
	if err != nil {
		httperr.FromBackend(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "appointment.payment_status",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"paymentStatus": req.PaymentStatus.String()},
	})
	httpresp.OK(c, submitResponse{Appointment: updated})
}
