package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/audit"
	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/cache"
	"github.com/barberdev/barberdev-web/internal/domain/appointment"
	"github.com/barberdev/barberdev-web/internal/domain/user"
	"github.com/barberdev/barberdev-web/internal/flash"
	"github.com/barberdev/barberdev-web/internal/logging"
	"github.com/barberdev/barberdev-web/internal/middleware"
	"github.com/barberdev/barberdev-web/internal/validators"
	"github.com/barberdev/barberdev-web/internal/views"
)

// ======================================================
// HANDLER
// ======================================================

type DashboardHandler struct {
	appointments *backend.Appointments
	users        *backend.Users
	catalog      *cache.Catalog
	enricher     *backend.Enricher
	audit        *audit.Dispatcher
	loc          *time.Location
	logger       *logging.Logger
}

func NewDashboardHandler(
	appointments *backend.Appointments,
	users *backend.Users,
	catalog *cache.Catalog,
	enricher *backend.Enricher,
	auditDispatcher *audit.Dispatcher,
	loc *time.Location,
	logger *logging.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		appointments: appointments,
		users:        users,
		catalog:      catalog,
		enricher:     enricher,
		audit:        auditDispatcher,
		loc:          loc,
		logger:       logger,
	}
}

// ======================================================
// BARBER DASHBOARD
// ======================================================

func (h *DashboardHandler) Barber(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	ctx := backend.WithToken(c.Request.Context(), sess.Token)
	actor := appointment.Actor{UserID: sess.Identity.ID, Role: sess.Identity.Role}

	aps, err := h.appointments.List(ctx)
	if err != nil {
		h.logger.Error("barber dashboard: list failed", "error", err)
		c.HTML(http.StatusOK, "dashboard_barber.html", gin.H{
			"Error":   "No se pudieron cargar las citas",
			"Session": sess,
		})
		return
	}
	aps = visibleTo(actor, aps)

	enriched, err := h.enricher.Enrich(ctx, aps)
	if err != nil {
		h.logger.Warn("barber dashboard: enrichment failed", "error", err)
		enriched = aps
	}

	today := time.Now().In(h.loc).Format("2006-01-02")
	rows := views.Rows(actor, enriched)

	var todayRows, upcoming []views.Row
	for _, r := range rows {
		switch {
		case r.Date == today:
			todayRows = append(todayRows, r)
		case r.Date > today:
			upcoming = append(upcoming, r)
		}
	}

	c.HTML(http.StatusOK, "dashboard_barber.html", gin.H{
		"Today":    todayRows,
		"Upcoming": upcoming,
		"Session":  sess,
		"Flash":    flash.Pop(c),
	})
}

// ======================================================
// ADMIN DASHBOARD
// ======================================================

type adminStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Canceled  int `json:"canceled"`
	Paid      int `json:"paid"`
}

func tally(aps []appointment.Appointment) adminStats {
	var s adminStats
	s.Total = len(aps)
	for _, ap := range aps {
		switch ap.Status {
		case appointment.StatusPending:
			s.Pending++
		case appointment.StatusConfirmed:
			s.Confirmed++
		case appointment.StatusCompleted:
			s.Completed++
		case appointment.StatusCanceled:
			s.Canceled++
		}
		if ap.PaymentStatus == appointment.PaymentPaid {
			s.Paid++
		}
	}
	return s
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	ctx := backend.WithToken(c.Request.Context(), sess.Token)
	actor := appointment.Actor{UserID: sess.Identity.ID, Role: sess.Identity.Role}

	aps, err := h.appointments.List(ctx)
	if err != nil {
		h.logger.Error("admin dashboard: list failed", "error", err)
		c.HTML(http.StatusOK, "dashboard_admin.html", gin.H{
			"Error":   "No se pudieron cargar las citas",
			"Session": sess,
		})
		return
	}

	enriched, err := h.enricher.Enrich(ctx, aps)
	if err != nil {
		h.logger.Warn("admin dashboard: enrichment failed", "error", err)
		enriched = aps
	}

	barbers, err := h.catalog.Barbers(ctx)
	if err != nil {
		h.logger.Warn("admin dashboard: barbers unavailable", "error", err)
	}

	c.HTML(http.StatusOK, "dashboard_admin.html", gin.H{
		"Stats":   tally(enriched),
		"Rows":    views.Rows(actor, enriched),
		"Barbers": barbers,
		"Session": sess,
		"Flash":   flash.Pop(c),
	})
}

// ======================================================
// STAFF CREATION (ADMIN)
// ======================================================

type staffForm struct {
	FullName    string `form:"fullName" binding:"required"`
	Email       string `form:"email" binding:"required"`
	Password    string `form:"password" binding:"required"`
	PhoneNumber string `form:"phoneNumber"`
	Role        string `form:"role" binding:"required"` // barber | admin
}

func (h *DashboardHandler) CreateStaff(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	var form staffForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Error(c, "Completa todos los campos obligatorios")
		c.Redirect(http.StatusFound, "/dashboard/admin")
		return
	}

	role := user.NormalizeRole(form.Role)
	if role != user.RoleBarber && role != user.RoleAdmin {
		flash.Error(c, "Rol inválido")
		c.Redirect(http.StatusFound, "/dashboard/admin")
		return
	}

	if !validators.IsEmailDomainValid(form.Email) {
		flash.Error(c, "El dominio del correo no existe")
		c.Redirect(http.StatusFound, "/dashboard/admin")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), sess.Token)
	created, err := h.users.CreateStaff(ctx, backend.CreateStaffRequest{
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
		Role:     role.StaffTag(),
	})
	if err != nil {
		h.logger.Warn("create staff failed", "email", form.Email, "error", err)
		flash.Error(c, "No se pudo crear el usuario")
		c.Redirect(http.StatusFound, "/dashboard/admin")
		return
	}

	// a new barber invalidates the cached slider/selector list
	h.catalog.InvalidateBarbers(ctx)

	h.audit.Dispatch(audit.Event{
		UserID:   sess.Identity.ID,
		Action:   "staff.create",
		Entity:   "user",
		EntityID: created.ID,
		Metadata: map[string]any{"role": role.String()},
	})

	flash.Success(c, "Usuario creado correctamente")
	c.Redirect(http.StatusFound, "/dashboard/admin")
}
