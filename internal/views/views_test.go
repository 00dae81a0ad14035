package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberdev/barberdev-web/internal/domain/appointment"
	"github.com/barberdev/barberdev-web/internal/domain/user"
)

func TestActionsForTerminalSuppressesEverything(t *testing.T) {
	admin := appointment.Actor{UserID: 99, Role: user.RoleAdmin}

	for _, status := range []appointment.Status{appointment.StatusCompleted, appointment.StatusCanceled} {
		ap := &appointment.Appointment{ID: 1, ClientID: 1, BarberID: 2, Status: status}
		a := ActionsFor(admin, ap)
		assert.False(t, a.Any(), status.String())
	}
}

func TestActionsForOwner(t *testing.T) {
	owner := appointment.Actor{UserID: 1, Role: user.RoleClient}
	ap := &appointment.Appointment{ID: 1, ClientID: 1, BarberID: 2, Status: appointment.StatusPending}

	a := ActionsFor(owner, ap)
	assert.True(t, a.Edit)
	assert.True(t, a.Cancel)
	assert.False(t, a.Complete)
	assert.True(t, a.ChangePayment)
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "07/03/2025 a las 14:30", FormatDateTime("2025-03-07", "14:30"))
	// unparseable values fall through untouched
	assert.Equal(t, "pronto 14:30", FormatDateTime("pronto", "14:30"))
}

func TestBuildRowFallbacks(t *testing.T) {
	actor := appointment.Actor{UserID: 1, Role: user.RoleClient}
	ap := appointment.Appointment{
		ID:       7,
		ClientID: 1,
		BarberID: 2,
		Date:     "2025-03-07",
		Time:     "14:30",
		Status:   appointment.StatusConfirmed,
	}

	rows := Rows(actor, []appointment.Appointment{ap})
	require.Len(t, rows, 1)
	r := rows[0]

	assert.Equal(t, "N/A", r.ServiceName)
	assert.Equal(t, "N/A", r.ClientName)
	assert.Equal(t, "N/A", r.BarberName)
	assert.Equal(t, "Confirmada", r.StatusLabel)
	assert.Equal(t, "¿Estás seguro de que deseas cancelar la cita del 07/03/2025 a las 14:30?", r.ConfirmCancel)
	assert.Equal(t, "¿Estás seguro de que deseas marcar como completada la cita del 07/03/2025 a las 14:30?", r.ConfirmComplete)
}

func TestRowUsesEnrichedNames(t *testing.T) {
	actor := appointment.Actor{UserID: 1, Role: user.RoleClient}
	ap := appointment.Appointment{
		ID:       7,
		ClientID: 1,
		BarberID: 2,
		Date:     "2025-03-07",
		Time:     "14:30",
		Status:   appointment.StatusPending,
		Client:   &user.Profile{ID: 1, FullName: "Cliente Uno"},
		Barber:   &user.Profile{ID: 2, FullName: "Barbero Dos"},
		Haircut:  &appointment.Haircut{ID: 3, Name: "Fade"},
	}

	r := Rows(actor, []appointment.Appointment{ap})[0]
	assert.Equal(t, "Cliente Uno", r.ClientName)
	assert.Equal(t, "Barbero Dos", r.BarberName)
	assert.Equal(t, "Fade", r.ServiceName)
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Pendiente", StatusLabel(appointment.StatusPending))
	assert.Equal(t, "Confirmada", StatusLabel(appointment.StatusConfirmed))
	assert.Equal(t, "Completada", StatusLabel(appointment.StatusCompleted))
	assert.Equal(t, "Cancelada", StatusLabel(appointment.StatusCanceled))

	assert.Equal(t, "Pagado", PaymentLabel(appointment.PaymentPaid))
	assert.Equal(t, "Fallido", PaymentLabel(appointment.PaymentFailed))
}

func TestBuildCalendarMonth(t *testing.T) {
	actor := appointment.Actor{UserID: 99, Role: user.RoleAdmin}
	current := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	aps := []appointment.Appointment{
		{ID: 1, ClientID: 1, BarberID: 2, Date: "2025-03-07", Time: "14:30", Status: appointment.StatusPending},
		{ID: 2, ClientID: 1, BarberID: 2, Date: "2025-03-07", Time: "16:00", Status: appointment.StatusPending},
	}

	cal := BuildCalendar(actor, aps, ViewMonth, current)
	assert.Equal(t, ViewMonth, cal.View)
	assert.Len(t, cal.Days, 31)

	var found *CalendarDay
	for i := range cal.Days {
		if cal.Days[i].Date == "2025-03-07" {
			found = &cal.Days[i]
		}
	}
	require.NotNil(t, found)
	assert.Len(t, found.Rows, 2)
}

func TestBuildCalendarWeekSpansSundayToSaturday(t *testing.T) {
	actor := appointment.Actor{UserID: 99, Role: user.RoleAdmin}
	// a Saturday
	current := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	cal := BuildCalendar(actor, nil, ViewWeek, current)
	require.Len(t, cal.Days, 7)
	assert.Equal(t, "2025-03-09", cal.Days[0].Date)
	assert.Equal(t, "2025-03-15", cal.Days[6].Date)
}
