package booking

import (
	"time"

	"github.com/barberdev/barberdev-web/internal/validators"
)

// Form carries the five booking fields as the user entered them. A zero
// AppointmentID means create; anything else is an edit of that appointment.
type Form struct {
	AppointmentID int    `form:"appointmentId" json:"appointmentId"`
	BarberID      int    `form:"barberId" json:"barberId"`
	HaircutID     int    `form:"haircutId" json:"haircutId"`
	Date          string `form:"appointmentDate" json:"appointmentDate"` // YYYY-MM-DD
	Time          string `form:"appointmentTime" json:"appointmentTime"` // HH:MM
	Notes         string `form:"notes" json:"notes"`
}

func (f Form) Editing() bool {
	return f.AppointmentID > 0
}

// FieldErrors maps field name to one message. Inline errors do not dismiss
// on their own; the user corrects and resubmits.
type FieldErrors map[string]string

// Field error messages, mirrored in the form templates.
const (
	msgBarberRequired  = "Debes seleccionar un barbero"
	msgHaircutRequired = "Debes seleccionar un servicio"
	msgDateRequired    = "Debes seleccionar una fecha"
	msgDateInvalid     = "Fecha inválida"
	msgDatePast        = "No puedes seleccionar una fecha pasada"
	msgTimeRequired    = "Debes seleccionar una hora"
	msgTimeUnavailable = "La hora seleccionada no está disponible"
)

// Validate evaluates every rule together so each field gets its own error.
// candidates is the negotiator's current set; when non-empty, the chosen
// time must be a member. A date equal to today passes; yesterday does not.
func (f Form) Validate(now time.Time, candidates []string) FieldErrors {
	errs := FieldErrors{}

	if f.BarberID <= 0 {
		errs["barberId"] = msgBarberRequired
	}
	if f.HaircutID <= 0 {
		errs["haircutId"] = msgHaircutRequired
	}

	switch {
	case f.Date == "":
		errs["appointmentDate"] = msgDateRequired
	case !validators.IsCalendarDate(f.Date):
		errs["appointmentDate"] = msgDateInvalid
	default:
		today := now.Format("2006-01-02")
		if f.Date < today {
			errs["appointmentDate"] = msgDatePast
		}
	}

	if f.Time == "" {
		errs["appointmentTime"] = msgTimeRequired
	} else if len(candidates) > 0 && !containsTime(candidates, f.Time) {
		errs["appointmentTime"] = msgTimeUnavailable
	}

	return errs
}

func containsTime(candidates []string, hhmm string) bool {
	for _, c := range candidates {
		if c == hhmm {
			return true
		}
	}
	return false
}
