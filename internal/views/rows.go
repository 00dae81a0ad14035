package views

import (
	"fmt"
	"time"

	"github.com/barberdev/barberdev-web/internal/domain/appointment"
	"github.com/barberdev/barberdev-web/internal/domain/user"
)

// Row is one appointment prepared for the table and card presentations.
type Row struct {
	ID            int                       `json:"id"`
	DateTime      string                    `json:"dateTime"` // dd/MM/yyyy a las HH:mm
	Date          string                    `json:"date"`
	Time          string                    `json:"time"`
	ServiceName   string                    `json:"serviceName"`
	ClientName    string                    `json:"clientName"`
	BarberName    string                    `json:"barberName"`
	Status        appointment.Status        `json:"status"`
	StatusLabel   string                    `json:"statusLabel"`
	PaymentStatus appointment.PaymentStatus `json:"paymentStatus"`
	PaymentLabel  string                    `json:"paymentLabel"`
	Notes         string                    `json:"notes,omitempty"`
	Actions       Actions                   `json:"actions"`

	// Confirm prompts for the destructive actions, carrying the
	// human-readable date/time.
	ConfirmCancel   string `json:"confirmCancel"`
	ConfirmComplete string `json:"confirmComplete"`
}

// Rows builds the table/card view models for one actor over an enriched
// collection.
func Rows(actor appointment.Actor, aps []appointment.Appointment) []Row {
	out := make([]Row, 0, len(aps))
	for i := range aps {
		out = append(out, buildRow(actor, &aps[i]))
	}
	return out
}

func buildRow(actor appointment.Actor, ap *appointment.Appointment) Row {
	dateTime := FormatDateTime(ap.Date, ap.Time)

	return Row{
		ID:              ap.ID,
		DateTime:        dateTime,
		Date:            ap.Date,
		Time:            ap.Time,
		ServiceName:     haircutName(ap),
		ClientName:      profileName(ap.Client),
		BarberName:      profileName(ap.Barber),
		Status:          ap.Status,
		StatusLabel:     StatusLabel(ap.Status),
		PaymentStatus:   ap.PaymentStatus,
		PaymentLabel:    PaymentLabel(ap.PaymentStatus),
		Notes:           ap.Notes,
		Actions:         ActionsFor(actor, ap),
		ConfirmCancel:   fmt.Sprintf("¿Estás seguro de que deseas cancelar la cita del %s?", dateTime),
		ConfirmComplete: fmt.Sprintf("¿Estás seguro de que deseas marcar como completada la cita del %s?", dateTime),
	}
}

// FormatDateTime renders the split fields as "dd/MM/yyyy a las HH:mm",
// falling back to the raw values when they do not parse.
func FormatDateTime(date, hhmm string) string {
	t, err := time.Parse("2006-01-02 15:04", date+" "+hhmm)
	if err != nil {
		return date + " " + hhmm
	}
	return t.Format("02/01/2006") + " a las " + t.Format("15:04")
}

func haircutName(ap *appointment.Appointment) string {
	if ap.Haircut != nil && ap.Haircut.Name != "" {
		return ap.Haircut.Name
	}
	return "N/A"
}

func profileName(p *user.Profile) string {
	if p == nil || p.FullName == "" {
		return "N/A"
	}
	return p.FullName
}
