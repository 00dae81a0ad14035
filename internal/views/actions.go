package views

import "github.com/barberdev/barberdev-web/internal/domain/appointment"

// Actions is the per-row control set. It is a rendering convenience only;
// the backend enforces the real rules.
type Actions struct {
	Edit          bool `json:"edit"`
	Cancel        bool `json:"cancel"`
	Complete      bool `json:"complete"`
	ChangePayment bool `json:"changePayment"`
}

func (a Actions) Any() bool {
	return a.Edit || a.Cancel || a.Complete || a.ChangePayment
}

// ActionsFor computes the controls a row offers. A terminal appointment
// offers none, regardless of role.
func ActionsFor(actor appointment.Actor, ap *appointment.Appointment) Actions {
	if ap.Status.Terminal() {
		return Actions{}
	}
	return Actions{
		Edit:          appointment.CanEdit(actor, ap),
		Cancel:        appointment.CanCancel(actor, ap),
		Complete:      appointment.CanComplete(actor, ap),
		ChangePayment: appointment.CanChangePayment(actor, ap),
	}
}
