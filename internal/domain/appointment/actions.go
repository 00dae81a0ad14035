package appointment

import "github.com/barberdev/barberdev-web/internal/domain/user"

// ===============================
// Role / ownership action rules
// ===============================

// Actor is who is looking at an appointment. Ownership is resolved against
// the appointment's client/barber references.
type Actor struct {
	UserID int
	Role   user.Role
}

func (a Actor) owns(ap *Appointment) bool {
	return a.Role == user.RoleClient && a.UserID == ap.ClientID
}

func (a Actor) assigned(ap *Appointment) bool {
	return a.Role == user.RoleBarber && a.UserID == ap.BarberID
}

// CanEdit: owner client, assigned barber or any admin, while non-terminal.
func CanEdit(a Actor, ap *Appointment) bool {
	if ap.Status.Terminal() {
		return false
	}
	return a.owns(ap) || a.assigned(ap) || a.Role == user.RoleAdmin
}

// CanCancel: owner client or any admin, unless already completed. Canceling
// a canceled appointment is a no-op the backend tolerates, so only the
// completed state blocks it here.
func CanCancel(a Actor, ap *Appointment) bool {
	if ap.Status == StatusCompleted {
		return false
	}
	return a.owns(ap) || a.Role == user.RoleAdmin
}

// CanComplete: assigned barber or any admin, while non-terminal.
func CanComplete(a Actor, ap *Appointment) bool {
	if ap.Status.Terminal() {
		return false
	}
	return a.assigned(ap) || a.Role == user.RoleAdmin
}

// CanChangePayment: owner client or any admin, while non-terminal. Terminal
// appointments freeze payment status.
func CanChangePayment(a Actor, ap *Appointment) bool {
	if ap.Status.Terminal() {
		return false
	}
	return a.owns(ap) || a.Role == user.RoleAdmin
}
