package views

import "github.com/barberdev/barberdev-web/internal/domain/appointment"

// StatusLabel is the user-facing badge text for a lifecycle status.
func StatusLabel(s appointment.Status) string {
	switch s {
	case appointment.StatusPending:
		return "Pendiente"
	case appointment.StatusConfirmed:
		return "Confirmada"
	case appointment.StatusCompleted:
		return "Completada"
	case appointment.StatusCanceled:
		return "Cancelada"
	}
	return "Desconocido"
}

// PaymentLabel is the user-facing badge text for a payment status.
func PaymentLabel(p appointment.PaymentStatus) string {
	switch p {
	case appointment.PaymentPending:
		return "Pendiente"
	case appointment.PaymentPaid:
		return "Pagado"
	case appointment.PaymentFailed:
		return "Fallido"
	}
	return "Desconocido"
}
