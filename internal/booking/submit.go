package booking

import (
	"context"

	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/domain/appointment"
)

// Submitter turns a validated form into the create or update call.
type Submitter struct {
	appointments *backend.Appointments
}

func NewSubmitter(appointments *backend.Appointments) *Submitter {
	return &Submitter{appointments: appointments}
}

// Submit branches on edit-vs-create. Creation needs a resolved session
// identity for the client reference: a missing id is a local precondition
// failure, not something sent to the server. onSuccess fires only after the
// backend accepted the request (typically: close the form and reload the
// collection).
func (s *Submitter) Submit(ctx context.Context, f Form, clientID int, onSuccess func()) (*appointment.Appointment, error) {
	var (
		ap  *appointment.Appointment
		err error
	)

	if f.Editing() {
		in := backend.UpdateInput{
			BarberID:  &f.BarberID,
			HaircutID: &f.HaircutID,
			Date:      &f.Date,
			Time:      &f.Time,
			Notes:     &f.Notes,
		}
		ap, err = s.appointments.Update(ctx, f.AppointmentID, in)
	} else {
		if clientID <= 0 {
			return nil, backend.Precondition("no hay información del usuario; inicia sesión nuevamente")
		}
		in := backend.CreateInput{
			ClientID:  clientID,
			BarberID:  f.BarberID,
			HaircutID: f.HaircutID,
			Date:      f.Date,
			Time:      f.Time,
			Notes:     f.Notes,
		}
		ap, err = s.appointments.Create(ctx, in)
	}

	if err != nil {
		return nil, err
	}
	if onSuccess != nil {
		onSuccess()
	}
	return ap, nil
}
