package appointment

import (
	"github.com/barberdev/barberdev-web/internal/domain/user"
)

// Haircut is a read-only service offering.
type Haircut struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Active          bool    `json:"active"`
}

// Appointment is the central entity. The backend may return only the numeric
// references; Client, Barber and Haircut are attached by the enrichment join
// and are a derived view, never written back.
type Appointment struct {
	ID        int `json:"id"`
	ClientID  int `json:"clientId"`
	BarberID  int `json:"barberId"`
	HaircutID int `json:"haircutId"`

	// Split shop-local fields reconstructed from the wire startTime.
	Date string `json:"appointmentDate"` // YYYY-MM-DD
	Time string `json:"appointmentTime"` // HH:MM

	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Notes         string        `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`

	Client  *user.Profile `json:"client,omitempty"`
	Barber  *user.Profile `json:"barber,omitempty"`
	Haircut *Haircut      `json:"haircut,omitempty"`
}
