package appointment

import "encoding/json"

// ===============================
// Appointment Status
// ===============================

type Status int

const (
	StatusUnknown   Status = 0
	StatusPending   Status = 1
	StatusConfirmed Status = 2
	StatusCompleted Status = 3
	StatusCanceled  Status = 4
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusCanceled
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusCompleted:
		return "completed"
	case StatusCanceled:
		return "canceled"
	}
	return "unknown"
}

// ===============================
// Payment Status
// ===============================

// Payment state moves independently of the appointment lifecycle. The only
// coupling is that terminal appointments freeze payment edits.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = 0
	PaymentPending PaymentStatus = 1
	PaymentPaid    PaymentStatus = 2
	PaymentFailed  PaymentStatus = 3
)

func (p PaymentStatus) Valid() bool {
	return p >= PaymentPending && p <= PaymentFailed
}

func (p PaymentStatus) String() string {
	switch p {
	case PaymentPending:
		return "pending"
	case PaymentPaid:
		return "paid"
	case PaymentFailed:
		return "failed"
	}
	return "unknown"
}

// ===============================
// Wire decoding
// ===============================

// Statuses arrive as integers from the current backend, but older snapshots
// used symbolic tags. Accept both.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*s = Status(int(v))
	case string:
		switch v {
		case "pending", "Pending":
			*s = StatusPending
		case "confirmed", "Confirmed":
			*s = StatusConfirmed
		case "completed", "Completed":
			*s = StatusCompleted
		case "canceled", "cancelled", "Canceled", "Cancelled":
			*s = StatusCanceled
		default:
			*s = StatusUnknown
		}
	default:
		*s = StatusUnknown
	}
	return nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(s))
}

func (p *PaymentStatus) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*p = PaymentStatus(int(v))
	case string:
		switch v {
		case "pending", "Pending":
			*p = PaymentPending
		case "paid", "Paid":
			*p = PaymentPaid
		case "failed", "Failed":
			*p = PaymentFailed
		default:
			*p = PaymentUnknown
		}
	default:
		*p = PaymentUnknown
	}
	return nil
}

func (p PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(p))
}
