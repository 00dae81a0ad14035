package audit

import "log/slog"

// Event is one user-visible action worth tracing (appointment created,
// canceled, completed, payment changed, staff created).
type Event struct {
	UserID   int
	Action   string
	Entity   string
	EntityID int
	Metadata any
}

// Dispatcher records activity events off the request path. The queue is
// bounded and events are dropped rather than ever blocking a page.
type Dispatcher struct {
	logger *slog.Logger
	queue  chan Event
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		attrs := []any{
			"action", ev.Action,
			"entity", ev.Entity,
		}
		if ev.UserID > 0 {
			attrs = append(attrs, "userId", ev.UserID)
		}
		if ev.EntityID > 0 {
			attrs = append(attrs, "entityId", ev.EntityID)
		}
		if ev.Metadata != nil {
			attrs = append(attrs, "metadata", ev.Metadata)
		}
		d.logger.Info("activity", attrs...)
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("activity queue full, dropping event", "action", ev.Action)
	}
}
