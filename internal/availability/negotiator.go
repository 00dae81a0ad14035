package availability

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/validators"
)

// ErrSuperseded means the inputs changed while a query was in flight (or
// still inside the debounce window); the caller drops the result and waits
// for the resolution that matches current state.
var ErrSuperseded = errors.New("availability query superseded")

// HintSelectService is surfaced when barber and date are set but no service
// is; the endpoint needs a service id for a meaningful answer.
const HintSelectService = "Selecciona un servicio para ver los horarios disponibles"

// WarnUnavailable is the non-fatal warning for a failed negotiation.
const WarnUnavailable = "No se pudo cargar la disponibilidad"

// Querier is the one backend call the negotiator depends on.
type Querier interface {
	Availability(ctx context.Context, barberID int, date string, haircutID int) (*backend.AvailabilityPayload, error)
}

// Input is the (barber, service, date) triple availability depends on.
type Input struct {
	BarberID  int
	HaircutID int
	Date      string // YYYY-MM-DD
}

// Result is one resolved candidate set.
type Result struct {
	Times            []string
	Hint             string
	Warning          string
	SelectionCleared bool
}

// Negotiator computes the candidate times for its current input triple.
// Rapid input changes are coalesced by a debounce window, and a generation
// counter guards against acting on a response whose inputs are stale.
type Negotiator struct {
	querier  Querier
	debounce time.Duration
	loc      *time.Location
	logger   *slog.Logger

	mu         sync.Mutex
	gen        uint64
	input      Input
	selected   string
	candidates []string
}

func NewNegotiator(querier Querier, debounce time.Duration, loc *time.Location, logger *slog.Logger) *Negotiator {
	if debounce < 0 {
		debounce = 0
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Negotiator{querier: querier, debounce: debounce, loc: loc, logger: logger}
}

// SetInputs records a new input triple. Any change bumps the generation so
// in-flight resolutions for the old triple are discarded.
func (n *Negotiator) SetInputs(in Input) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if in == n.input {
		return
	}
	n.input = in
	n.gen++
}

// Select records the user's chosen time.
func (n *Negotiator) Select(hhmm string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selected = hhmm
}

func (n *Negotiator) Selected() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.selected
}

// Candidates returns the last resolved candidate set.
func (n *Negotiator) Candidates() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.candidates))
	copy(out, n.candidates)
	return out
}

// Resolve computes the candidate set for the current inputs.
//
// Preconditions short-circuit without any network call: barber and date must
// both be set, the date must have the strict calendar shape, and a service
// must be chosen (the endpoint requires it; without one the candidate set is
// cleared and a hint is surfaced instead).
//
// A server failure clears the candidates and comes back as a warning, never
// an error: the rest of the form stays editable.
func (n *Negotiator) Resolve(ctx context.Context) (*Result, error) {
	n.mu.Lock()
	gen := n.gen
	in := n.input
	n.mu.Unlock()

	if in.BarberID <= 0 || in.Date == "" {
		n.clear(gen, true)
		return &Result{}, nil
	}
	if !validators.IsCalendarDate(in.Date) {
		n.clear(gen, true)
		return &Result{}, nil
	}
	if in.HaircutID <= 0 {
		n.clear(gen, true)
		return &Result{Hint: HintSelectService}, nil
	}

	if err := n.wait(ctx); err != nil {
		return nil, err
	}
	if n.stale(gen) {
		return nil, ErrSuperseded
	}

	payload, err := n.querier.Availability(ctx, in.BarberID, in.Date, in.HaircutID)
	if n.stale(gen) {
		return nil, ErrSuperseded
	}
	if err != nil {
		n.logger.Warn("availability query failed", "barberId", in.BarberID, "date", in.Date, "error", err)
		n.clear(gen, false)
		return &Result{Warning: WarnUnavailable}, nil
	}

	times := Normalize(payload, n.loc)

	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return nil, ErrSuperseded
	}
	n.candidates = times

	res := &Result{Times: times}
	if n.selected != "" && !contains(times, n.selected) {
		n.selected = ""
		res.SelectionCleared = true
	}
	return res, nil
}

// wait applies the debounce window, respecting cancellation.
func (n *Negotiator) wait(ctx context.Context) error {
	if n.debounce == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(n.debounce)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (n *Negotiator) stale(gen uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return gen != n.gen
}

// clear drops the candidate set (and optionally the selection) if gen is
// still current.
func (n *Negotiator) clear(gen uint64, clearSelection bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return
	}
	n.candidates = nil
	if clearSelection {
		n.selected = ""
	}
}

// Normalize folds both availability response shapes into an ordered list of
// local HH:MM strings.
func Normalize(payload *backend.AvailabilityPayload, loc *time.Location) []string {
	if payload == nil {
		return []string{}
	}

	times := make([]string, 0, len(payload.Times)+len(payload.Intervals))
	for _, t := range payload.Times {
		if hhmm := trimToHHMM(t); hhmm != "" {
			times = append(times, hhmm)
		}
	}
	for _, iv := range payload.Intervals {
		if hhmm := timeOfDay(iv.Start, loc); hhmm != "" {
			times = append(times, hhmm)
		}
	}
	return times
}

// timeOfDay extracts HH:MM from the local representation of a start instant.
// Zone-less timestamps are taken at face value; zoned ones are rendered in
// the shop location rather than UTC, so slots never shift by an offset.
func timeOfDay(start string, loc *time.Location) string {
	s := strings.TrimSpace(start)
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.Format("15:04")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc).Format("15:04")
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04")
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04")
	}
	return ""
}

func trimToHHMM(t string) string {
	s := strings.TrimSpace(t)
	if len(s) >= 5 && s[2] == ':' {
		return s[:5]
	}
	return timeOfDay(s, time.Local)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
