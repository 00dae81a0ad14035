package availability

import (
	"log/slog"
	"sync"
	"time"
)

// Hub hands out one Negotiator per booking-form session, so the generation
// guard spans successive requests from the same form.
type Hub struct {
	querier  Querier
	debounce time.Duration
	loc      *time.Location
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[string]*hubEntry
}

type hubEntry struct {
	negotiator *Negotiator
	lastUsed   time.Time
}

const maxHubEntries = 1024

func NewHub(querier Querier, debounce time.Duration, loc *time.Location, logger *slog.Logger) *Hub {
	return &Hub{
		querier:  querier,
		debounce: debounce,
		loc:      loc,
		logger:   logger,
		entries:  make(map[string]*hubEntry),
	}
}

// Get returns the negotiator for a form key, creating it on first use.
func (h *Hub) Get(key string) *Negotiator {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e, ok := h.entries[key]; ok {
		e.lastUsed = time.Now()
		return e.negotiator
	}

	if len(h.entries) >= maxHubEntries {
		h.evictOldest()
	}

	n := NewNegotiator(h.querier, h.debounce, h.loc, h.logger)
	h.entries[key] = &hubEntry{negotiator: n, lastUsed: time.Now()}
	return n
}

// Drop forgets a form's negotiator (form closed or submitted).
func (h *Hub) Drop(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.entries, key)
}

func (h *Hub) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range h.entries {
		if oldestKey == "" || e.lastUsed.Before(oldest) {
			oldestKey = k
			oldest = e.lastUsed
		}
	}
	if oldestKey != "" {
		delete(h.entries, oldestKey)
	}
}
