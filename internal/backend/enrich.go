package backend

import (
	"context"

	"github.com/barberdev/barberdev-web/internal/domain/appointment"
	"github.com/barberdev/barberdev-web/internal/domain/user"
)

// UserSource and HaircutSource are the batch-fetch contracts the enrichment
// join needs. Users and Haircuts satisfy them; tests substitute fakes.
type UserSource interface {
	Get(ctx context.Context, id int) (*user.Profile, error)
}

type HaircutSource interface {
	List(ctx context.Context) ([]appointment.Haircut, error)
}

// Enricher resolves the foreign-key ids of a raw appointment list into
// display-ready nested objects. The join is a derived, non-authoritative
// view: unresolvable ids get a placeholder carrying only the id so rendering
// degrades instead of crashing.
type Enricher struct {
	users    UserSource
	haircuts HaircutSource
}

func NewEnricher(users UserSource, haircuts HaircutSource) *Enricher {
	return &Enricher{users: users, haircuts: haircuts}
}

// Enrich attaches client, barber and haircut objects to every appointment.
// Each distinct referenced id is fetched exactly once. Already-nested partial
// objects from the backend are kept only when they resolve nowhere else.
func (e *Enricher) Enrich(ctx context.Context, aps []appointment.Appointment) ([]appointment.Appointment, error) {
	userIDs := map[int]struct{}{}
	for i := range aps {
		if aps[i].ClientID > 0 {
			userIDs[aps[i].ClientID] = struct{}{}
		}
		if aps[i].BarberID > 0 {
			userIDs[aps[i].BarberID] = struct{}{}
		}
	}

	users := e.fetchUsers(ctx, userIDs)

	haircutsByID := map[int]*appointment.Haircut{}
	if catalog, err := e.haircuts.List(ctx); err == nil {
		for i := range catalog {
			h := catalog[i]
			haircutsByID[h.ID] = &h
		}
	}

	return mergeEnrichment(aps, users, haircutsByID), nil
}

func (e *Enricher) fetchUsers(ctx context.Context, ids map[int]struct{}) map[int]*user.Profile {
	out := make(map[int]*user.Profile, len(ids))
	for id := range ids {
		p, err := e.users.Get(ctx, id)
		if err != nil || p == nil {
			// leave unresolved: merge falls back to the backend's partial
			// object, then to a placeholder
			continue
		}
		out[id] = p
	}
	return out
}

// mergeEnrichment is the pure join: same inputs always yield the same
// enriched output. It never mutates the input slice elements it was given
// beyond attaching the resolved sub-objects.
func mergeEnrichment(
	aps []appointment.Appointment,
	users map[int]*user.Profile,
	haircuts map[int]*appointment.Haircut,
) []appointment.Appointment {
	out := make([]appointment.Appointment, len(aps))
	copy(out, aps)

	for i := range out {
		ap := &out[i]

		if p, ok := users[ap.ClientID]; ok {
			ap.Client = p
		} else if ap.Client == nil && ap.ClientID > 0 {
			ap.Client = user.Placeholder(ap.ClientID)
		}

		if p, ok := users[ap.BarberID]; ok {
			ap.Barber = p
		} else if ap.Barber == nil && ap.BarberID > 0 {
			ap.Barber = user.Placeholder(ap.BarberID)
		}

		if h, ok := haircuts[ap.HaircutID]; ok {
			ap.Haircut = h
		} else if ap.Haircut == nil && ap.HaircutID > 0 {
			ap.Haircut = &appointment.Haircut{ID: ap.HaircutID}
		}
	}
	return out
}
