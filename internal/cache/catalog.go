package cache

import (
	"context"

	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/domain/appointment"
	"github.com/barberdev/barberdev-web/internal/domain/user"
)

const (
	keyHaircuts = "reference:haircuts"
	keyBarbers  = "reference:barbers"
)

// Catalog serves the booking form's reference data through the TTL cache.
type Catalog struct {
	haircuts *backend.Haircuts
	users    *backend.Users
	ref      *Reference
}

func NewCatalog(haircuts *backend.Haircuts, users *backend.Users, ref *Reference) *Catalog {
	return &Catalog{haircuts: haircuts, users: users, ref: ref}
}

func (c *Catalog) Haircuts(ctx context.Context) ([]appointment.Haircut, error) {
	var cached []appointment.Haircut
	if c.ref.Get(ctx, keyHaircuts, &cached) {
		return cached, nil
	}

	fresh, err := c.haircuts.List(ctx)
	if err != nil {
		return nil, err
	}
	c.ref.Set(ctx, keyHaircuts, fresh)
	return fresh, nil
}

func (c *Catalog) Barbers(ctx context.Context) ([]user.Profile, error) {
	var cached []user.Profile
	if c.ref.Get(ctx, keyBarbers, &cached) {
		return cached, nil
	}

	fresh, err := c.users.Barbers(ctx)
	if err != nil {
		return nil, err
	}
	c.ref.Set(ctx, keyBarbers, fresh)
	return fresh, nil
}

// InvalidateBarbers drops the cached barber list, e.g. after staff creation.
func (c *Catalog) InvalidateBarbers(ctx context.Context) {
	c.ref.Invalidate(ctx, keyBarbers)
}
