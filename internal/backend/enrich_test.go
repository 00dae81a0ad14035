package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberdev/barberdev-web/internal/domain/appointment"
	"github.com/barberdev/barberdev-web/internal/domain/user"
)

type fakeUserSource struct {
	profiles map[int]*user.Profile
	calls    map[int]int
}

func (f *fakeUserSource) Get(_ context.Context, id int) (*user.Profile, error) {
	if f.calls == nil {
		f.calls = map[int]int{}
	}
	f.calls[id]++
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

type fakeHaircutSource struct {
	haircuts []appointment.Haircut
	err      error
}

func (f *fakeHaircutSource) List(_ context.Context) ([]appointment.Haircut, error) {
	return f.haircuts, f.err
}

func TestEnrichFetchesEachUserOnce(t *testing.T) {
	users := &fakeUserSource{profiles: map[int]*user.Profile{
		1: {ID: 1, FullName: "Cliente Uno"},
		5: {ID: 5, FullName: "Barbero Cinco"},
	}}
	haircuts := &fakeHaircutSource{haircuts: []appointment.Haircut{
		{ID: 2, Name: "Fade"},
	}}
	e := NewEnricher(users, haircuts)

	aps := []appointment.Appointment{
		{ID: 10, ClientID: 1, BarberID: 5, HaircutID: 2},
		{ID: 11, ClientID: 1, BarberID: 5, HaircutID: 2},
	}

	out, err := e.Enrich(context.Background(), aps)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// two appointments, two distinct users, one fetch each
	assert.Equal(t, 1, users.calls[1])
	assert.Equal(t, 1, users.calls[5])

	assert.Equal(t, "Cliente Uno", out[0].Client.FullName)
	assert.Equal(t, "Barbero Cinco", out[0].Barber.FullName)
	assert.Equal(t, "Fade", out[0].Haircut.Name)
}

func TestEnrichUnresolvedGetsPlaceholder(t *testing.T) {
	e := NewEnricher(&fakeUserSource{}, &fakeHaircutSource{})

	out, err := e.Enrich(context.Background(), []appointment.Appointment{
		{ID: 10, ClientID: 7, BarberID: 8, HaircutID: 3},
	})
	require.NoError(t, err)

	// placeholders carry the id only; names are never fabricated
	require.NotNil(t, out[0].Client)
	assert.Equal(t, 7, out[0].Client.ID)
	assert.Empty(t, out[0].Client.FullName)
	assert.Equal(t, 8, out[0].Barber.ID)
	assert.Equal(t, 3, out[0].Haircut.ID)
}

func TestEnrichKeepsBackendPartialWhenFetchFails(t *testing.T) {
	e := NewEnricher(&fakeUserSource{}, &fakeHaircutSource{err: errors.New("down")})

	partial := &user.Profile{ID: 7, FullName: "Parcial"}
	out, err := e.Enrich(context.Background(), []appointment.Appointment{
		{ID: 10, ClientID: 7, Client: partial},
	})
	require.NoError(t, err)
	assert.Equal(t, "Parcial", out[0].Client.FullName)
}

func TestMergeEnrichmentIsIdempotent(t *testing.T) {
	users := map[int]*user.Profile{1: {ID: 1, FullName: "Uno"}}
	haircuts := map[int]*appointment.Haircut{2: {ID: 2, Name: "Fade"}}
	aps := []appointment.Appointment{{ID: 10, ClientID: 1, HaircutID: 2}}

	once := mergeEnrichment(aps, users, haircuts)
	twice := mergeEnrichment(once, users, haircuts)
	assert.Equal(t, once, twice)
}

func TestMergeEnrichmentDoesNotMutateInput(t *testing.T) {
	aps := []appointment.Appointment{{ID: 10, ClientID: 1}}
	_ = mergeEnrichment(aps, map[int]*user.Profile{1: {ID: 1}}, nil)
	assert.Nil(t, aps[0].Client)
}
