package services

import (
	"context"
	"errors"
	"testing"

	"salonhub-backend/models"
	"salonhub-backend/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAcceptsEveryHistoricalFormat(t *testing.T) {
	env := newTestEnv(t)
	svc := env.addService(t, "service42", "Hair", "Coloring")
	resolver := NewServiceRefResolver(env.store, env.log)

	for _, ref := range []string{"service42", "42", svc.ID.String()} {
		t.Run(ref, func(t *testing.T) {
			res := resolver.Resolve(env.ctx, ref)
			require.True(t, res.Resolved)
			assert.Equal(t, svc.ID, res.ServiceID)
			category, sub := res.Labels()
			assert.Equal(t, "Hair", category)
			assert.Equal(t, "Coloring", sub)
		})
	}
}

func TestResolveReportsStrategy(t *testing.T) {
	env := newTestEnv(t)
	svc := env.addService(t, "service7", "Nails", "Manicure")
	resolver := NewServiceRefResolver(env.store, env.log)

	assert.Equal(t, ByCanonicalID, resolver.Resolve(env.ctx, "service7").Strategy)
	assert.Equal(t, ByPrefixedID, resolver.Resolve(env.ctx, "7").Strategy)
	assert.Equal(t, ByStoreID, resolver.Resolve(env.ctx, svc.ID.String()).Strategy)
}

func TestResolveMissRendersPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	env.addService(t, "service1", "Hair", "Cut")
	resolver := NewServiceRefResolver(env.store, env.log)

	for _, ref := range []string{"service999", "999", uuid.NewString(), "", "   "} {
		res := resolver.Resolve(env.ctx, ref)
		assert.False(t, res.Resolved, ref)
		category, sub := res.Labels()
		assert.Equal(t, Unresolved, category)
		assert.Equal(t, Unresolved, sub)
	}
}

// failingLookup fails every code lookup and finds nothing by id.
type failingLookup struct {
	codeCalls int
}

func (f *failingLookup) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return nil, repository.ErrNotFound
}

func (f *failingLookup) GetServiceByCode(ctx context.Context, code string) (*models.Service, error) {
	f.codeCalls++
	return nil, errors.New("connection reset")
}

func TestResolveLogsStoreErrorsAndContinues(t *testing.T) {
	log, hook := test.NewNullLogger()
	lookup := &failingLookup{}
	resolver := NewServiceRefResolver(lookup, log)

	res := resolver.Resolve(context.Background(), "42")

	assert.False(t, res.Resolved)
	assert.Equal(t, 2, lookup.codeCalls)

	var warnings []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings = append(warnings, e)
		}
	}
	require.Len(t, warnings, 2)
	assert.Equal(t, "42", warnings[0].Data["service_ref"])
	assert.Equal(t, ByCanonicalID, warnings[0].Data["strategy"])
	assert.Equal(t, ByPrefixedID, warnings[1].Data["strategy"])
}

type countingLookup struct {
	ServiceLookup
	calls int
}

func (c *countingLookup) GetServiceByCode(ctx context.Context, code string) (*models.Service, error) {
	c.calls++
	return c.ServiceLookup.GetServiceByCode(ctx, code)
}

func TestResolveAllMemoisesDistinctRefs(t *testing.T) {
	env := newTestEnv(t)
	env.addService(t, "service3", "Spa", "Massage")
	lookup := &countingLookup{ServiceLookup: env.store}
	resolver := NewServiceRefResolver(lookup, env.log)

	out := resolver.ResolveAll(env.ctx, []string{"service3", "service3", "service3", "missing"})

	require.Len(t, out, 2)
	assert.True(t, out["service3"].Resolved)
	assert.False(t, out["missing"].Resolved)
	// one hit for service3, two misses for "missing" (canonical and prefixed)
	assert.Equal(t, 3, lookup.calls)
}
