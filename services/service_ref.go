package services

import (
	"context"
	"errors"
	"strings"

	"salonhub-backend/models"
	"salonhub-backend/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Unresolved is rendered in place of a category that could not be resolved.
const Unresolved = "N/A"

// ServiceLookup is the subset of the service store the resolver needs.
type ServiceLookup interface {
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	GetServiceByCode(ctx context.Context, code string) (*models.Service, error)
}

// RefStrategy is one way of interpreting a stored service reference.
type RefStrategy string

const (
	ByCanonicalID RefStrategy = "canonical_id"
	ByPrefixedID  RefStrategy = "prefixed_id"
	ByStoreID     RefStrategy = "store_id"
)

// DefaultRefStrategies is the resolution order; the first hit wins.
var DefaultRefStrategies = []RefStrategy{ByCanonicalID, ByPrefixedID, ByStoreID}

type Resolution struct {
	Resolved    bool
	Strategy    RefStrategy
	ServiceID   uuid.UUID
	Category    string
	SubCategory string
}

// Labels returns category and sub-category, or the placeholder for both.
func (r Resolution) Labels() (string, string) {
	if !r.Resolved {
		return Unresolved, Unresolved
	}
	return r.Category, r.SubCategory
}

// ServiceRefResolver maps feedback service references, stored over time as
// raw numbers, "service"-prefixed codes or primary keys, onto services.
type ServiceRefResolver struct {
	lookup     ServiceLookup
	strategies []RefStrategy
	log        logrus.FieldLogger
}

func NewServiceRefResolver(lookup ServiceLookup, log logrus.FieldLogger) *ServiceRefResolver {
	return &ServiceRefResolver{lookup: lookup, strategies: DefaultRefStrategies, log: log}
}

// Resolve never fails: lookup errors are logged and count as a miss.
func (r *ServiceRefResolver) Resolve(ctx context.Context, ref string) Resolution {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Resolution{}
	}
	for _, strategy := range r.strategies {
		service, err := r.try(ctx, strategy, ref)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				r.log.WithFields(logrus.Fields{
					"service_ref": ref,
					"strategy":    strategy,
				}).WithError(err).Warn("service reference lookup failed")
			}
			continue
		}
		if service == nil {
			continue
		}
		return Resolution{
			Resolved:    true,
			Strategy:    strategy,
			ServiceID:   service.ID,
			Category:    service.Category,
			SubCategory: service.SubCategory,
		}
	}
	r.log.WithField("service_ref", ref).Debug("service reference unresolved")
	return Resolution{}
}

// try returns (nil, nil) when the strategy does not apply to ref.
func (r *ServiceRefResolver) try(ctx context.Context, strategy RefStrategy, ref string) (*models.Service, error) {
	switch strategy {
	case ByCanonicalID:
		return r.lookup.GetServiceByCode(ctx, ref)
	case ByPrefixedID:
		if strings.HasPrefix(ref, models.ServiceCodePrefix) {
			return nil, nil
		}
		return r.lookup.GetServiceByCode(ctx, models.ServiceCodePrefix+ref)
	case ByStoreID:
		id, err := uuid.Parse(ref)
		if err != nil {
			return nil, nil
		}
		return r.lookup.GetService(ctx, id)
	}
	return nil, nil
}

// ResolveAll resolves each distinct reference once.
func (r *ServiceRefResolver) ResolveAll(ctx context.Context, refs []string) map[string]Resolution {
	out := make(map[string]Resolution, len(refs))
	for _, ref := range refs {
		if _, done := out[ref]; done {
			continue
		}
		out[ref] = r.Resolve(ctx, ref)
	}
	return out
}
