package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/JeanBsh/LocaTrack/internal/lease"
	"github.com/JeanBsh/LocaTrack/internal/profile"
	"github.com/JeanBsh/LocaTrack/internal/property"
	"github.com/JeanBsh/LocaTrack/internal/tenant"
)

// Loader pulls the caller's full entity state into a Snapshot. A missing
// owner profile is not an error; documents then fall back to placeholder
// owner details.
type Loader struct {
	tenants    *tenant.Service
	leases     *lease.Service
	properties *property.Service
	profiles   *profile.Service
}

func NewLoader(tenants *tenant.Service, leases *lease.Service, properties *property.Service, profiles *profile.Service) *Loader {
	return &Loader{tenants: tenants, leases: leases, properties: properties, profiles: profiles}
}

func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	tenants, err := l.tenants.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("load tenants: %w", err)
	}
	leases, err := l.leases.List(ctx, lease.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("load leases: %w", err)
	}
	properties, err := l.properties.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	prof, err := l.profiles.Get(ctx)
	if err != nil && !errors.Is(err, profile.ErrNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &Snapshot{
		Tenants:    tenants,
		Leases:     leases,
		Properties: properties,
		Profile:    prof,
	}, nil
}
