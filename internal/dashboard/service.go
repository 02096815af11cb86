package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/JeanBsh/LocaTrack/internal/cache"
	"github.com/JeanBsh/LocaTrack/internal/session"
)

const statsTTL = time.Minute

type Service struct {
	db    *pgxpool.Pool
	cache *cache.Cache
}

func NewService(db *pgxpool.Pool, c *cache.Cache) *Service {
	return &Service{db: db, cache: c}
}

type Stats struct {
	Properties     int             `json:"properties"`
	Occupied       int             `json:"occupied"`
	Tenants        int             `json:"tenants"`
	ActiveLeases   int             `json:"activeLeases"`
	OccupancyRate  float64         `json:"occupancyRate"`
	MonthlyRevenue decimal.Decimal `json:"monthlyRevenue"`
	// Arrears tracking is not implemented; the dashboard shows zero.
	Arrears decimal.Decimal `json:"arrears"`
}

func statsKey(userID string) string {
	return fmt.Sprintf("dashboard:%s", userID)
}

// Invalidate drops the cached stats for the current owner so the next read
// recomputes them. Called after property, tenant, lease and payment writes.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	key := statsKey(session.UserIDFromContext(ctx).String())
	if err := s.cache.Delete(ctx, key); err != nil {
		slog.Warn("failed to invalidate dashboard cache", "key", key, "error", err)
	}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	userID := session.UserIDFromContext(ctx)
	key := statsKey(userID.String())

	if s.cache != nil {
		var cached Stats
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &Stats{}

	err := s.db.QueryRow(ctx,
		`SELECT
		   (SELECT count(*) FROM properties WHERE owner_id = $1),
		   (SELECT count(*) FROM properties WHERE owner_id = $1 AND status = 'OCCUPE'),
		   (SELECT count(*) FROM tenants WHERE owner_id = $1 AND status = 'ACTIF'),
		   (SELECT count(*) FROM leases WHERE owner_id = $1),
		   COALESCE((SELECT sum((financials->>'currentRent')::numeric + (financials->>'currentCharges')::numeric)
		             FROM leases WHERE owner_id = $1), 0)::text`,
		userID,
	).Scan(&stats.Properties, &stats.Occupied, &stats.Tenants, &stats.ActiveLeases, &revenueScanner{&stats.MonthlyRevenue})
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	if stats.Properties > 0 {
		stats.OccupancyRate = float64(stats.Occupied) / float64(stats.Properties)
	}
	stats.Arrears = decimal.Zero

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, statsTTL); err != nil {
			slog.Warn("failed to cache dashboard stats", "error", err)
		}
	}

	return stats, nil
}

// revenueScanner reads the numeric-as-text sum into a decimal.
type revenueScanner struct {
	dst *decimal.Decimal
}

func (r *revenueScanner) Scan(src any) error {
	s, ok := src.(string)
	if !ok {
		return fmt.Errorf("expected text revenue, got %T", src)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("parse revenue %q: %w", s, err)
	}
	*r.dst = d
	return nil
}
