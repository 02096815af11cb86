package lease

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JeanBsh/LocaTrack/internal/models"
	"github.com/JeanBsh/LocaTrack/internal/session"
)

var (
	ErrNotFound     = errors.New("lease not found")
	ErrBadReference = errors.New("lease references an unknown property or tenant")
)

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

type CreateRequest struct {
	PropertyID uuid.UUID              `json:"propertyId" validate:"required"`
	TenantID   uuid.UUID              `json:"tenantId" validate:"required"`
	Type       string                 `json:"type" validate:"required,oneof=MEUBLE NU"`
	Dates      models.LeaseDates      `json:"dates"`
	Financials models.LeaseFinancials `json:"financials"`
	Indexation models.LeaseIndexation `json:"indexation"`
}

const leaseColumns = `id, property_id, tenant_id, type, dates, financials, indexation, owner_id, created_at, updated_at`

func scanLease(row pgx.Row) (*models.Lease, error) {
	var l models.Lease
	err := row.Scan(&l.ID, &l.PropertyID, &l.TenantID, &l.Type, &l.Dates, &l.Financials, &l.Indexation,
		&l.OwnerID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts the lease and flips the property to OCCUPE. The status
// transition is driven from here, not by the property itself.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Lease, error) {
	ownerID := session.UserIDFromContext(ctx)

	var refsOK bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1 AND owner_id = $3)
		    AND EXISTS (SELECT 1 FROM tenants WHERE id = $2 AND owner_id = $3)`,
		req.PropertyID, req.TenantID, ownerID,
	).Scan(&refsOK)
	if err != nil {
		return nil, fmt.Errorf("check lease references: %w", err)
	}
	if !refsOK {
		return nil, ErrBadReference
	}

	l, err := scanLease(s.db.QueryRow(ctx,
		`INSERT INTO leases (property_id, tenant_id, type, dates, financials, indexation, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+leaseColumns,
		req.PropertyID, req.TenantID, req.Type, req.Dates, req.Financials, req.Indexation, ownerID,
	))
	if err != nil {
		return nil, fmt.Errorf("insert lease: %w", err)
	}

	if _, err := s.db.Exec(ctx,
		`UPDATE properties SET status = $1, updated_at = now() WHERE id = $2 AND owner_id = $3`,
		models.PropertyStatusOccupied, req.PropertyID, ownerID,
	); err != nil {
		// The lease exists either way; occupancy can be fixed by hand.
		slog.Warn("failed to mark property occupied", "property_id", req.PropertyID, "error", err)
	}

	return l, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	ownerID := session.UserIDFromContext(ctx)

	l, err := scanLease(s.db.QueryRow(ctx,
		`SELECT `+leaseColumns+` FROM leases WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lease: %w", err)
	}
	return l, nil
}

type ListFilter struct {
	TenantID   uuid.UUID
	PropertyID uuid.UUID
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Lease, error) {
	ownerID := session.UserIDFromContext(ctx)

	rows, err := s.db.Query(ctx,
		`SELECT `+leaseColumns+` FROM leases
		 WHERE owner_id = $1
		   AND ($2::uuid IS NULL OR tenant_id = $2)
		   AND ($3::uuid IS NULL OR property_id = $3)
		 ORDER BY created_at ASC`,
		ownerID, nilIfZero(filter.TenantID), nilIfZero(filter.PropertyID),
	)
	if err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}
	defer rows.Close()

	var leases []models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lease: %w", err)
		}
		leases = append(leases, *l)
	}
	return leases, rows.Err()
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req CreateRequest) (*models.Lease, error) {
	ownerID := session.UserIDFromContext(ctx)

	l, err := scanLease(s.db.QueryRow(ctx,
		`UPDATE leases
		 SET property_id = $1, tenant_id = $2, type = $3, dates = $4, financials = $5, indexation = $6, updated_at = now()
		 WHERE id = $7 AND owner_id = $8
		 RETURNING `+leaseColumns,
		req.PropertyID, req.TenantID, req.Type, req.Dates, req.Financials, req.Indexation, id, ownerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update lease: %w", err)
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ownerID := session.UserIDFromContext(ctx)

	tag, err := s.db.Exec(ctx, `DELETE FROM leases WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete lease: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nilIfZero(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
