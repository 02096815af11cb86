// Package tenant manages renter records: personal and administrative info,
// roommates and guarantors.
package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JeanBsh/LocaTrack/internal/models"
	"github.com/JeanBsh/LocaTrack/internal/session"
)

var ErrNotFound = errors.New("tenant not found")

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

type CreateRequest struct {
	PersonalInfo models.TenantPersonalInfo `json:"personalInfo" validate:"required"`
	AdminInfo    models.TenantAdminInfo    `json:"adminInfo"`
	Roommates    []models.Roommate         `json:"roommates"`
	Guarantors   []models.Guarantor        `json:"guarantors"`
	Status       string                    `json:"status" validate:"omitempty,oneof=ACTIF ARCHIVE"`
}

const tenantColumns = `id, personal_info, admin_info, roommates, guarantors, status, owner_id, created_at, updated_at`

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(&t.ID, &t.PersonalInfo, &t.AdminInfo, &t.Roommates, &t.Guarantors,
		&t.Status, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Tenant, error) {
	ownerID := session.UserIDFromContext(ctx)

	status := req.Status
	if status == "" {
		status = models.TenantStatusActive
	}
	if req.Roommates == nil {
		req.Roommates = []models.Roommate{}
	}
	if req.Guarantors == nil {
		req.Guarantors = []models.Guarantor{}
	}

	t, err := scanTenant(s.db.QueryRow(ctx,
		`INSERT INTO tenants (personal_info, admin_info, roommates, guarantors, status, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+tenantColumns,
		req.PersonalInfo, req.AdminInfo, req.Roommates, req.Guarantors, status, ownerID,
	))
	if err != nil {
		return nil, fmt.Errorf("insert tenant: %w", err)
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	ownerID := session.UserIDFromContext(ctx)

	t, err := scanTenant(s.db.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// List returns the owner's tenants sorted by last name. q filters on first or
// last name, case-insensitive, the way the documents page search box does.
func (s *Service) List(ctx context.Context, q string) ([]models.Tenant, error) {
	ownerID := session.UserIDFromContext(ctx)

	rows, err := s.db.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants
		 WHERE owner_id = $1
		   AND ($2 = '' OR personal_info->>'lastName' ILIKE '%' || $2 || '%'
		                OR personal_info->>'firstName' ILIKE '%' || $2 || '%')
		 ORDER BY personal_info->>'lastName'`,
		ownerID, q,
	)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req CreateRequest) (*models.Tenant, error) {
	ownerID := session.UserIDFromContext(ctx)

	if req.Roommates == nil {
		req.Roommates = []models.Roommate{}
	}
	if req.Guarantors == nil {
		req.Guarantors = []models.Guarantor{}
	}

	t, err := scanTenant(s.db.QueryRow(ctx,
		`UPDATE tenants
		 SET personal_info = $1, admin_info = $2, roommates = $3, guarantors = $4, status = $5, updated_at = now()
		 WHERE id = $6 AND owner_id = $7
		 RETURNING `+tenantColumns,
		req.PersonalInfo, req.AdminInfo, req.Roommates, req.Guarantors, req.Status, id, ownerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update tenant: %w", err)
	}
	return t, nil
}

// Delete removes the tenant only; leases keep their reference (no cascade).
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ownerID := session.UserIDFromContext(ctx)

	tag, err := s.db.Exec(ctx, `DELETE FROM tenants WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
