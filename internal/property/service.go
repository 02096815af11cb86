package property

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

var ErrNotFound = errors.New("property not found")

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

type CreateRequest struct {
	Type       string                    `json:"type" validate:"required,oneof=Appartement Maison Bureau 'Local Commercial'"`
	Status     string                    `json:"status" validate:"omitempty,oneof=DISPONIBLE OCCUPE TRAVAUX"`
	Address    models.Address            `json:"address" validate:"required"`
	Features   models.PropertyFeatures   `json:"features" validate:"required"`
	Financials models.PropertyFinancials `json:"financials"`
}

const propertyColumns = `id, type, status, address, features, financials, documents, owner_id, created_at, updated_at`

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(&p.ID, &p.Type, &p.Status, &p.Address, &p.Features, &p.Financials, &p.Documents,
		&p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Property, error) {
	ownerID := session.UserIDFromContext(ctx)

	status := req.Status
	if status == "" {
		status = models.PropertyStatusAvailable
	}

	p, err := scanProperty(s.db.QueryRow(ctx,
		`INSERT INTO properties (type, status, address, features, financials, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+propertyColumns,
		req.Type, status, req.Address, req.Features, req.Financials, ownerID,
	))
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	ownerID := session.UserIDFromContext(ctx)

	p, err := scanProperty(s.db.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]models.Property, error) {
	ownerID := session.UserIDFromContext(ctx)

	rows, err := s.db.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

// Update is a full-record overwrite, matching the edit-form semantics.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req CreateRequest) (*models.Property, error) {
	ownerID := session.UserIDFromContext(ctx)

	p, err := scanProperty(s.db.QueryRow(ctx,
		`UPDATE properties
		 SET type = $1, status = $2, address = $3, features = $4, financials = $5, updated_at = now()
		 WHERE id = $6 AND owner_id = $7
		 RETURNING `+propertyColumns,
		req.Type, req.Status, req.Address, req.Features, req.Financials, id, ownerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	return p, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	ownerID := session.UserIDFromContext(ctx)

	tag, err := s.db.Exec(ctx,
		`UPDATE properties SET status = $1, updated_at = now() WHERE id = $2 AND owner_id = $3`,
		status, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("update property status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the property only. Leases referencing it are left in place
// with a dangling id; there is no cascade.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ownerID := session.UserIDFromContext(ctx)

	tag, err := s.db.Exec(ctx, `DELETE FROM properties WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachDocument appends a stored-file reference to the property record.
func (s *Service) AttachDocument(ctx context.Context, id uuid.UUID, doc models.PropertyDocument) (*models.Property, error) {
	ownerID := session.UserIDFromContext(ctx)

	p, err := scanProperty(s.db.QueryRow(ctx,
		`UPDATE properties
		 SET documents = documents || $1::jsonb, updated_at = now()
		 WHERE id = $2 AND owner_id = $3
		 RETURNING `+propertyColumns,
		[]models.PropertyDocument{doc}, id, ownerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("attach document: %w", err)
	}
	return p, nil
}

// DetachDocument removes the reference whose url matches.
func (s *Service) DetachDocument(ctx context.Context, id uuid.UUID, url string) (*models.Property, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	kept := make([]models.PropertyDocument, 0, len(p.Documents))
	for _, d := range p.Documents {
		if d.URL != url {
			kept = append(kept, d)
		}
	}

	ownerID := session.UserIDFromContext(ctx)
	p, err = scanProperty(s.db.QueryRow(ctx,
		`UPDATE properties SET documents = $1, updated_at = now()
		 WHERE id = $2 AND owner_id = $3
		 RETURNING `+propertyColumns,
		kept, id, ownerID,
	))
	if err != nil {
		return nil, fmt.Errorf("detach document: %w", err)
	}
	return p, nil
}
