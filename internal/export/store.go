package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JeanBsh/LocaTrack/internal/models"
)

var ErrJobNotFound = errors.New("export job not found")

// Store tracks background export jobs.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const exportColumns = `id, user_id, status, tenant_ids, kinds, period, object_key, file_name, error, created_at, completed_at`

func scanExport(row pgx.Row) (*models.Export, error) {
	var e models.Export
	err := row.Scan(&e.ID, &e.UserID, &e.Status, &e.TenantIDs, &e.Kinds, &e.Period,
		&e.ObjectKey, &e.FileName, &e.Error, &e.CreatedAt, &e.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) Create(ctx context.Context, userID uuid.UUID, tenantIDs []uuid.UUID, kinds []string, period string) (*models.Export, error) {
	e, err := scanExport(s.db.QueryRow(ctx,
		`INSERT INTO exports (user_id, status, tenant_ids, kinds, period)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+exportColumns,
		userID, models.ExportStatusPending, tenantIDs, kinds, period,
	))
	if err != nil {
		return nil, fmt.Errorf("insert export: %w", err)
	}
	return e, nil
}

func (s *Store) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Export, error) {
	e, err := scanExport(s.db.QueryRow(ctx,
		`SELECT `+exportColumns+` FROM exports WHERE id = $1 AND user_id = $2`, id, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get export: %w", err)
	}
	return e, nil
}

func (s *Store) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE exports SET status = $1 WHERE id = $2`, models.ExportStatusProcessing, id)
	return err
}

func (s *Store) MarkDone(ctx context.Context, id uuid.UUID, objectKey, fileName string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE exports SET status = $1, object_key = $2, file_name = $3, completed_at = now() WHERE id = $4`,
		models.ExportStatusDone, objectKey, fileName, id)
	return err
}

func (s *Store) MarkFailed(ctx context.Context, id uuid.UUID, cause string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE exports SET status = $1, error = $2, completed_at = now() WHERE id = $3`,
		models.ExportStatusFailed, cause, id)
	return err
}
