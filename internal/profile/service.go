package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JeanBsh/LocaTrack/internal/models"
	"github.com/JeanBsh/LocaTrack/internal/session"
)

// ErrNotFound means no profile record exists yet for the user. That is a
// valid state; document generation falls back to placeholder owner info.
var ErrNotFound = errors.New("profile not found")

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

const profileColumns = `user_id, owner_info, logo_url, signature_url, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.OwnerProfile, error) {
	var p models.OwnerProfile
	err := row.Scan(&p.UserID, &p.OwnerInfo, &p.LogoURL, &p.SignatureURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Get(ctx context.Context) (*models.OwnerProfile, error) {
	userID := session.UserIDFromContext(ctx)

	p, err := scanProfile(s.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Upsert overwrites the whole owner_info document, creating the record on
// first save. Image URLs are managed separately.
func (s *Service) Upsert(ctx context.Context, info models.OwnerInfo) (*models.OwnerProfile, error) {
	userID := session.UserIDFromContext(ctx)

	p, err := scanProfile(s.db.QueryRow(ctx,
		`INSERT INTO profiles (user_id, owner_info)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET owner_info = EXCLUDED.owner_info, updated_at = now()
		 RETURNING `+profileColumns,
		userID, info,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return p, nil
}

// SetImageURL partially updates one of the two image fields. kind is "logo"
// or "signature". An empty url clears the field.
func (s *Service) SetImageURL(ctx context.Context, kind, url string) (*models.OwnerProfile, error) {
	userID := session.UserIDFromContext(ctx)

	var column string
	switch kind {
	case "logo":
		column = "logo_url"
	case "signature":
		column = "signature_url"
	default:
		return nil, fmt.Errorf("unknown profile image kind %q", kind)
	}

	p, err := scanProfile(s.db.QueryRow(ctx,
		`INSERT INTO profiles (user_id, `+column+`)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET `+column+` = EXCLUDED.`+column+`, updated_at = now()
		 RETURNING `+profileColumns,
		userID, url,
	))
	if err != nil {
		return nil, fmt.Errorf("set profile %s: %w", kind, err)
	}
	return p, nil
}
