package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/JeanBsh/LocaTrack/internal/models"
	"github.com/JeanBsh/LocaTrack/internal/session"
)

var ErrNotFound = errors.New("payment not found")

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

type CreateRequest struct {
	LeaseID  uuid.UUID            `json:"leaseId" validate:"required"`
	TenantID uuid.UUID            `json:"tenantId" validate:"required"`
	Date     models.FlexDate      `json:"date"`
	Amount   decimal.Decimal      `json:"amount"`
	Method   string               `json:"method" validate:"required,oneof=VIREMENT CHEQUE ESPECES"`
	Period   models.PaymentPeriod `json:"period" validate:"required"`
	Status   string               `json:"status" validate:"omitempty,oneof=PAYE RETARD IMPAYE PARTIEL"`
}

const paymentColumns = `id, lease_id, tenant_id, date, amount::text, method, period, status, owner_id, created_at`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	var amount string
	err := row.Scan(&p.ID, &p.LeaseID, &p.TenantID, &p.Date, &amount, &p.Method, &p.Period,
		&p.Status, &p.OwnerID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return &p, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Payment, error) {
	ownerID := session.UserIDFromContext(ctx)

	status := req.Status
	if status == "" {
		status = models.PaymentStatusPaid
	}

	p, err := scanPayment(s.db.QueryRow(ctx,
		`INSERT INTO payments (lease_id, tenant_id, date, amount, method, period, status, owner_id)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
		 RETURNING `+paymentColumns,
		req.LeaseID, req.TenantID, req.Date, req.Amount.StringFixed(2), req.Method, req.Period, status, ownerID,
	))
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return p, nil
}

type ListFilter struct {
	LeaseID  uuid.UUID
	TenantID uuid.UUID
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Payment, error) {
	ownerID := session.UserIDFromContext(ctx)

	rows, err := s.db.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE owner_id = $1
		   AND ($2::uuid IS NULL OR lease_id = $2)
		   AND ($3::uuid IS NULL OR tenant_id = $3)
		 ORDER BY created_at DESC`,
		ownerID, nilIfZero(filter.LeaseID), nilIfZero(filter.TenantID),
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ownerID := session.UserIDFromContext(ctx)

	tag, err := s.db.Exec(ctx, `DELETE FROM payments WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
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
