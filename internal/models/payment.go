package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodTransfer = "VIREMENT"
	PaymentMethodCheque   = "CHEQUE"
	PaymentMethodCash     = "ESPECES"
)

const (
	PaymentStatusPaid    = "PAYE"
	PaymentStatusLate    = "RETARD"
	PaymentStatusUnpaid  = "IMPAYE"
	PaymentStatusPartial = "PARTIEL"
)

type PaymentPeriod struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type Payment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	LeaseID   uuid.UUID       `json:"leaseId" db:"lease_id"`
	TenantID  uuid.UUID       `json:"tenantId" db:"tenant_id"`
	Date      FlexDate        `json:"date" db:"date"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Method    string          `json:"method" db:"method"`
	Period    PaymentPeriod   `json:"period" db:"period"`
	Status    string          `json:"status" db:"status"`
	OwnerID   uuid.UUID       `json:"ownerId" db:"owner_id"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
