package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LeaseTypeFurnished   = "MEUBLE"
	LeaseTypeUnfurnished = "NU"
)

type LeaseDates struct {
	Start    FlexDate `json:"start"`
	End      FlexDate `json:"end"`
	Duration int      `json:"duration"` // months
}

type LeaseFinancials struct {
	CurrentRent    decimal.Decimal `json:"currentRent"`
	CurrentCharges decimal.Decimal `json:"currentCharges"`
	Deposit        decimal.Decimal `json:"deposit"`
}

type LeaseIndexation struct {
	BaseIndex     *decimal.Decimal `json:"baseIndex,omitempty"`
	LastIndexDate FlexDate         `json:"lastIndexDate"`
}

type Lease struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	PropertyID uuid.UUID       `json:"propertyId" db:"property_id"`
	TenantID   uuid.UUID       `json:"tenantId" db:"tenant_id"`
	Type       string          `json:"type" db:"type"`
	Dates      LeaseDates      `json:"dates" db:"dates"`
	Financials LeaseFinancials `json:"financials" db:"financials"`
	Indexation LeaseIndexation `json:"indexation" db:"indexation"`
	OwnerID    uuid.UUID       `json:"ownerId" db:"owner_id"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`
}

// TotalMonthly is the canonical rent-plus-charges figure shown on every
// generated document.
func (l *Lease) TotalMonthly() decimal.Decimal {
	return l.Financials.CurrentRent.Add(l.Financials.CurrentCharges)
}
