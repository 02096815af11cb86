package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PropertyTypeApartment  = "Appartement"
	PropertyTypeHouse      = "Maison"
	PropertyTypeOffice     = "Bureau"
	PropertyTypeCommercial = "Local Commercial"
)

const (
	PropertyStatusAvailable = "DISPONIBLE"
	PropertyStatusOccupied  = "OCCUPE"
	PropertyStatusUnderWork = "TRAVAUX"
)

type Address struct {
	Street  string `json:"street"`
	ZipCode string `json:"zipCode"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type PropertyFeatures struct {
	Surface          float64 `json:"surface"`
	Rooms            int     `json:"rooms"`
	ConstructionYear int     `json:"constructionYear"`
}

type PropertyFinancials struct {
	BaseRent decimal.Decimal `json:"baseRent"`
	Charges  decimal.Decimal `json:"charges"`
	Deposit  decimal.Decimal `json:"deposit"`
}

type PropertyDocument struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type Property struct {
	ID         uuid.UUID          `json:"id" db:"id"`
	Type       string             `json:"type" db:"type"`
	Status     string             `json:"status" db:"status"`
	Address    Address            `json:"address" db:"address"`
	Features   PropertyFeatures   `json:"features" db:"features"`
	Financials PropertyFinancials `json:"financials" db:"financials"`
	Documents  []PropertyDocument `json:"documents" db:"documents"`
	OwnerID    uuid.UUID          `json:"ownerId" db:"owner_id"`
	CreatedAt  time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time          `json:"updatedAt" db:"updated_at"`
}
