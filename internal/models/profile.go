package models

import (
	"time"

	"github.com/google/uuid"
)

type OwnerInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// OwnerProfile is the landlord record, one per authenticated user. Absence is
// valid; document generators fall back to placeholder text.
type OwnerProfile struct {
	UserID       uuid.UUID `json:"userId" db:"user_id"`
	OwnerInfo    OwnerInfo `json:"ownerInfo" db:"owner_info"`
	LogoURL      string    `json:"logoUrl" db:"logo_url"`
	SignatureURL string    `json:"signatureUrl" db:"signature_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
