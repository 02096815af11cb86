package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TenantStatusActive   = "ACTIF"
	TenantStatusArchived = "ARCHIVE"
)

// TenantPersonalInfo identifies the tenant on every generated document, so
// all four fields are mandatory on create and update.
type TenantPersonalInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

type TenantAdminInfo struct {
	BirthDate FlexDate `json:"birthDate"`
	IDNumber  string   `json:"idNumber"`
}

// Roommate and Guarantor share the personal-info shape, none of the fields
// required.
type Roommate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Guarantor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Tenant struct {
	ID           uuid.UUID          `json:"id" db:"id"`
	PersonalInfo TenantPersonalInfo `json:"personalInfo" db:"personal_info"`
	AdminInfo    TenantAdminInfo    `json:"adminInfo" db:"admin_info"`
	Roommates    []Roommate         `json:"roommates" db:"roommates"`
	Guarantors   []Guarantor        `json:"guarantors" db:"guarantors"`
	Status       string             `json:"status" db:"status"`
	OwnerID      uuid.UUID          `json:"ownerId" db:"owner_id"`
	CreatedAt    time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" db:"updated_at"`
}
