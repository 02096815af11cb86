package docgen

import (
	"fmt"
	"strings"

	"github.com/JeanBsh/LocaTrack/internal/models"
)

const (
	placeholderOwnerName    = "Monsieur le Propriétaire"
	placeholderOwnerAddress = "Adresse du Propriétaire\n75000 PARIS"
	// The contract template historically carried its own fuller placeholder.
	placeholderContractAddress = "123 Avenue de l'Immobilier, 75000 Paris"
)

// Owner is the landlord identity stamped on documents, with logo and
// signature already inlined as data URIs. Resolved once per export run and
// treated as immutable for the whole batch.
type Owner struct {
	Name             string
	Address          string
	Email            string
	LogoDataURI      string
	SignatureDataURI string
}

// OwnerFromProfile maps a profile record to document owner info, substituting
// placeholders for absent or empty fields. Image URLs are not resolved here;
// the caller runs them through the image encoder and fills the data URIs.
func OwnerFromProfile(p *models.OwnerProfile) *Owner {
	if p == nil {
		return nil
	}

	o := &Owner{
		Name:  strings.TrimSpace(p.OwnerInfo.Name),
		Email: strings.TrimSpace(p.OwnerInfo.Email),
	}
	if o.Name == "" {
		o.Name = placeholderOwnerName
	}

	street := strings.TrimSpace(p.OwnerInfo.Address)
	cityLine := strings.TrimSpace(strings.TrimSpace(p.OwnerInfo.ZipCode) + " " + strings.TrimSpace(p.OwnerInfo.City))
	switch {
	case street != "" && cityLine != "":
		o.Address = fmt.Sprintf("%s\n%s", street, cityLine)
	case street != "":
		o.Address = street
	case cityLine != "":
		o.Address = cityLine
	default:
		o.Address = placeholderOwnerAddress
	}

	return o
}

func ownerName(o *Owner) string {
	if o == nil || o.Name == "" {
		return placeholderOwnerName
	}
	return o.Name
}

func ownerAddress(o *Owner, fallback string) string {
	if o == nil || o.Address == "" {
		return fallback
	}
	return o.Address
}
