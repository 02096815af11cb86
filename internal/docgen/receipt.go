package docgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/JeanBsh/LocaTrack/internal/models"
)

// nowFunc is the issue-date clock, swapped out in tests.
var nowFunc = time.Now

// Receipt builds the monthly rent receipt ("Quittance de loyer") for the
// given billing period. owner may be nil.
func Receipt(tenant *models.Tenant, property *models.Property, lease *models.Lease, owner *Owner, period time.Time) *Document {
	start, end := monthBounds(period)
	issued := formatTime(nowFunc())
	total := lease.TotalMonthly()

	rentLabel := "Loyer mensuel (Nu)"
	chargesLabel := "Provision sur charges"
	if lease.Type == models.LeaseTypeFurnished {
		rentLabel = "Loyer mensuel (Meublé)"
		chargesLabel = "Forfait de charges"
	}

	tenantLines := []string{
		fmt.Sprintf("%s %s", strings.ToUpper(tenant.PersonalInfo.LastName), tenant.PersonalInfo.FirstName),
	}
	for _, rm := range tenant.Roommates {
		tenantLines = append(tenantLines, fmt.Sprintf("& %s %s", strings.ToUpper(rm.LastName), rm.FirstName))
	}

	ownerLines := append([]string{ownerName(owner)}, strings.Split(ownerAddress(owner, placeholderOwnerAddress), "\n")...)

	doc := &Document{
		Footer: "Document généré automatiquement via LocaTrack",
		Nodes: []Node{
			Title{Content: "QUITTANCE DE LOYER"},
			Text{
				Content:    fmt.Sprintf("N° REF-%s-%s", period.Format("200601"), shortID(tenant.ID.String())),
				Style:      Style{Size: 10},
				SpaceAfter: 4,
			},
			Text{
				Content:    fmt.Sprintf("Date d'émission : %s", issued),
				Style:      Style{Size: 10, Align: "R"},
				SpaceAfter: 10,
			},
			Text{
				Content:    fmt.Sprintf("Période du %s au %s", formatTime(start), formatTime(end)),
				Style:      Style{Size: 14, Bold: true, Align: "C"},
				SpaceAfter: 6,
			},
			Text{
				Content:    monthYear(period),
				Style:      Style{Size: 11, Align: "C"},
				SpaceAfter: 16,
			},
			Box{Title: "BAILLEUR (PROPRIÉTAIRE)", Lines: ownerLines},
			Box{Title: "LOCATAIRE(S)", Lines: tenantLines},
			Spacer{Height: 10},
			Text{
				Content:    "Adresse de la location",
				Style:      Style{Size: 10},
				SpaceAfter: 2,
			},
			Text{
				Content:    fmt.Sprintf("%s, %s %s", property.Address.Street, property.Address.ZipCode, property.Address.City),
				Style:      Style{Size: 11, Bold: true},
				SpaceAfter: 16,
			},
			Text{
				Content:    "Détail du règlement",
				Style:      Style{Size: 12, Bold: true},
				SpaceAfter: 6,
			},
			TableRow{Desc: "Libellé", Amount: "Montant", Header: true},
			TableRow{Desc: rentLabel, Amount: euros(lease.Financials.CurrentRent)},
			TableRow{Desc: chargesLabel, Amount: euros(lease.Financials.CurrentCharges)},
			TableRow{Desc: "TOTAL PAYÉ", Amount: euros(total), Total: true},
			Spacer{Height: 14},
			Text{
				Content: fmt.Sprintf(
					"Je soussigné(e), propriétaire du logement désigné ci-dessus, déclare avoir reçu de la part du locataire la somme de %s au titre du loyer et des charges pour la période mentionnée.\n"+
						"Cette quittance annule tous les reçus qui auraient pu être donnés pour acompte versé sur la présente échéance. En cas de congé, le paiement du dernier mois de loyer ne peut être compensé par le dépôt de garantie.",
					eurosWord(total)),
				Style:      Style{Size: 9, Italic: true, Align: "J"},
				SpaceAfter: 24,
			},
			Text{
				Content:    fmt.Sprintf("Fait à %s, le %s", property.Address.City, issued),
				Style:      Style{Size: 10},
				SpaceAfter: 6,
			},
			Text{
				Content:    "Le Bailleur",
				Style:      Style{Size: 10, Bold: true},
				SpaceAfter: 4,
			},
		},
	}

	if owner != nil && owner.SignatureDataURI != "" {
		doc.Nodes = append(doc.Nodes, Image{DataURI: owner.SignatureDataURI, Width: 100, Height: 50})
	}

	return doc
}

// shortID keeps the first four characters of an entity id for the document
// reference number.
func shortID(id string) string {
	if len(id) > 4 {
		return id[:4]
	}
	return id
}
