package docgen

import (
	"fmt"
	"strings"

	"github.com/JeanBsh/LocaTrack/internal/models"
)

// Certificate builds the rent certificate ("Attestation de loyer"), the
// document tenants use as proof of residence. owner may be nil.
func Certificate(tenant *models.Tenant, property *models.Property, lease *models.Lease, owner *Owner) *Document {
	issued := formatTime(nowFunc())
	total := lease.TotalMonthly()

	occupantLines := []string{
		fmt.Sprintf("M/Mme : %s %s", tenant.PersonalInfo.FirstName, strings.ToUpper(tenant.PersonalInfo.LastName)),
	}
	for _, rm := range tenant.Roommates {
		occupantLines = append(occupantLines, fmt.Sprintf("Et : %s %s", rm.FirstName, strings.ToUpper(rm.LastName)))
	}
	occupantLines = append(occupantLines,
		fmt.Sprintf("Adresse : %s, %s %s", property.Address.Street, property.Address.ZipCode, property.Address.City))

	doc := &Document{
		Footer: "Document généré via LocaTrack - Gestion Immobilière Simplifiée",
		Nodes: []Node{
			Title{Content: "ATTESTATION DE LOYER", Subtitle: "Document valant justificatif de domicile"},
			Spacer{Height: 14},
			Text{
				Content:    fmt.Sprintf("Je soussigné, %s, propriétaire du logement désigné ci-dessous, atteste par la présente que :", ownerName(owner)),
				Style:      Style{Size: 12, Align: "J"},
				SpaceAfter: 14,
			},
			Box{Lines: occupantLines},
			Spacer{Height: 10},
			Text{
				Content:    fmt.Sprintf("Est locataire à l'adresse susmentionnée depuis le %s.", formatDate(lease.Dates.Start)),
				Style:      Style{Size: 12, Align: "J"},
				SpaceAfter: 8,
			},
			Text{
				Content: fmt.Sprintf(
					"Il est à ce jour à jour du règlement de ses loyers et charges. Le montant actuel du loyer mensuel (charges comprises) s'élève à %s.",
					eurosWord(total)),
				Style:      Style{Size: 12, Align: "J"},
				SpaceAfter: 8,
			},
			Text{
				Content:    "Cette attestation est délivrée à la demande de l'intéressé(e) pour servir et valoir ce que de droit.",
				Style:      Style{Size: 12, Align: "J"},
				SpaceAfter: 30,
			},
			Text{
				Content:    fmt.Sprintf("Fait à %s, le %s", property.Address.City, issued),
				Style:      Style{Size: 10, Align: "R"},
				SpaceAfter: 6,
			},
			Text{
				Content:    "Le Bailleur",
				Style:      Style{Size: 10, Bold: true, Align: "R"},
				SpaceAfter: 4,
			},
		},
	}

	if owner != nil && owner.SignatureDataURI != "" {
		doc.Nodes = append(doc.Nodes, Image{DataURI: owner.SignatureDataURI, Width: 100, Height: 50, Align: "R"})
	} else {
		doc.Nodes = append(doc.Nodes, Text{Content: "[Signature]", Style: Style{Size: 10, Align: "R"}})
	}

	return doc
}
