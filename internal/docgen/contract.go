package docgen

import (
	"fmt"

	"github.com/JeanBsh/LocaTrack/internal/models"
)

// Contract builds the lease contract ("Contrat de location"). The renderer
// lets long contracts overflow onto extra pages. owner may be nil.
func Contract(tenant *models.Tenant, property *models.Property, lease *models.Lease, owner *Owner) *Document {
	issued := formatTime(nowFunc())
	total := lease.TotalMonthly()

	var nodes []Node

	if owner != nil && owner.LogoDataURI != "" {
		nodes = append(nodes, Image{DataURI: owner.LogoDataURI, Width: 80, Height: 80, Align: "C"})
	}

	nodes = append(nodes,
		Title{
			Content:  "CONTRAT DE LOCATION",
			Subtitle: "Soumis au titre Ier de la loi n° 89-462 du 6 juillet 1989",
		},
		Heading{Content: "I. DÉSIGNATION DES PARTIES"},
		Text{Content: "Le BAILLEUR", Style: Style{Size: 10, Bold: true}, SpaceAfter: 3},
		Row{Label: "Nom / Prénom :", Value: ownerName(owner)},
		Row{Label: "Adresse :", Value: ownerAddress(owner, placeholderContractAddress)},
	)

	nodes = append(nodes,
		Spacer{Height: 6},
		Text{Content: "Le LOCATAIRE", Style: Style{Size: 10, Bold: true}, SpaceAfter: 3},
		Row{Label: "Nom / Prénom :", Value: fmt.Sprintf("%s %s", tenant.PersonalInfo.FirstName, tenant.PersonalInfo.LastName)},
	)
	for _, rm := range tenant.Roommates {
		nodes = append(nodes, Row{Label: "Co-locataire :", Value: fmt.Sprintf("%s %s", rm.FirstName, rm.LastName)})
	}
	nodes = append(nodes, Row{Label: "Email :", Value: tenant.PersonalInfo.Email})

	nodes = append(nodes,
		Heading{Content: "II. OBJET DU CONTRAT"},
		Text{
			Content:    "Le Bailleur donne en location au Locataire les locaux désignés ci-après :",
			Style:      Style{Size: 10, Align: "J"},
			SpaceAfter: 4,
		},
		Row{Label: "Type de bien :", Value: property.Type},
		Row{Label: "Adresse :", Value: fmt.Sprintf("%s, %s %s", property.Address.Street, property.Address.ZipCode, property.Address.City)},
		Row{Label: "Surface habitable :", Value: fmt.Sprintf("%g m²", property.Features.Surface)},
		Row{Label: "Nombre de pièces :", Value: fmt.Sprintf("%d", property.Features.Rooms)},
	)

	nodes = append(nodes,
		Heading{Content: "III. DATE DE PRISE D'EFFET ET DURÉE"},
		Text{
			Content:    fmt.Sprintf("Le présent contrat est conclu pour une durée de %d mois.", lease.Dates.Duration),
			Style:      Style{Size: 10, Align: "J"},
			SpaceAfter: 4,
		},
		Row{Label: "Date de prise d'effet :", Value: formatDate(lease.Dates.Start)},
		Row{Label: "Date de fin :", Value: formatDate(lease.Dates.End)},
	)

	nodes = append(nodes,
		Heading{Content: "IV. CONDITIONS FINANCIÈRES"},
		Text{
			Content:    "Le loyer mensuel est fixé comme suit :",
			Style:      Style{Size: 10},
			SpaceAfter: 4,
		},
		Row{Label: "Loyer hors charges :", Value: euros(lease.Financials.CurrentRent)},
		Row{Label: "Provision sur charges :", Value: euros(lease.Financials.CurrentCharges)},
		Row{Label: "TOTAL MENSUEL :", Value: euros(total), BoldValue: true},
		Spacer{Height: 6},
		Text{
			Content:    "Le paiement devra être effectué par virement bancaire ou prélèvement le 1er de chaque mois.",
			Style:      Style{Size: 10, Align: "J"},
			SpaceAfter: 6,
		},
		Row{Label: "Dépôt de garantie :", Value: euros(lease.Financials.Deposit)},
	)

	left := []Node{
		Text{Content: "Le BAILLEUR", Style: Style{Size: 10, Bold: true}, SpaceAfter: 2},
		Text{Content: `(Signature précédée de la mention "Lu et approuvé")`, Style: Style{Size: 8, Italic: true}, SpaceAfter: 8},
	}
	if owner != nil && owner.SignatureDataURI != "" {
		left = append(left, Image{DataURI: owner.SignatureDataURI, Width: 100, Height: 50})
	} else {
		left = append(left, Spacer{Height: 30})
	}
	left = append(left, Text{Content: ownerName(owner), Style: Style{Size: 10}})

	right := []Node{
		Text{Content: "Le LOCATAIRE", Style: Style{Size: 10, Bold: true}, SpaceAfter: 2},
		Text{Content: `(Signature précédée de la mention "Lu et approuvé")`, Style: Style{Size: 8, Italic: true}, SpaceAfter: 8},
		Spacer{Height: 30},
		Text{Content: fmt.Sprintf("%s %s", tenant.PersonalInfo.FirstName, tenant.PersonalInfo.LastName), Style: Style{Size: 10}},
	}

	nodes = append(nodes,
		Heading{Content: "V. SIGNATURES"},
		Columns{Left: left, Right: right},
	)

	return &Document{
		Footer: fmt.Sprintf("Agence LocaTrack - Document généré le %s", issued),
		Nodes:  nodes,
	}
}
