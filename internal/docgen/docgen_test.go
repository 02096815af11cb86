package docgen

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/JeanBsh/LocaTrack/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
}

func testTenant() *models.Tenant {
	return &models.Tenant{
		ID: uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000001"),
		PersonalInfo: models.TenantPersonalInfo{
			FirstName: "Marie",
			LastName:  "Dupont",
			Email:     "marie.dupont@example.fr",
		},
		Status: models.TenantStatusActive,
	}
}

func testProperty() *models.Property {
	return &models.Property{
		ID:   uuid.New(),
		Type: models.PropertyTypeApartment,
		Address: models.Address{
			Street:  "12 rue de la Paix",
			ZipCode: "75002",
			City:    "Paris",
		},
		Features: models.PropertyFeatures{Surface: 45.5, Rooms: 2},
	}
}

func testLease(rent, charges string) *models.Lease {
	return &models.Lease{
		ID:   uuid.New(),
		Type: models.LeaseTypeUnfurnished,
		Dates: models.LeaseDates{
			Start:    models.NewFlexDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			End:      models.NewFlexDate(time.Date(2027, 1, 14, 0, 0, 0, 0, time.UTC)),
			Duration: 36,
		},
		Financials: models.LeaseFinancials{
			CurrentRent:    decimal.RequireFromString(rent),
			CurrentCharges: decimal.RequireFromString(charges),
			Deposit:        decimal.RequireFromString(rent),
		},
	}
}

// allText flattens every textual fragment of the tree, columns included.
func allText(nodes []Node) string {
	var b strings.Builder
	var walk func([]Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch v := n.(type) {
			case Text:
				b.WriteString(v.Content + "\n")
			case Title:
				b.WriteString(v.Content + "\n" + v.Subtitle + "\n")
			case Heading:
				b.WriteString(v.Content + "\n")
			case Row:
				b.WriteString(v.Label + " " + v.Value + "\n")
			case TableRow:
				b.WriteString(v.Desc + " " + v.Amount + "\n")
			case Box:
				b.WriteString(v.Title + "\n" + strings.Join(v.Lines, "\n") + "\n")
			case Columns:
				walk(v.Left)
				walk(v.Right)
			}
		}
	}
	walk(nodes)
	return b.String()
}

func findBox(t *testing.T, doc *Document, title string) Box {
	t.Helper()
	for _, n := range doc.Nodes {
		if box, ok := n.(Box); ok && box.Title == title {
			return box
		}
	}
	t.Fatalf("no box titled %q", title)
	return Box{}
}

func TestAllDocumentsAgreeOnTotal(t *testing.T) {
	restore := nowFunc
	nowFunc = fixedClock
	defer func() { nowFunc = restore }()

	tenant := testTenant()
	property := testProperty()
	lease := testLease("650.50", "120")

	docs := map[string]*Document{
		"receipt":     Receipt(tenant, property, lease, nil, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		"certificate": Certificate(tenant, property, lease, nil),
		"contract":    Contract(tenant, property, lease, nil),
	}
	for name, doc := range docs {
		text := allText(doc.Nodes)
		require.Contains(t, text, "770.50", "%s must show the rent+charges total", name)
	}
}

func TestReceiptContent(t *testing.T) {
	restore := nowFunc
	nowFunc = fixedClock
	defer func() { nowFunc = restore }()

	tenant := testTenant()
	lease := testLease("650.50", "120")
	period := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	doc := Receipt(tenant, testProperty(), lease, nil, period)
	text := allText(doc.Nodes)

	require.Contains(t, text, "QUITTANCE DE LOYER")
	require.Contains(t, text, "N° REF-202608-a1b2")
	require.Contains(t, text, "Période du 01/08/2026 au 31/08/2026")
	require.Contains(t, text, "Août 2026")
	require.Contains(t, text, "Loyer mensuel (Nu) 650.50 €")
	require.Contains(t, text, "TOTAL PAYÉ 770.50 €")
	require.Contains(t, text, "la somme de 770.50 euros")
	require.Contains(t, text, "Fait à Paris, le 28/08/2026")
}

func TestReceiptFurnishedLabels(t *testing.T) {
	lease := testLease("800", "50")
	lease.Type = models.LeaseTypeFurnished

	doc := Receipt(testTenant(), testProperty(), lease, nil, fixedClock())
	text := allText(doc.Nodes)

	require.Contains(t, text, "Loyer mensuel (Meublé)")
	require.Contains(t, text, "Forfait de charges")
}

func TestReceiptZeroAmountsKeepTwoDecimals(t *testing.T) {
	doc := Receipt(testTenant(), testProperty(), testLease("0", "0"), nil, fixedClock())
	text := allText(doc.Nodes)

	require.Contains(t, text, "TOTAL PAYÉ 0.00 €")
	require.Contains(t, text, "0.00 euros")
}

func TestRoommatesProduceOneLineEach(t *testing.T) {
	tenant := testTenant()
	tenant.Roommates = []models.Roommate{
		{FirstName: "Paul", LastName: "Martin"},
		{FirstName: "Julie", LastName: "Bernard"},
	}

	receipt := Receipt(tenant, testProperty(), testLease("700", "80"), nil, fixedClock())
	box := findBox(t, receipt, "LOCATAIRE(S)")
	require.Len(t, box.Lines, 3)
	require.Equal(t, "DUPONT Marie", box.Lines[0])
	require.Equal(t, "& MARTIN Paul", box.Lines[1])
	require.Equal(t, "& BERNARD Julie", box.Lines[2])

	certificate := Certificate(tenant, testProperty(), testLease("700", "80"), nil)
	text := allText(certificate.Nodes)
	require.Contains(t, text, "M/Mme : Marie DUPONT")
	require.Contains(t, text, "Et : Paul MARTIN")
	require.Contains(t, text, "Et : Julie BERNARD")

	contract := Contract(tenant, testProperty(), testLease("700", "80"), nil)
	text = allText(contract.Nodes)
	require.Contains(t, text, "Co-locataire : Paul Martin")
	require.Contains(t, text, "Co-locataire : Julie Bernard")
}

func TestGeneratorsAreIdempotent(t *testing.T) {
	restore := nowFunc
	nowFunc = fixedClock
	defer func() { nowFunc = restore }()

	tenant := testTenant()
	property := testProperty()
	lease := testLease("650.50", "120")
	period := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	first := Receipt(tenant, property, lease, nil, period)
	second := Receipt(tenant, property, lease, nil, period)
	require.True(t, reflect.DeepEqual(first, second))

	require.True(t, reflect.DeepEqual(
		Contract(tenant, property, lease, nil),
		Contract(tenant, property, lease, nil),
	))
}

func TestDateDegradation(t *testing.T) {
	lease := testLease("700", "80")
	lease.Dates.Start = models.FlexDate{}

	certificate := Certificate(testTenant(), testProperty(), lease, nil)
	require.Contains(t, allText(certificate.Nodes), "depuis le N/A")

	var garbage models.FlexDate
	require.NoError(t, json.Unmarshal([]byte(`"pas une date"`), &garbage))
	lease.Dates.Start = garbage
	lease.Dates.End = garbage

	contract := Contract(testTenant(), testProperty(), lease, nil)
	text := allText(contract.Nodes)
	require.Contains(t, text, "Date de prise d'effet : Date invalide")
	require.Contains(t, text, "Date de fin : Date invalide")
}

func TestNilOwnerFallsBackToPlaceholders(t *testing.T) {
	doc := Contract(testTenant(), testProperty(), testLease("700", "80"), nil)
	text := allText(doc.Nodes)

	require.Contains(t, text, placeholderOwnerName)
	require.Contains(t, text, placeholderContractAddress)
	for _, n := range doc.Nodes {
		_, isImage := n.(Image)
		require.False(t, isImage, "no owner means no logo or signature image")
	}
}

func TestCertificateSignatureFallbackText(t *testing.T) {
	noSig := Certificate(testTenant(), testProperty(), testLease("700", "80"), nil)
	last := noSig.Nodes[len(noSig.Nodes)-1]
	text, ok := last.(Text)
	require.True(t, ok)
	require.Equal(t, "[Signature]", text.Content)

	owner := &Owner{Name: "Jean Bashung", SignatureDataURI: "data:image/png;base64,AAAA"}
	withSig := Certificate(testTenant(), testProperty(), testLease("700", "80"), owner)
	last = withSig.Nodes[len(withSig.Nodes)-1]
	img, ok := last.(Image)
	require.True(t, ok)
	require.Equal(t, owner.SignatureDataURI, img.DataURI)
}

func TestContractLeadsWithLogoWhenPresent(t *testing.T) {
	owner := &Owner{Name: "Jean Bashung", LogoDataURI: "data:image/png;base64,BBBB"}
	doc := Contract(testTenant(), testProperty(), testLease("700", "80"), owner)

	img, ok := doc.Nodes[0].(Image)
	require.True(t, ok)
	require.Equal(t, owner.LogoDataURI, img.DataURI)
}
