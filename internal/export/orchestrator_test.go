package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/JeanBsh/LocaTrack/internal/docgen"
	"github.com/JeanBsh/LocaTrack/internal/models"
)

type stubEncoder struct {
	uris  map[string]string
	calls []string
}

func (e *stubEncoder) DataURI(_ context.Context, url string) string {
	e.calls = append(e.calls, url)
	return e.uris[url]
}

func snapshotTenant(first, last string) models.Tenant {
	return models.Tenant{
		ID: uuid.New(),
		PersonalInfo: models.TenantPersonalInfo{
			FirstName: first,
			LastName:  last,
		},
		Status: models.TenantStatusActive,
	}
}

func snapshotLease(tenantID, propertyID uuid.UUID) models.Lease {
	return models.Lease{
		ID:         uuid.New(),
		TenantID:   tenantID,
		PropertyID: propertyID,
		Type:       models.LeaseTypeUnfurnished,
		Dates: models.LeaseDates{
			Start:    models.NewFlexDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			Duration: 36,
		},
		Financials: models.LeaseFinancials{
			CurrentRent:    decimal.RequireFromString("700"),
			CurrentCharges: decimal.RequireFromString("80"),
		},
	}
}

func snapshotProperty() models.Property {
	return models.Property{
		ID:   uuid.New(),
		Type: models.PropertyTypeApartment,
		Address: models.Address{
			Street:  "3 rue Victor Hugo",
			ZipCode: "69002",
			City:    "Lyon",
		},
	}
}

func testOrchestrator(enc ImageEncoder) *Orchestrator {
	o := NewOrchestrator(enc)
	o.render = func(*docgen.Document) ([]byte, error) { return []byte("%PDF-stub"), nil }
	o.now = func() time.Time { return time.Date(2026, 8, 28, 14, 5, 0, 0, time.UTC) }
	return o
}

func zipNames(t *testing.T, data []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestRunGeneratesSelectedKindsInOrder(t *testing.T) {
	t1 := snapshotTenant("Marie", "Dupont")
	t2 := snapshotTenant("Paul", "Martin") // no lease, silently skipped
	t3 := snapshotTenant("Julie", "Bernard")
	prop := snapshotProperty()

	snap := &Snapshot{
		Tenants:    []models.Tenant{t1, t2, t3},
		Leases:     []models.Lease{snapshotLease(t1.ID, prop.ID), snapshotLease(t3.ID, prop.ID)},
		Properties: []models.Property{prop},
	}
	req := &Request{
		Selection:   NewSelection(t1.ID, t2.ID, t3.ID),
		Receipt:     true,
		Certificate: true,
		Period:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	result, err := testOrchestrator(&stubEncoder{}).Run(context.Background(), snap, req)
	require.NoError(t, err)
	require.Equal(t, 4, result.Files)
	require.Equal(t, "Documents_LocaTrack_20260828_1405.zip", result.FileName)

	require.Equal(t, []string{
		"Quittance_2026-08_Dupont_Marie.pdf",
		"Attestation_Dupont_Marie.pdf",
		"Quittance_2026-08_Bernard_Julie.pdf",
		"Attestation_Bernard_Julie.pdf",
	}, zipNames(t, result.Data))

	require.Equal(t, 0, req.Selection.Len(), "selection is cleared after the run")
}

func TestRunSkipsTenantsMissingFromSnapshot(t *testing.T) {
	t1 := snapshotTenant("Marie", "Dupont")
	prop := snapshotProperty()
	snap := &Snapshot{
		Tenants:    []models.Tenant{t1},
		Leases:     []models.Lease{snapshotLease(t1.ID, prop.ID)},
		Properties: []models.Property{prop},
	}
	req := &Request{
		Selection: NewSelection(uuid.New(), t1.ID),
		Contract:  true,
	}

	result, err := testOrchestrator(&stubEncoder{}).Run(context.Background(), snap, req)
	require.NoError(t, err)
	require.Equal(t, 1, result.Files)
	require.Equal(t, []string{"Bail_Dupont_Marie.pdf"}, zipNames(t, result.Data))
}

func TestRunAbortsWholeBatchOnRenderError(t *testing.T) {
	t1 := snapshotTenant("Marie", "Dupont")
	prop := snapshotProperty()
	snap := &Snapshot{
		Tenants:    []models.Tenant{t1},
		Leases:     []models.Lease{snapshotLease(t1.ID, prop.ID)},
		Properties: []models.Property{prop},
	}
	req := &Request{Selection: NewSelection(t1.ID), Certificate: true}

	o := testOrchestrator(&stubEncoder{})
	o.render = func(*docgen.Document) ([]byte, error) { return nil, errors.New("page overflow") }

	result, err := o.Run(context.Background(), snap, req)
	require.Error(t, err)
	require.Nil(t, result)
	require.Equal(t, 0, req.Selection.Len(), "selection is cleared even on failure")
}

func TestRunEncodesOwnerImagesExactlyOnce(t *testing.T) {
	t1 := snapshotTenant("Marie", "Dupont")
	t2 := snapshotTenant("Julie", "Bernard")
	prop := snapshotProperty()

	enc := &stubEncoder{uris: map[string]string{
		"https://img.example/logo.png": "data:image/png;base64,LOGO",
		"https://img.example/sig.png":  "data:image/png;base64,SIG",
	}}
	snap := &Snapshot{
		Tenants:    []models.Tenant{t1, t2},
		Leases:     []models.Lease{snapshotLease(t1.ID, prop.ID), snapshotLease(t2.ID, prop.ID)},
		Properties: []models.Property{prop},
		Profile: &models.OwnerProfile{
			OwnerInfo:    models.OwnerInfo{Name: "Jean Bashung"},
			LogoURL:      "https://img.example/logo.png",
			SignatureURL: "https://img.example/sig.png",
		},
	}
	req := &Request{Selection: NewSelection(t1.ID, t2.ID), Contract: true}

	result, err := testOrchestrator(enc).Run(context.Background(), snap, req)
	require.NoError(t, err)
	require.Equal(t, 2, result.Files)
	require.Equal(t, []string{
		"https://img.example/logo.png",
		"https://img.example/sig.png",
	}, enc.calls, "one encode per image for the whole batch, shared by every document")
}

func TestRunFailedImageEncodeStillProducesDocuments(t *testing.T) {
	t1 := snapshotTenant("Marie", "Dupont")
	prop := snapshotProperty()

	enc := &stubEncoder{} // every encode returns ""
	snap := &Snapshot{
		Tenants:    []models.Tenant{t1},
		Leases:     []models.Lease{snapshotLease(t1.ID, prop.ID)},
		Properties: []models.Property{prop},
		Profile: &models.OwnerProfile{
			OwnerInfo: models.OwnerInfo{Name: "Jean Bashung"},
			LogoURL:   "https://img.example/gone.png",
		},
	}
	req := &Request{Selection: NewSelection(t1.ID), Contract: true}

	result, err := testOrchestrator(enc).Run(context.Background(), snap, req)
	require.NoError(t, err)
	require.Equal(t, 1, result.Files)
}

func TestRequestKinds(t *testing.T) {
	req := &Request{Receipt: true, Contract: true}
	require.Equal(t, []string{KindReceipt, KindContract}, req.Kinds())
	require.Empty(t, (&Request{}).Kinds())
}
