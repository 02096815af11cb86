// Package export produces one zip archive of generated PDFs for a selection
// of tenants.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JeanBsh/LocaTrack/internal/docgen"
	"github.com/JeanBsh/LocaTrack/internal/models"
	"github.com/JeanBsh/LocaTrack/internal/pdf"
)

const (
	KindReceipt     = "receipt"
	KindCertificate = "certificate"
	KindContract    = "contract"
)

// ImageEncoder inlines a remote image as a data URI, "" on failure.
type ImageEncoder interface {
	DataURI(ctx context.Context, url string) string
}

// Snapshot is the in-memory entity state an export operates on. It is loaded
// by the caller before the run starts and never re-queried; edits made
// elsewhere while the run is in flight are not picked up.
type Snapshot struct {
	Tenants    []models.Tenant
	Leases     []models.Lease
	Properties []models.Property
	Profile    *models.OwnerProfile
}

// Request describes one bulk export: which tenants, which document kinds, and
// the billing period for receipts.
type Request struct {
	Selection   *Selection
	Receipt     bool
	Certificate bool
	Contract    bool
	Period      time.Time
}

func (r *Request) Kinds() []string {
	var kinds []string
	if r.Receipt {
		kinds = append(kinds, KindReceipt)
	}
	if r.Certificate {
		kinds = append(kinds, KindCertificate)
	}
	if r.Contract {
		kinds = append(kinds, KindContract)
	}
	return kinds
}

// Result is the finished archive.
type Result struct {
	FileName string
	Data     []byte
	Files    int
}

type Orchestrator struct {
	encoder ImageEncoder
	render  func(*docgen.Document) ([]byte, error)
	now     func() time.Time
}

func NewOrchestrator(encoder ImageEncoder) *Orchestrator {
	return &Orchestrator{
		encoder: encoder,
		render:  pdf.Render,
		now:     time.Now,
	}
}

// Run generates documents strictly sequentially, tenant by tenant, kind by
// kind in the fixed order receipt, certificate, contract. Tenants whose lease
// or property cannot be resolved are skipped silently. Any render or archive
// error aborts the whole batch with no partial archive. The selection is
// cleared whatever the outcome.
func (o *Orchestrator) Run(ctx context.Context, snap *Snapshot, req *Request) (*Result, error) {
	defer req.Selection.Clear()

	// Owner info is resolved once per run; logo and signature each go
	// through the encoder exactly once and the inline bytes are shared by
	// every document in the batch.
	owner := docgen.OwnerFromProfile(snap.Profile)
	if owner != nil {
		owner.LogoDataURI = o.encoder.DataURI(ctx, snap.Profile.LogoURL)
		owner.SignatureDataURI = o.encoder.DataURI(ctx, snap.Profile.SignatureURL)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := 0

	for _, tenantID := range req.Selection.IDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tenant := findTenant(snap.Tenants, tenantID)
		if tenant == nil {
			slog.Warn("export: tenant not in snapshot, skipping", "tenant_id", tenantID)
			continue
		}

		lease := findLease(snap.Leases, tenantID)
		if lease == nil {
			slog.Info("export: no lease for tenant, skipping", "tenant_id", tenantID)
			continue
		}
		property := findProperty(snap.Properties, lease.PropertyID)
		if property == nil {
			slog.Info("export: lease references missing property, skipping",
				"tenant_id", tenantID, "property_id", lease.PropertyID)
			continue
		}

		last := tenant.PersonalInfo.LastName
		first := tenant.PersonalInfo.FirstName

		if req.Receipt {
			doc := docgen.Receipt(tenant, property, lease, owner, req.Period)
			name := fmt.Sprintf("Quittance_%s_%s_%s.pdf", req.Period.Format("2006-01"), last, first)
			if err := o.addDocument(zw, name, doc); err != nil {
				return nil, err
			}
			files++
		}
		if req.Certificate {
			doc := docgen.Certificate(tenant, property, lease, owner)
			name := fmt.Sprintf("Attestation_%s_%s.pdf", last, first)
			if err := o.addDocument(zw, name, doc); err != nil {
				return nil, err
			}
			files++
		}
		if req.Contract {
			doc := docgen.Contract(tenant, property, lease, owner)
			name := fmt.Sprintf("Bail_%s_%s.pdf", last, first)
			if err := o.addDocument(zw, name, doc); err != nil {
				return nil, err
			}
			files++
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	return &Result{
		FileName: fmt.Sprintf("Documents_LocaTrack_%s.zip", o.now().Format("20060102_1504")),
		Data:     buf.Bytes(),
		Files:    files,
	}, nil
}

func (o *Orchestrator) addDocument(zw *zip.Writer, name string, doc *docgen.Document) error {
	data, err := o.render(doc)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("add %s to archive: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s to archive: %w", name, err)
	}
	return nil
}

func findTenant(tenants []models.Tenant, id uuid.UUID) *models.Tenant {
	for i := range tenants {
		if tenants[i].ID == id {
			return &tenants[i]
		}
	}
	return nil
}

// findLease returns the first lease referencing the tenant; there is no
// explicit active flag, first match wins.
func findLease(leases []models.Lease, tenantID uuid.UUID) *models.Lease {
	for i := range leases {
		if leases[i].TenantID == tenantID {
			return &leases[i]
		}
	}
	return nil
}

func findProperty(properties []models.Property, id uuid.UUID) *models.Property {
	for i := range properties {
		if properties[i].ID == id {
			return &properties[i]
		}
	}
	return nil
}
