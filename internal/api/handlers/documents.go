package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JeanBsh/LocaTrack/internal/docgen"
	"github.com/JeanBsh/LocaTrack/internal/export"
	"github.com/JeanBsh/LocaTrack/internal/imaging"
	"github.com/JeanBsh/LocaTrack/internal/models"
	"github.com/JeanBsh/LocaTrack/internal/pdf"
)

// DocumentHandler serves generated PDFs: per-tenant receipt, certificate and
// contract downloads, plus the synchronous bulk zip export.
type DocumentHandler struct {
	loader       *export.Loader
	orchestrator *export.Orchestrator
	encoder      *imaging.Encoder
	maxTenants   int
}

func NewDocumentHandler(loader *export.Loader, orchestrator *export.Orchestrator, encoder *imaging.Encoder, maxTenants int) *DocumentHandler {
	return &DocumentHandler{loader: loader, orchestrator: orchestrator, encoder: encoder, maxTenants: maxTenants}
}

func (h *DocumentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	period := time.Now()
	if v := r.URL.Query().Get("period"); v != "" {
		parsed, err := time.Parse("2006-01", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "period must be formatted yyyy-MM"})
			return
		}
		period = parsed
	}

	tenant, property, lease, owner, ok := h.resolve(w, r)
	if !ok {
		return
	}

	doc := docgen.Receipt(tenant, property, lease, owner, period)
	name := fmt.Sprintf("Quittance_%s_%s_%s.pdf",
		period.Format("2006-01"), tenant.PersonalInfo.LastName, tenant.PersonalInfo.FirstName)
	h.servePDF(w, name, doc)
}

func (h *DocumentHandler) Certificate(w http.ResponseWriter, r *http.Request) {
	tenant, property, lease, owner, ok := h.resolve(w, r)
	if !ok {
		return
	}

	doc := docgen.Certificate(tenant, property, lease, owner)
	name := fmt.Sprintf("Attestation_%s_%s.pdf", tenant.PersonalInfo.LastName, tenant.PersonalInfo.FirstName)
	h.servePDF(w, name, doc)
}

func (h *DocumentHandler) Contract(w http.ResponseWriter, r *http.Request) {
	tenant, property, lease, owner, ok := h.resolve(w, r)
	if !ok {
		return
	}

	doc := docgen.Contract(tenant, property, lease, owner)
	name := fmt.Sprintf("Bail_%s_%s.pdf", tenant.PersonalInfo.LastName, tenant.PersonalInfo.FirstName)
	h.servePDF(w, name, doc)
}

type exportRequest struct {
	TenantIDs   []uuid.UUID `json:"tenantIds" validate:"required,min=1"`
	Receipt     bool        `json:"receipt"`
	Certificate bool        `json:"certificate"`
	Contract    bool        `json:"contract"`
	Period      string      `json:"period"`
}

// Export runs a bulk export inline and streams the zip back.
func (h *DocumentHandler) Export(w http.ResponseWriter, r *http.Request) {
	var body exportRequest
	if !decodeValid(w, r, &body) {
		return
	}
	if !body.Receipt && !body.Certificate && !body.Contract {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "select at least one document type"})
		return
	}
	if len(body.TenantIDs) > h.maxTenants {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("export limited to %d tenants per run", h.maxTenants)})
		return
	}

	req := &export.Request{
		Selection:   export.NewSelection(),
		Receipt:     body.Receipt,
		Certificate: body.Certificate,
		Contract:    body.Contract,
	}
	for _, id := range body.TenantIDs {
		req.Selection.Add(id)
	}
	if body.Receipt {
		period, err := time.Parse("2006-01", body.Period)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "period must be formatted yyyy-MM"})
			return
		}
		req.Period = period
	}

	snap, err := h.loader.Load(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.orchestrator.Run(r.Context(), snap, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if result.Files == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "no documents could be generated for the selected tenants"})
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

// resolve loads the tenant named in the route plus its first lease, that
// lease's property, and the inlined owner details. Error responses are
// written here.
func (h *DocumentHandler) resolve(w http.ResponseWriter, r *http.Request) (*models.Tenant, *models.Property, *models.Lease, *docgen.Owner, bool) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant ID"})
		return nil, nil, nil, nil, false
	}

	snap, err := h.loader.Load(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, nil, nil, nil, false
	}

	var tenant *models.Tenant
	for i := range snap.Tenants {
		if snap.Tenants[i].ID == tenantID {
			tenant = &snap.Tenants[i]
			break
		}
	}
	if tenant == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tenant not found"})
		return nil, nil, nil, nil, false
	}

	var lease *models.Lease
	for i := range snap.Leases {
		if snap.Leases[i].TenantID == tenantID {
			lease = &snap.Leases[i]
			break
		}
	}
	if lease == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no lease for tenant"})
		return nil, nil, nil, nil, false
	}

	var property *models.Property
	for i := range snap.Properties {
		if snap.Properties[i].ID == lease.PropertyID {
			property = &snap.Properties[i]
			break
		}
	}
	if property == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found for lease"})
		return nil, nil, nil, nil, false
	}

	owner := docgen.OwnerFromProfile(snap.Profile)
	if owner != nil {
		owner.LogoDataURI = h.encoder.DataURI(r.Context(), snap.Profile.LogoURL)
		owner.SignatureDataURI = h.encoder.DataURI(r.Context(), snap.Profile.SignatureURL)
	}
	return tenant, property, lease, owner, true
}

func (h *DocumentHandler) servePDF(w http.ResponseWriter, name string, doc *docgen.Document) {
	data, err := pdf.Render(doc)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
