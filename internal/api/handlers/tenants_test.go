package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JeanBsh/LocaTrack/internal/tenant"
)

func decodeTenantRequest(t *testing.T, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	var req tenant.CreateRequest
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/tenants", strings.NewReader(body))
	return rec, decodeValid(rec, r, &req)
}

func TestTenantRequestRequiresAllPersonalFields(t *testing.T) {
	cases := map[string]string{
		"missing lastName": `{"personalInfo":{"firstName":"Marie","email":"m@d.fr","phone":"0601020304"}}`,
		"missing email":    `{"personalInfo":{"firstName":"Marie","lastName":"Dupont","phone":"0601020304"}}`,
		"missing phone":    `{"personalInfo":{"firstName":"Marie","lastName":"Dupont","email":"m@d.fr"}}`,
		"empty lastName":   `{"personalInfo":{"firstName":"Marie","lastName":"","email":"m@d.fr","phone":"0601020304"}}`,
		"firstName only":   `{"personalInfo":{"firstName":"Marie"}}`,
		"no personalInfo":  `{}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec, ok := decodeTenantRequest(t, body)
			require.False(t, ok)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestTenantRequestAcceptsCompletePersonalInfo(t *testing.T) {
	body := `{"personalInfo":{"firstName":"Marie","lastName":"Dupont","email":"m@d.fr","phone":"0601020304"}}`

	rec, ok := decodeTenantRequest(t, body)
	require.True(t, ok)
	require.Equal(t, http.StatusOK, rec.Code)
}
