package docgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JeanBsh/LocaTrack/internal/models"
)

func TestOwnerFromProfile(t *testing.T) {
	require.Nil(t, OwnerFromProfile(nil))

	full := OwnerFromProfile(&models.OwnerProfile{
		OwnerInfo: models.OwnerInfo{
			Name:    "Jean Bashung",
			Address: "8 quai des Brumes",
			ZipCode: "44000",
			City:    "Nantes",
			Email:   "jean@example.fr",
		},
	})
	require.Equal(t, "Jean Bashung", full.Name)
	require.Equal(t, "8 quai des Brumes\n44000 Nantes", full.Address)

	empty := OwnerFromProfile(&models.OwnerProfile{})
	require.Equal(t, placeholderOwnerName, empty.Name)
	require.Equal(t, placeholderOwnerAddress, empty.Address)

	cityOnly := OwnerFromProfile(&models.OwnerProfile{
		OwnerInfo: models.OwnerInfo{Name: "  ", City: "Lille", ZipCode: "59000"},
	})
	require.Equal(t, placeholderOwnerName, cityOnly.Name)
	require.Equal(t, "59000 Lille", cityOnly.Address)
}
