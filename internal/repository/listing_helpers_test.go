package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmenitiesRoundTrip(t *testing.T) {
	joined := joinAmenities([]string{" WiFi ", "kitchen", "", "Pool"})
	require.Equal(t, "wifi,kitchen,pool", joined)
	require.Equal(t, []string{"wifi", "kitchen", "pool"}, splitAmenities(joined))

	require.Equal(t, "", joinAmenities(nil))
	require.Equal(t, []string{}, splitAmenities(""))
}

func TestHasAllAmenities(t *testing.T) {
	have := []string{"wifi", "kitchen", "pool"}

	require.True(t, hasAllAmenities(have, nil))
	require.True(t, hasAllAmenities(have, []string{"wifi"}))
	require.True(t, hasAllAmenities(have, []string{" WiFi ", "POOL"}))
	require.False(t, hasAllAmenities(have, []string{"wifi", "sauna"}))
	require.False(t, hasAllAmenities(nil, []string{"wifi"}))
}
