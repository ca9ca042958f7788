package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rng(in, out time.Time) DateRange {
	return DateRange{CheckIn: in, CheckOut: out}
}

func TestDateRangeValidate(t *testing.T) {
	require.NoError(t, rng(day(2025, 7, 10), day(2025, 7, 12)).Validate())

	// zero-length and inverted ranges are both invalid
	require.ErrorIs(t, rng(day(2025, 7, 10), day(2025, 7, 10)).Validate(), ErrInvalidRange)
	require.ErrorIs(t, rng(day(2025, 7, 12), day(2025, 7, 10)).Validate(), ErrInvalidRange)
}

func TestDateRangeOverlaps(t *testing.T) {
	base := rng(day(2025, 7, 10), day(2025, 7, 15))

	cases := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"identical", rng(day(2025, 7, 10), day(2025, 7, 15)), true},
		{"contained", rng(day(2025, 7, 11), day(2025, 7, 13)), true},
		{"contains", rng(day(2025, 7, 1), day(2025, 7, 31)), true},
		{"overlap left edge", rng(day(2025, 7, 8), day(2025, 7, 11)), true},
		{"overlap right edge", rng(day(2025, 7, 14), day(2025, 7, 20)), true},
		{"one shared night", rng(day(2025, 7, 14), day(2025, 7, 15)), true},
		{"back to back after", rng(day(2025, 7, 15), day(2025, 7, 18)), false},
		{"back to back before", rng(day(2025, 7, 5), day(2025, 7, 10)), false},
		{"disjoint after", rng(day(2025, 7, 20), day(2025, 7, 22)), false},
		{"disjoint before", rng(day(2025, 7, 1), day(2025, 7, 5)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, base.Overlaps(tc.other))
			// overlap is symmetric
			require.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestDateRangeNights(t *testing.T) {
	require.Equal(t, uint32(2), rng(day(2025, 7, 10), day(2025, 7, 12)).Nights())
	require.Equal(t, uint32(1), rng(day(2025, 7, 10), day(2025, 7, 11)).Nights())
	require.Equal(t, uint32(21), rng(day(2025, 7, 10), day(2025, 7, 31)).Nights())

	// a partial extra day still counts as a full night
	late := rng(day(2025, 7, 10), day(2025, 7, 12).Add(6*time.Hour))
	require.Equal(t, uint32(3), late.Nights())
}
