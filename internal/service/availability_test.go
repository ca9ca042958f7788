package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stay-booking/internal/model"
	"github.com/iliyamo/stay-booking/internal/repository"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(in, out time.Time) model.DateRange {
	return model.DateRange{CheckIn: in, CheckOut: out}
}

func testListing() *model.Listing {
	return &model.Listing{ID: 1, HostID: 9, Title: "Sea cabin", PriceCents: 12000, MaxGuests: 4}
}

func newBookingService(listings *memListings, bookings *memBookings) *BookingService {
	return NewBookingService(listings, bookings, NewKeyedMutex())
}

func TestCheckAvailabilityEmptyListing(t *testing.T) {
	svc := newBookingService(newMemListings(testListing()), newMemBookings())

	ok, err := svc.CheckAvailability(context.Background(), 1, stay(day(2025, 7, 10), day(2025, 7, 12)))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckAvailabilityConflict(t *testing.T) {
	listings := newMemListings(testListing())
	bookings := newMemBookings()
	svc := newBookingService(listings, bookings)

	_, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 10), day(2025, 7, 15)),
	})
	require.NoError(t, err)

	ok, err := svc.CheckAvailability(context.Background(), 1, stay(day(2025, 7, 12), day(2025, 7, 14)))
	require.NoError(t, err)
	require.False(t, ok)

	// the same interval on another listing is unaffected
	other := &model.Listing{ID: 2, HostID: 9, PriceCents: 5000, MaxGuests: 2}
	listings.byID[2] = other
	ok, err = svc.CheckAvailability(context.Background(), 2, stay(day(2025, 7, 12), day(2025, 7, 14)))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckAvailabilityBackToBack(t *testing.T) {
	svc := newBookingService(newMemListings(testListing()), newMemBookings())

	_, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 10), day(2025, 7, 15)),
	})
	require.NoError(t, err)

	// check-in on the existing check-out day does not conflict
	ok, err := svc.CheckAvailability(context.Background(), 1, stay(day(2025, 7, 15), day(2025, 7, 18)))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.CheckAvailability(context.Background(), 1, stay(day(2025, 7, 8), day(2025, 7, 10)))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckAvailabilityInvalidRange(t *testing.T) {
	svc := newBookingService(newMemListings(testListing()), newMemBookings())

	_, err := svc.CheckAvailability(context.Background(), 1, stay(day(2025, 7, 12), day(2025, 7, 12)))
	require.ErrorIs(t, err, model.ErrInvalidRange)
}

func TestCheckAvailabilityIgnoresCancelled(t *testing.T) {
	listings := newMemListings(testListing())
	bookings := newMemBookings()
	svc := newBookingService(listings, bookings)

	b, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 10), day(2025, 7, 15)),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), b.ID, 2))

	// cancelling frees the interval immediately
	ok, err := svc.CheckAvailability(context.Background(), 1, stay(day(2025, 7, 10), day(2025, 7, 15)))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckAvailabilityStoreErrorPropagates(t *testing.T) {
	svc := newBookingService(newMemListings(), newMemBookings())

	// unknown listing: the availability check does not resolve the
	// listing, but creating against it must fail
	_, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 42,
		Stay:      stay(day(2025, 7, 10), day(2025, 7, 12)),
	})
	require.ErrorIs(t, err, repository.ErrListingNotFound)
}
