package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stay-booking/internal/model"
	"github.com/iliyamo/stay-booking/internal/repository"
)

func TestCreateBookingDerivedFields(t *testing.T) {
	svc := newBookingService(newMemListings(testListing()), newMemBookings())

	b, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID:   1,
		Stay:        stay(day(2025, 7, 10), day(2025, 7, 12)),
		GuestsCount: 2,
		Message:     "late arrival",
	})
	require.NoError(t, err)
	require.Equal(t, uint32(2), b.Nights)
	require.Equal(t, uint32(24000), b.TotalCents) // 2 nights x 12000
	require.Equal(t, model.BookingConfirmed, b.Status)
	require.Equal(t, uint64(2), b.GuestID)
	require.NotZero(t, b.ID)
}

func TestCreateBookingPriceSnapshot(t *testing.T) {
	listings := newMemListings(testListing())
	svc := newBookingService(listings, newMemBookings())

	b, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 10), day(2025, 7, 12)),
	})
	require.NoError(t, err)

	// a later price change must not affect the stored booking
	listings.byID[1].PriceCents = 99999
	got, err := svc.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	require.Equal(t, uint32(24000), got.TotalCents)
}

func TestCreateBookingGuestCountRules(t *testing.T) {
	svc := newBookingService(newMemListings(testListing()), newMemBookings())

	// zero guests defaults to one
	b, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 10), day(2025, 7, 12)),
	})
	require.NoError(t, err)
	require.Equal(t, uint32(1), b.GuestsCount)

	_, err = svc.Create(context.Background(), 3, CreateBookingInput{
		ListingID:   1,
		Stay:        stay(day(2025, 8, 1), day(2025, 8, 3)),
		GuestsCount: 5, // listing allows 4
	})
	require.ErrorIs(t, err, ErrGuestsExceeded)
}

func TestCreateBookingConflict(t *testing.T) {
	svc := newBookingService(newMemListings(testListing()), newMemBookings())

	_, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 10), day(2025, 7, 15)),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 3, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 14), day(2025, 7, 16)),
	})
	require.ErrorIs(t, err, ErrDateConflict)

	// back to back succeeds
	_, err = svc.Create(context.Background(), 3, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 15), day(2025, 7, 16)),
	})
	require.NoError(t, err)
}

func TestCreateBookingInvalidRange(t *testing.T) {
	svc := newBookingService(newMemListings(testListing()), newMemBookings())

	_, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 12), day(2025, 7, 10)),
	})
	require.ErrorIs(t, err, model.ErrInvalidRange)
}

func TestCreateBookingMaxStayLength(t *testing.T) {
	svc := newBookingService(newMemListings(testListing()), newMemBookings())

	// a full year is the longest accepted stay
	b, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 1, 1), day(2026, 1, 1)),
	})
	require.NoError(t, err)
	require.Equal(t, uint32(365), b.Nights)

	_, err = svc.Create(context.Background(), 3, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2026, 2, 1), day(2027, 2, 2)),
	})
	require.ErrorIs(t, err, ErrStayTooLong)
}

func TestConcurrentOverlappingCreates(t *testing.T) {
	bookings := newMemBookings()
	svc := newBookingService(newMemListings(testListing()), bookings)

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), uint64(100+i), CreateBookingInput{
				ListingID: 1,
				Stay:      stay(day(2025, 7, 10), day(2025, 7, 15)),
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, ErrDateConflict)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, bookings.count())
}

func TestCancelBooking(t *testing.T) {
	bookings := newMemBookings()
	svc := newBookingService(newMemListings(testListing()), bookings)

	b, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 10), day(2025, 7, 15)),
	})
	require.NoError(t, err)

	// only the guest may cancel
	require.ErrorIs(t, svc.Cancel(context.Background(), b.ID, 3), ErrForbidden)
	require.NoError(t, svc.Cancel(context.Background(), b.ID, 2))
	require.ErrorIs(t, svc.Cancel(context.Background(), b.ID, 2), repository.ErrBookingNotFound)

	// the freed interval is immediately bookable again
	_, err = svc.Create(context.Background(), 4, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 10), day(2025, 7, 15)),
	})
	require.NoError(t, err)
}

func TestListForGuest(t *testing.T) {
	svc := newBookingService(newMemListings(testListing()), newMemBookings())

	_, err := svc.Create(context.Background(), 2, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 7, 10), day(2025, 7, 12)),
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 3, CreateBookingInput{
		ListingID: 1,
		Stay:      stay(day(2025, 8, 1), day(2025, 8, 3)),
	})
	require.NoError(t, err)

	mine, err := svc.ListForGuest(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, day(2025, 7, 10), mine[0].CheckIn)
	require.Equal(t, day(2025, 7, 12), mine[0].CheckOut)
}
