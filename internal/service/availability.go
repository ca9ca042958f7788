package service

import (
	"context"

	"github.com/iliyamo/stay-booking/internal/model"
)

// BookingStore is the persistence surface the booking core needs.
// *repository.BookingRepo satisfies it.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	ActiveByListing(ctx context.Context, listingID uint64) ([]model.Booking, error)
	ListByGuest(ctx context.Context, guestID uint64) ([]model.BookingDetail, error)
	Delete(ctx context.Context, id uint64) error
}

// ListingStore is the listing surface shared by the booking and review
// cores.  *repository.ListingRepo satisfies it.
type ListingStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Listing, error)
	UpdateRating(ctx context.Context, listingID uint64, rating float64) error
}

// firstConflict returns the existing booking the candidate stay
// overlaps, or nil.  The scan is linear: the set of concurrent stays
// for one listing is small and keeping it index-free avoids a
// specialized interval structure.  No ordering is assumed.
func firstConflict(existing []model.Booking, stay model.DateRange) *model.Booking {
	for i := range existing {
		if existing[i].Stay.Overlaps(stay) {
			return &existing[i]
		}
	}
	return nil
}

// CheckAvailability reports whether the stay can be granted for the
// listing right now.  It is a pure read: nothing is reserved or
// locked.  A listing with no bookings is trivially available, and a
// stay that only touches an existing booking's endpoint does not
// conflict.
func (s *BookingService) CheckAvailability(ctx context.Context, listingID uint64, stay model.DateRange) (bool, error) {
	if err := stay.Validate(); err != nil {
		return false, err
	}
	existing, err := s.bookings.ActiveByListing(ctx, listingID)
	if err != nil {
		return false, err
	}
	return firstConflict(existing, stay) == nil, nil
}
