package service

import (
	"context"

	"github.com/iliyamo/stay-booking/internal/model"
)

// maxStayNights caps how long a single booking may run.
const maxStayNights = 365

// BookingService implements the booking lifecycle: conflict-arbitrated
// creation, guest-owned cancellation and listing of a guest's stays.
type BookingService struct {
	listings ListingStore
	bookings BookingStore
	locks    *KeyedMutex
}

// NewBookingService constructs a BookingService.  The KeyedMutex must
// be shared with the ReviewService so booking and review writes for
// one listing serialize on the same lock.
func NewBookingService(listings ListingStore, bookings BookingStore, locks *KeyedMutex) *BookingService {
	if listings == nil || bookings == nil || locks == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{listings: listings, bookings: bookings, locks: locks}
}

// CreateBookingInput carries the guest's request into Create.
type CreateBookingInput struct {
	ListingID   uint64
	Stay        model.DateRange
	GuestsCount uint32
	Message     string
}

// Create books a stay.  Checks run in order: the listing must exist,
// the interval must be valid, the guest count must fit the listing,
// and no non-cancelled booking may overlap the stay.  The overlap scan
// and the insert both happen under the listing's lock, so of two
// concurrent overlapping requests exactly one commits.
//
// On success the returned booking carries Nights derived from the stay
// and TotalCents = Nights x the listing's nightly price at this
// instant; later price changes never touch existing bookings.
func (s *BookingService) Create(ctx context.Context, guestID uint64, in CreateBookingInput) (*model.Booking, error) {
	listing, err := s.listings.GetByID(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	if err := in.Stay.Validate(); err != nil {
		return nil, err
	}
	if in.Stay.Nights() > maxStayNights {
		return nil, ErrStayTooLong
	}
	if in.GuestsCount == 0 {
		in.GuestsCount = 1
	}
	if in.GuestsCount > listing.MaxGuests {
		return nil, ErrGuestsExceeded
	}

	unlock := s.locks.Lock(in.ListingID)
	defer unlock()

	existing, err := s.bookings.ActiveByListing(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	if firstConflict(existing, in.Stay) != nil {
		return nil, ErrDateConflict
	}

	nights := in.Stay.Nights()
	b := &model.Booking{
		ListingID:   in.ListingID,
		GuestID:     guestID,
		Stay:        in.Stay,
		GuestsCount: in.GuestsCount,
		Message:     in.Message,
		Nights:      nights,
		TotalCents:  nights * listing.PriceCents,
		Status:      model.BookingConfirmed,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Cancel removes a booking.  Only the booking's guest may cancel; the
// freed interval becomes available to new requests immediately, with
// no hold period.
func (s *BookingService) Cancel(ctx context.Context, bookingID, callerID uint64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.GuestID != callerID {
		return ErrForbidden
	}
	unlock := s.locks.Lock(b.ListingID)
	defer unlock()
	return s.bookings.Delete(ctx, bookingID)
}

// ListForGuest returns the guest's bookings with listing details
// joined in.  Read-only; ordering follows the store.
func (s *BookingService) ListForGuest(ctx context.Context, guestID uint64) ([]model.BookingDetail, error) {
	return s.bookings.ListByGuest(ctx, guestID)
}
