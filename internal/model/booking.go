package model

import "time"

// Booking statuses.  Bookings are created CONFIRMED (there is no
// approval workflow); PENDING and CANCELLED exist for parity with the
// status enum exposed on the wire.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking records a guest's stay at a listing, as stored in the
// `bookings` table.  Nights and TotalCents are derived once at
// creation: Nights from the stay range, TotalCents as Nights times the
// listing's nightly price at that instant.  They are never recomputed,
// so a later price change on the listing does not affect existing
// bookings.
//
// Fields:
//  ID          – primary key identifier.
//  ListingID   – listing being booked.
//  GuestID     – user who booked the stay.
//  Stay        – half-open [check-in, check-out) range.
//  GuestsCount – number of guests, at most the listing's MaxGuests.
//  Message     – optional note from the guest to the host.
//  Nights      – derived night count.
//  TotalCents  – derived total price snapshot in cents.
//  Status      – booking state; CONFIRMED on creation.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
	ID          uint64    `json:"id"`
	ListingID   uint64    `json:"listing_id"`
	GuestID     uint64    `json:"guest_id"`
	Stay        DateRange `json:"-"`
	GuestsCount uint32    `json:"guests_count"`
	Message     string    `json:"message,omitempty"`
	Nights      uint32    `json:"nights"`
	TotalCents  uint32    `json:"total_cents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookingDetail is a booking with its listing denormalized in, as
// returned by the my-bookings endpoint.
type BookingDetail struct {
	Booking
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Listing  Listing   `json:"listing"`
}
