package model

import "time"

// Listing types accepted by the API.  Anything else is rejected at the
// validation boundary.
const (
	ListingTypeApartment = "apartment"
	ListingTypeHouse     = "house"
	ListingTypeTent      = "tent"
	ListingTypeVilla     = "villa"
	ListingTypeCabin     = "cabin"
)

// Listing represents a rental unit published by a host, as stored in
// the `listings` table.  AverageRating is the only field the system
// mutates on its own: it is rewritten after every review change and
// holds the mean of all current review ratings rounded to one decimal,
// or 0 when the listing has no reviews.
//
// Fields:
//  ID            – primary key identifier.
//  HostID        – user who published the listing.
//  Title         – short display name.
//  Description   – free-form text.
//  Location      – city / area used for substring search.
//  ImageURL      – cover image on the media host.
//  PriceCents    – nightly price in cents (snapshot source for bookings).
//  MaxGuests     – maximum guest count, at least 1.
//  Type          – one of the ListingType constants.
//  Amenities     – amenity labels (wifi, kitchen, ...).
//  AverageRating – derived mean rating, 1 decimal, 0 when unreviewed.
//  LikedBy       – ids of users who liked the listing; a set, never
//                  containing duplicates.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Listing struct {
	ID            uint64    `json:"id"`
	HostID        uint64    `json:"host_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	ImageURL      string    `json:"image,omitempty"`
	PriceCents    uint32    `json:"price_cents"`
	MaxGuests     uint32    `json:"max_guests"`
	Type          string    `json:"type"`
	Amenities     []string  `json:"amenities"`
	AverageRating float64   `json:"average_rating"`
	LikedBy       []uint64  `json:"liked_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidListingType reports whether t is one of the accepted listing
// types.
func ValidListingType(t string) bool {
	switch t {
	case ListingTypeApartment, ListingTypeHouse, ListingTypeTent, ListingTypeVilla, ListingTypeCabin:
		return true
	}
	return false
}
