// Package queue defines message payloads exchanged over the message
// broker, the publisher, and the background consumer.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// created.  It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID    uint64 `json:"booking_id"`
	ListingID    uint64 `json:"listing_id"`
	ListingTitle string `json:"listing_title"`
	GuestID      uint64 `json:"guest_id"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	Nights       uint32 `json:"nights"`
	TotalCents   uint32 `json:"total_cents"`
	ConfirmedAt  string `json:"confirmed_at"`
}
