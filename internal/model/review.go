package model

import "time"

// Review stores a guest's rating of a listing, as stored in the
// `reviews` table.  Each (listing, author) pair may hold at most one
// review; the rule is enforced by the review service, not by a storage
// constraint.
//
// Fields:
//  ID        – primary key identifier.
//  ListingID – listing being reviewed.
//  AuthorID  – user who wrote the review; the only one allowed to
//              edit or delete it.
//  Rating    – integer rating between 1 and 5 inclusive.
//  Comment   – free text, at least 3 characters after trimming.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Review struct {
	ID        uint64    `json:"id"`
	ListingID uint64    `json:"listing_id"`
	AuthorID  uint64    `json:"author_id"`
	Rating    uint8     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
