// Package service holds the booking and review cores: availability
// arbitration for stay intervals, the booking lifecycle with its
// derived pricing fields, and the listing rating aggregate.  Both
// cores serialize their check-then-write sequences on a per-listing
// lock so concurrent requests for the same listing cannot interleave.
package service

import "errors"

// ErrDateConflict is returned when a requested stay overlaps an
// existing non-cancelled booking for the same listing.
var ErrDateConflict = errors.New("dates are already booked")

// ErrDuplicateReview is returned when an author reviews the same
// listing a second time.
var ErrDuplicateReview = errors.New("listing already reviewed by this user")

// ErrForbidden is returned when the caller is not the owning identity
// of the record being mutated.  Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrGuestsExceeded is returned when a booking asks for more guests
// than the listing allows.
var ErrGuestsExceeded = errors.New("guests count exceeds listing maximum")

// ErrInvalidRating is returned when a rating is outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ErrCommentTooShort is returned when a review comment has fewer than
// 3 characters after trimming.
var ErrCommentTooShort = errors.New("comment must contain at least 3 characters")

// ErrStayTooLong is returned when a requested stay exceeds the maximum
// bookable length.  Bounding the night count also keeps the derived
// nights x price total from wrapping.
var ErrStayTooLong = errors.New("stay exceeds maximum length")
