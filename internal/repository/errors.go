// Package repository defines the data access layer and the sentinel
// errors shared across repositories. Sentinel values let higher layers
// such as handlers distinguish failure scenarios: a lookup miss maps to
// HTTP 404, while ErrEmailExists maps to 409 on registration.
package repository

import "errors"

// ErrListingNotFound is returned when a listing lookup fails.
var ErrListingNotFound = errors.New("listing not found")

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// ErrReviewNotFound is returned when a review lookup fails.
var ErrReviewNotFound = errors.New("review not found")

// ErrUserNotFound is returned when a user lookup fails.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registration collides with an
// existing email address.
var ErrEmailExists = errors.New("email already exists")

// ErrRefreshTokenInvalid is returned when a refresh token is unknown,
// expired or revoked.
var ErrRefreshTokenInvalid = errors.New("refresh token invalid")
