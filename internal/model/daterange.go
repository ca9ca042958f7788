package model

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when a stay's check-out is not strictly
// after its check-in.
var ErrInvalidRange = errors.New("check-out must be after check-in")

// DateRange is a half-open stay interval [CheckIn, CheckOut).  The
// check-out day is excluded so that one guest's check-out may equal the
// next guest's check-in without the two stays conflicting.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Validate reports ErrInvalidRange unless CheckOut is strictly after
// CheckIn.
func (r DateRange) Validate() error {
	if !r.CheckOut.After(r.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps reports whether two half-open ranges share at least one
// night.  Touching endpoints (back-to-back stays) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && r.CheckOut.After(other.CheckIn)
}

// Nights returns the number of nights covered by the range, rounding
// any partial day up to a full night.  A range that fails Validate
// yields 0.
func (r DateRange) Nights() uint32 {
	d := r.CheckOut.Sub(r.CheckIn)
	if d <= 0 {
		return 0
	}
	n := d / (24 * time.Hour)
	if d%(24*time.Hour) != 0 {
		n++
	}
	return uint32(n)
}
