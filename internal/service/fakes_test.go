package service

import (
	"context"
	"sync"

	"github.com/iliyamo/stay-booking/internal/model"
	"github.com/iliyamo/stay-booking/internal/repository"
)

// In-memory stores backing the service tests.  They mirror the
// repository contracts, including the sentinel errors, without a
// database.  All methods are safe for concurrent use so the
// arbitration tests can hammer them from many goroutines.

type memListings struct {
	mu       sync.Mutex
	byID     map[uint64]*model.Listing
	ratings  map[uint64]float64
	rateHits int
}

func newMemListings(listings ...*model.Listing) *memListings {
	m := &memListings{byID: make(map[uint64]*model.Listing), ratings: make(map[uint64]float64)}
	for _, l := range listings {
		m.byID[l.ID] = l
	}
	return m
}

func (m *memListings) GetByID(_ context.Context, id uint64) (*model.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memListings) UpdateRating(_ context.Context, listingID uint64, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[listingID]; !ok {
		return repository.ErrListingNotFound
	}
	m.byID[listingID].AverageRating = rating
	m.ratings[listingID] = rating
	m.rateHits++
	return nil
}

func (m *memListings) rating(listingID uint64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ratings[listingID]
}

type memBookings struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]model.Booking
}

func newMemBookings() *memBookings {
	return &memBookings{nextID: 1, rows: make(map[uint64]model.Booking)}
}

func (m *memBookings) Create(_ context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.nextID
	m.nextID++
	m.rows[b.ID] = *b
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return &b, nil
}

func (m *memBookings) ActiveByListing(_ context.Context, listingID uint64) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Booking
	for _, b := range m.rows {
		if b.ListingID == listingID && b.Status != model.BookingCancelled {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) ListByGuest(_ context.Context, guestID uint64) ([]model.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.BookingDetail
	for _, b := range m.rows {
		if b.GuestID == guestID {
			out = append(out, model.BookingDetail{
				Booking:  b,
				CheckIn:  b.Stay.CheckIn,
				CheckOut: b.Stay.CheckOut,
			})
		}
	}
	return out, nil
}

func (m *memBookings) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repository.ErrBookingNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memBookings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memReviews struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]model.Review
}

func newMemReviews() *memReviews {
	return &memReviews{nextID: 1, rows: make(map[uint64]model.Review)}
}

func (m *memReviews) Create(_ context.Context, rev *model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rev.ID = m.nextID
	m.nextID++
	m.rows[rev.ID] = *rev
	return nil
}

func (m *memReviews) GetByID(_ context.Context, id uint64) (*model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	return &r, nil
}

func (m *memReviews) Update(_ context.Context, rev *model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[rev.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	m.rows[rev.ID] = *rev
	return nil
}

func (m *memReviews) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memReviews) ListByListing(_ context.Context, listingID uint64) ([]model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Review
	for _, r := range m.rows {
		if r.ListingID == listingID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReviews) ExistsForAuthor(_ context.Context, listingID, authorID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ListingID == listingID && r.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}
