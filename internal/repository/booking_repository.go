package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/stay-booking/internal/model"
)

// BookingRepo provides persistence for bookings.  Overlap arbitration
// is not done here: the booking service serializes writes per listing
// and runs the availability scan over ActiveByListing before calling
// Create, so the rows this repo sees are already conflict-free.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking and populates the generated ID and
// timestamps on the provided record.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (listing_id, guest_id, check_in, check_out, guests_count, message, nights, total_cents, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.ListingID, b.GuestID, b.Stay.CheckIn, b.Stay.CheckOut,
		b.GuestsCount, b.Message, b.Nights, b.TotalCents, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByID returns a booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, listing_id, guest_id, check_in, check_out, guests_count, message, nights, total_cents, status, created_at, updated_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	var message sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.ListingID, &b.GuestID, &b.Stay.CheckIn, &b.Stay.CheckOut,
		&b.GuestsCount, &message, &b.Nights, &b.TotalCents, &b.Status,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	b.Message = message.String
	return &b, nil
}

// ActiveByListing returns every non-cancelled booking for a listing.
// The set is small for any one listing, so the availability engine
// scans it linearly; no ordering is guaranteed.
func (r *BookingRepo) ActiveByListing(ctx context.Context, listingID uint64) ([]model.Booking, error) {
	const q = `SELECT id, listing_id, guest_id, check_in, check_out, guests_count, message, nights, total_cents, status, created_at, updated_at
	           FROM bookings WHERE listing_id = ? AND status <> ?`
	rows, err := r.db.QueryContext(ctx, q, listingID, model.BookingCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		var message sql.NullString
		if err := rows.Scan(
			&b.ID, &b.ListingID, &b.GuestID, &b.Stay.CheckIn, &b.Stay.CheckOut,
			&b.GuestsCount, &message, &b.Nights, &b.TotalCents, &b.Status,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.Message = message.String
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByGuest returns all bookings made by the guest with listing
// details denormalized in, newest first.
func (r *BookingRepo) ListByGuest(ctx context.Context, guestID uint64) ([]model.BookingDetail, error) {
	q := `SELECT b.id, b.listing_id, b.guest_id, b.check_in, b.check_out, b.guests_count, b.message, b.nights, b.total_cents, b.status, b.created_at, b.updated_at,
	             l.id, l.host_id, l.title, l.description, l.location, l.image_url, l.price_cents, l.max_guests, l.type, l.amenities, l.average_rating, l.created_at, l.updated_at
	      FROM bookings b
	      JOIN listings l ON l.id = b.listing_id
	      WHERE b.guest_id = ?
	      ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BookingDetail, 0)
	for rows.Next() {
		var d model.BookingDetail
		var message sql.NullString
		var desc, loc, img, amen sql.NullString
		if err := rows.Scan(
			&d.ID, &d.ListingID, &d.GuestID, &d.Stay.CheckIn, &d.Stay.CheckOut,
			&d.GuestsCount, &message, &d.Nights, &d.TotalCents, &d.Status,
			&d.CreatedAt, &d.UpdatedAt,
			&d.Listing.ID, &d.Listing.HostID, &d.Listing.Title, &desc, &loc, &img,
			&d.Listing.PriceCents, &d.Listing.MaxGuests, &d.Listing.Type, &amen,
			&d.Listing.AverageRating, &d.Listing.CreatedAt, &d.Listing.UpdatedAt); err != nil {
			return nil, err
		}
		d.Message = message.String
		d.CheckIn = d.Stay.CheckIn
		d.CheckOut = d.Stay.CheckOut
		d.Listing.Description = desc.String
		d.Listing.Location = loc.String
		d.Listing.ImageURL = img.String
		d.Listing.Amenities = splitAmenities(amen.String)
		d.Listing.LikedBy = []uint64{}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete removes a booking row, immediately freeing its interval.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
