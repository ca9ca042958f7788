package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/stay-booking/internal/model"
)

// ListingRepo provides CRUD, filtered search and like-set operations
// for listings.  Likes live in the listing_likes table whose primary
// key (listing_id, user_id) keeps the set free of duplicates.  The
// average_rating column is written only through UpdateRating, driven by
// the review service.
type ListingRepo struct {
	db *sql.DB
}

// NewListingRepo returns a new ListingRepo bound to the given database.
func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingCols = `id, host_id, title, description, location, image_url, price_cents, max_guests, type, amenities, average_rating, created_at, updated_at`

// Create inserts a new listing.  HostID, Title and PriceCents must be
// set.  After insert the record is read back so generated fields
// (timestamps, rating default) are populated.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	const q = `INSERT INTO listings (host_id, title, description, location, image_url, price_cents, max_guests, type, amenities)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		l.HostID, l.Title, l.Description, l.Location, l.ImageURL,
		l.PriceCents, l.MaxGuests, l.Type, joinAmenities(l.Amenities))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	got, err := r.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}
	*l = *got
	return nil
}

// GetByID retrieves a listing with its like set populated.  It returns
// ErrListingNotFound when no row exists.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	q := `SELECT ` + listingCols + ` FROM listings WHERE id = ?`
	l, err := scanListing(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	likes, err := r.likesFor(ctx, []uint64{l.ID})
	if err != nil {
		return nil, err
	}
	l.LikedBy = likes[l.ID]
	return l, nil
}

// SearchFilter narrows the public listing search.  Zero values mean
// "no constraint".  Prices are in cents; Amenities requires every
// named amenity to be present; Sort orders by price when "asc" or
// "desc".
type SearchFilter struct {
	Location  string
	MinCents  uint32
	MaxCents  uint32
	Guests    uint32
	Type      string
	Amenities []string
	Sort      string
}

// Search returns all listings matching the filter.  Amenity matching
// happens in Go after the scan: the column is a comma-separated label
// list and FIND_IN_SET per amenity would not use an index either.
func (r *ListingRepo) Search(ctx context.Context, f SearchFilter) ([]*model.Listing, error) {
	q := `SELECT ` + listingCols + ` FROM listings`
	var conds []string
	var args []interface{}
	if f.Location != "" {
		conds = append(conds, "location LIKE ?")
		args = append(args, "%"+f.Location+"%")
	}
	if f.MinCents > 0 {
		conds = append(conds, "price_cents >= ?")
		args = append(args, f.MinCents)
	}
	if f.MaxCents > 0 {
		conds = append(conds, "price_cents <= ?")
		args = append(args, f.MaxCents)
	}
	if f.Guests > 0 {
		conds = append(conds, "max_guests >= ?")
		args = append(args, f.Guests)
	}
	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, f.Type)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	switch f.Sort {
	case "asc":
		q += " ORDER BY price_cents ASC"
	case "desc":
		q += " ORDER BY price_cents DESC"
	default:
		q += " ORDER BY id"
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		if !hasAllAmenities(l.Amenities, f.Amenities) {
			continue
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.populateLikes(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByHost returns all listings owned by the given host.
func (r *ListingRepo) ListByHost(ctx context.Context, hostID uint64) ([]*model.Listing, error) {
	q := `SELECT ` + listingCols + ` FROM listings WHERE host_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.populateLikes(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable listing fields.  Ownership is checked by
// the caller; average_rating is deliberately excluded.
func (r *ListingRepo) Update(ctx context.Context, l *model.Listing) error {
	const q = `UPDATE listings SET title=?, description=?, location=?, image_url=?, price_cents=?, max_guests=?, type=?, amenities=? WHERE id=?`
	_, err := r.db.ExecContext(ctx, q,
		l.Title, l.Description, l.Location, l.ImageURL,
		l.PriceCents, l.MaxGuests, l.Type, joinAmenities(l.Amenities), l.ID)
	return err
}

// Delete removes a listing row.  Dependent rows (likes, favorites) are
// removed by the schema's ON DELETE CASCADE.
func (r *ListingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrListingNotFound
	}
	return nil
}

// ToggleLike flips userID's membership in the listing's like set and
// reports the resulting state.  Delete-then-insert keeps the operation
// idempotent under retries; the composite primary key rejects
// duplicates.
func (r *ListingRepo) ToggleLike(ctx context.Context, listingID, userID uint64) (liked bool, err error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM listing_likes WHERE listing_id = ? AND user_id = ?`, listingID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT IGNORE INTO listing_likes (listing_id, user_id) VALUES (?, ?)`, listingID, userID)
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateRating writes the recomputed aggregate rating onto the listing.
func (r *ListingRepo) UpdateRating(ctx context.Context, listingID uint64, rating float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE listings SET average_rating = ? WHERE id = ?`, rating, listingID)
	return err
}

// likesFor loads like sets for the given listing IDs in one query.
func (r *ListingRepo) likesFor(ctx context.Context, ids []uint64) (map[uint64][]uint64, error) {
	out := make(map[uint64][]uint64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT listing_id, user_id FROM listing_likes WHERE listing_id IN (` +
		strings.Join(placeholders, ",") + `) ORDER BY listing_id, user_id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var lid, uid uint64
		if err := rows.Scan(&lid, &uid); err != nil {
			return nil, err
		}
		out[lid] = append(out[lid], uid)
	}
	return out, rows.Err()
}

func (r *ListingRepo) populateLikes(ctx context.Context, listings []*model.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	likes, err := r.likesFor(ctx, ids)
	if err != nil {
		return err
	}
	for _, l := range listings {
		l.LikedBy = likes[l.ID]
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanListing.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(s rowScanner) (*model.Listing, error) {
	var l model.Listing
	var description, location, imageURL, amenities sql.NullString
	err := s.Scan(&l.ID, &l.HostID, &l.Title, &description, &location, &imageURL,
		&l.PriceCents, &l.MaxGuests, &l.Type, &amenities, &l.AverageRating,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Description = description.String
	l.Location = location.String
	l.ImageURL = imageURL.String
	l.Amenities = splitAmenities(amenities.String)
	l.LikedBy = []uint64{}
	return &l, nil
}

func joinAmenities(a []string) string {
	cleaned := make([]string, 0, len(a))
	for _, s := range a {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return strings.Join(cleaned, ",")
}

func splitAmenities(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasAllAmenities(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, a := range have {
		set[a] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[strings.ToLower(strings.TrimSpace(w))]; !ok {
			return false
		}
	}
	return true
}
