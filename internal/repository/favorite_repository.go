package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/stay-booking/internal/model"
)

// FavoriteRepo persists a user's saved listings in the user_favorites
// table.  The composite primary key (user_id, listing_id) gives the
// set semantics; Add is idempotent via INSERT IGNORE.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo returns a new FavoriteRepo bound to the given database.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add saves a listing to the user's favorites.  Adding twice is a
// no-op.
func (r *FavoriteRepo) Add(ctx context.Context, userID, listingID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO user_favorites (user_id, listing_id) VALUES (?, ?)`,
		userID, listingID)
	return err
}

// Remove drops a listing from the user's favorites.  Removing an
// absent entry is a no-op.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, listingID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_favorites WHERE user_id = ? AND listing_id = ?`,
		userID, listingID)
	return err
}

// ListByUser returns the user's favorited listings, most recently
// saved first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Listing, error) {
	q := `SELECT l.id, l.host_id, l.title, l.description, l.location, l.image_url, l.price_cents, l.max_guests, l.type, l.amenities, l.average_rating, l.created_at, l.updated_at
	      FROM user_favorites f
	      JOIN listings l ON l.id = f.listing_id
	      WHERE f.user_id = ?
	      ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
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
	return out, rows.Err()
}
