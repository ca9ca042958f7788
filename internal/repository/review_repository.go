package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/stay-booking/internal/model"
)

// ReviewRepo provides persistence for reviews.  The one-review-per-
// (listing, author) rule and the aggregate rating recomputation are
// enforced by the review service on top of these primitives.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and populates the generated ID and
// timestamps on the provided record.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	const q = `INSERT INTO reviews (listing_id, author_id, rating, comment) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rev.ListingID, rev.AuthorID, rev.Rating, rev.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM reviews WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, rev.ID).Scan(&rev.CreatedAt, &rev.UpdatedAt)
}

// GetByID returns a review or ErrReviewNotFound.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	const q = `SELECT id, listing_id, author_id, rating, comment, created_at, updated_at FROM reviews WHERE id = ?`
	var rev model.Review
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rev.ID, &rev.ListingID, &rev.AuthorID, &rev.Rating, &rev.Comment,
		&rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// Update rewrites a review's rating and comment.
func (r *ReviewRepo) Update(ctx context.Context, rev *model.Review) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET rating = ?, comment = ? WHERE id = ?`,
		rev.Rating, rev.Comment, rev.ID)
	return err
}

// Delete removes a review row.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// ListByListing returns all reviews for a listing, newest first.
func (r *ReviewRepo) ListByListing(ctx context.Context, listingID uint64) ([]model.Review, error) {
	const q = `SELECT id, listing_id, author_id, rating, comment, created_at, updated_at
	           FROM reviews WHERE listing_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(
			&rev.ID, &rev.ListingID, &rev.AuthorID, &rev.Rating, &rev.Comment,
			&rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// ExistsForAuthor reports whether the author already reviewed the
// listing.
func (r *ReviewRepo) ExistsForAuthor(ctx context.Context, listingID, authorID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM reviews WHERE listing_id = ? AND author_id = ? LIMIT 1`,
		listingID, authorID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
