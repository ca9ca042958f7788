package service

import (
	"context"
	"math"
	"strings"

	"github.com/iliyamo/stay-booking/internal/model"
)

// ReviewStore is the persistence surface the review core needs.
// *repository.ReviewRepo satisfies it.
type ReviewStore interface {
	Create(ctx context.Context, rev *model.Review) error
	GetByID(ctx context.Context, id uint64) (*model.Review, error)
	Update(ctx context.Context, rev *model.Review) error
	Delete(ctx context.Context, id uint64) error
	ListByListing(ctx context.Context, listingID uint64) ([]model.Review, error)
	ExistsForAuthor(ctx context.Context, listingID, authorID uint64) (bool, error)
}

// ReviewService implements review CRUD plus the rating aggregate: any
// mutation triggers a full rescan of the listing's reviews and writes
// the rounded mean back onto the listing.  There is no incremental
// running sum, so the aggregate stays exact under any edit history.
type ReviewService struct {
	listings ListingStore
	reviews  ReviewStore
	locks    *KeyedMutex
}

// NewReviewService constructs a ReviewService.  The KeyedMutex must be
// the same instance the booking service uses.
func NewReviewService(listings ListingStore, reviews ReviewStore, locks *KeyedMutex) *ReviewService {
	if listings == nil || reviews == nil || locks == nil {
		panic("nil dependency passed to NewReviewService")
	}
	return &ReviewService{listings: listings, reviews: reviews, locks: locks}
}

func validateReviewFields(rating uint8, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if len(strings.TrimSpace(comment)) < 3 {
		return ErrCommentTooShort
	}
	return nil
}

// Create stores a review for a listing.  Each author may review a
// listing once; the listing's aggregate rating is recomputed before
// returning.
func (s *ReviewService) Create(ctx context.Context, authorID, listingID uint64, rating uint8, comment string) (*model.Review, error) {
	if err := validateReviewFields(rating, comment); err != nil {
		return nil, err
	}
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(listingID)
	defer unlock()

	exists, err := s.reviews.ExistsForAuthor(ctx, listingID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}
	rev := &model.Review{
		ListingID: listingID,
		AuthorID:  authorID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviews.Create(ctx, rev); err != nil {
		return nil, err
	}
	if err := s.recomputeAggregate(ctx, listingID); err != nil {
		return nil, err
	}
	return rev, nil
}

// UpdateReviewInput carries the optional fields of a review edit.  A
// nil field keeps the stored value.
type UpdateReviewInput struct {
	Rating  *uint8
	Comment *string
}

// Update edits a review's rating and/or comment.  Only the author may
// edit; the aggregate is recomputed afterwards.
func (s *ReviewService) Update(ctx context.Context, reviewID, callerID uint64, in UpdateReviewInput) (*model.Review, error) {
	rev, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev.AuthorID != callerID {
		return nil, ErrForbidden
	}
	if in.Rating != nil {
		rev.Rating = *in.Rating
	}
	if in.Comment != nil {
		rev.Comment = *in.Comment
	}
	if err := validateReviewFields(rev.Rating, rev.Comment); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(rev.ListingID)
	defer unlock()

	if err := s.reviews.Update(ctx, rev); err != nil {
		return nil, err
	}
	if err := s.recomputeAggregate(ctx, rev.ListingID); err != nil {
		return nil, err
	}
	return rev, nil
}

// Delete removes a review.  Only the author may delete; the aggregate
// is recomputed and resets to 0 when the last review goes.
func (s *ReviewService) Delete(ctx context.Context, reviewID, callerID uint64) error {
	rev, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rev.AuthorID != callerID {
		return ErrForbidden
	}

	unlock := s.locks.Lock(rev.ListingID)
	defer unlock()

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	return s.recomputeAggregate(ctx, rev.ListingID)
}

// ListForListing returns a listing's reviews, newest first.
func (s *ReviewService) ListForListing(ctx context.Context, listingID uint64) ([]model.Review, error) {
	return s.reviews.ListByListing(ctx, listingID)
}

// recomputeAggregate rereads every review for the listing, takes the
// arithmetic mean of the ratings rounded to one decimal place, and
// writes it onto the listing.  Zero reviews reset the aggregate to 0.
// Callers hold the listing's lock.
func (s *ReviewService) recomputeAggregate(ctx context.Context, listingID uint64) error {
	reviews, err := s.reviews.ListByListing(ctx, listingID)
	if err != nil {
		return err
	}
	return s.listings.UpdateRating(ctx, listingID, meanRating(reviews))
}

// meanRating computes the 1-decimal mean of the review ratings, 0 for
// an empty set.
func meanRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += float64(r.Rating)
	}
	return math.Round(sum/float64(len(reviews))*10) / 10
}
