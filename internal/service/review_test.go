package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stay-booking/internal/model"
	"github.com/iliyamo/stay-booking/internal/repository"
)

func newReviewService(listings *memListings, reviews *memReviews) *ReviewService {
	return NewReviewService(listings, reviews, NewKeyedMutex())
}

func TestCreateReviewValidation(t *testing.T) {
	svc := newReviewService(newMemListings(testListing()), newMemReviews())
	ctx := context.Background()

	_, err := svc.Create(ctx, 2, 1, 0, "fine stay")
	require.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(ctx, 2, 1, 6, "fine stay")
	require.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(ctx, 2, 1, 4, "  ab ")
	require.ErrorIs(t, err, ErrCommentTooShort)

	_, err = svc.Create(ctx, 2, 42, 4, "fine stay")
	require.ErrorIs(t, err, repository.ErrListingNotFound)
}

func TestCreateReviewDuplicate(t *testing.T) {
	svc := newReviewService(newMemListings(testListing()), newMemReviews())
	ctx := context.Background()

	_, err := svc.Create(ctx, 2, 1, 4, "fine stay")
	require.NoError(t, err)

	_, err = svc.Create(ctx, 2, 1, 5, "changed my mind")
	require.ErrorIs(t, err, ErrDuplicateReview)

	// a different author may still review
	_, err = svc.Create(ctx, 3, 1, 5, "great host")
	require.NoError(t, err)
}

func TestRatingAggregate(t *testing.T) {
	listings := newMemListings(testListing())
	svc := newReviewService(listings, newMemReviews())
	ctx := context.Background()

	_, err := svc.Create(ctx, 2, 1, 4, "fine stay")
	require.NoError(t, err)
	require.Equal(t, 4.0, listings.rating(1))

	_, err = svc.Create(ctx, 3, 1, 5, "great host")
	require.NoError(t, err)
	require.Equal(t, 4.5, listings.rating(1))

	// mean of 4, 5, 2 is 3.666..., rounded to one decimal
	_, err = svc.Create(ctx, 4, 1, 2, "noisy street")
	require.NoError(t, err)
	require.Equal(t, 3.7, listings.rating(1))
}

func TestRatingAggregateOnUpdateAndDelete(t *testing.T) {
	listings := newMemListings(testListing())
	svc := newReviewService(listings, newMemReviews())
	ctx := context.Background()

	r1, err := svc.Create(ctx, 2, 1, 4, "fine stay")
	require.NoError(t, err)
	r2, err := svc.Create(ctx, 3, 1, 2, "noisy street")
	require.NoError(t, err)
	require.Equal(t, 3.0, listings.rating(1))

	five := uint8(5)
	_, err = svc.Update(ctx, r2.ID, 3, UpdateReviewInput{Rating: &five})
	require.NoError(t, err)
	require.Equal(t, 4.5, listings.rating(1))

	require.NoError(t, svc.Delete(ctx, r2.ID, 3))
	require.Equal(t, 4.0, listings.rating(1))

	// the last deletion resets the aggregate to zero
	require.NoError(t, svc.Delete(ctx, r1.ID, 2))
	require.Equal(t, 0.0, listings.rating(1))
}

func TestUpdateReviewRules(t *testing.T) {
	svc := newReviewService(newMemListings(testListing()), newMemReviews())
	ctx := context.Background()

	rev, err := svc.Create(ctx, 2, 1, 4, "fine stay")
	require.NoError(t, err)

	// author only
	five := uint8(5)
	_, err = svc.Update(ctx, rev.ID, 99, UpdateReviewInput{Rating: &five})
	require.ErrorIs(t, err, ErrForbidden)

	// partial update keeps the stored comment
	got, err := svc.Update(ctx, rev.ID, 2, UpdateReviewInput{Rating: &five})
	require.NoError(t, err)
	require.Equal(t, uint8(5), got.Rating)
	require.Equal(t, "fine stay", got.Comment)

	// edited values are still validated
	short := "ab"
	_, err = svc.Update(ctx, rev.ID, 2, UpdateReviewInput{Comment: &short})
	require.ErrorIs(t, err, ErrCommentTooShort)

	_, err = svc.Update(ctx, 42, 2, UpdateReviewInput{Rating: &five})
	require.ErrorIs(t, err, repository.ErrReviewNotFound)
}

func TestDeleteReviewRules(t *testing.T) {
	svc := newReviewService(newMemListings(testListing()), newMemReviews())
	ctx := context.Background()

	rev, err := svc.Create(ctx, 2, 1, 4, "fine stay")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, rev.ID, 99), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, rev.ID, 2))
	require.ErrorIs(t, svc.Delete(ctx, rev.ID, 2), repository.ErrReviewNotFound)
}

func TestListForListing(t *testing.T) {
	svc := newReviewService(newMemListings(testListing()), newMemReviews())
	ctx := context.Background()

	_, err := svc.Create(ctx, 2, 1, 4, "fine stay")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 3, 1, 5, "great host")
	require.NoError(t, err)

	items, err := svc.ListForListing(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestMeanRatingRounding(t *testing.T) {
	cases := []struct {
		ratings []uint8
		want    float64
	}{
		{nil, 0},
		{[]uint8{5}, 5},
		{[]uint8{4, 5}, 4.5},
		{[]uint8{4, 5, 2}, 3.7},
		{[]uint8{2, 3, 3}, 2.7},
		{[]uint8{1, 1, 1, 1, 1}, 1},
	}
	for _, tc := range cases {
		var revs []model.Review
		for _, r := range tc.ratings {
			revs = append(revs, model.Review{Rating: r})
		}
		require.Equal(t, tc.want, meanRating(revs), "ratings %v", tc.ratings)
	}
}
