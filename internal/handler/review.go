package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stay-booking/internal/repository"
	"github.com/iliyamo/stay-booking/internal/service"
)

// ReviewHandler exposes review creation, editing, deletion and the
// per-listing review list.  Rating rules and the aggregate rewrite
// live in the service.
type ReviewHandler struct {
	Svc *service.ReviewService
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	if svc == nil {
		panic("nil service passed to NewReviewHandler")
	}
	return &ReviewHandler{Svc: svc}
}

type createReviewReq struct {
	ListingID uint64 `json:"listing_id" validate:"required"`
	Rating    uint8  `json:"rating" validate:"required"`
	Comment   string `json:"comment" validate:"required"`
}

type updateReviewReq struct {
	Rating  *uint8  `json:"rating"`
	Comment *string `json:"comment"`
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing_id, rating and comment are required"})
	}

	rev, err := h.Svc.Create(c.Request().Context(), authorID, req.ListingID, req.Rating, strings.TrimSpace(req.Comment))
	if err != nil {
		switch err {
		case repository.ErrListingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case service.ErrInvalidRating, service.ErrCommentTooShort, service.ErrDuplicateReview:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create review"})
	}
	return c.JSON(http.StatusCreated, rev)
}

// Update handles PUT /api/reviews/:id.  Author only; absent fields
// keep their value.
func (h *ReviewHandler) Update(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		req.Comment = &trimmed
	}

	rev, err := h.Svc.Update(c.Request().Context(), id, authorID, service.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		switch err {
		case repository.ErrReviewNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "only the author may edit this review"})
		case service.ErrInvalidRating, service.ErrCommentTooShort:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, rev)
}

// Delete handles DELETE /api/reviews/:id.  Author only.
func (h *ReviewHandler) Delete(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id, authorID); err != nil {
		switch err {
		case repository.ErrReviewNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "only the author may delete this review"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListForListing handles GET /api/reviews/:id, public.  The :id is a
// listing id.
func (h *ReviewHandler) ListForListing(c echo.Context) error {
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	items, err := h.Svc.ListForListing(c.Request().Context(), listingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}
