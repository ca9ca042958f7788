package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stay-booking/internal/repository"
)

// FavoriteHandler lets a user keep a private list of saved listings.
// Unlike likes, favorites are visible only to their owner.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
	Listings  *repository.ListingRepo
}

func NewFavoriteHandler(f *repository.FavoriteRepo, l *repository.ListingRepo) *FavoriteHandler {
	if f == nil || l == nil {
		panic("nil repository passed to NewFavoriteHandler")
	}
	return &FavoriteHandler{Favorites: f, Listings: l}
}

// Add handles POST /api/favorites/:listingId.  Saving an already
// saved listing is a no-op.
func (h *FavoriteHandler) Add(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listingID, err := pathID(c, "listingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	if _, err := h.Listings.GetByID(c.Request().Context(), listingID); err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Favorites.Add(c.Request().Context(), uid, listingID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"listing_id": listingID, "saved": true})
}

// Remove handles DELETE /api/favorites/:listingId.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listingID, err := pathID(c, "listingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	if err := h.Favorites.Remove(c.Request().Context(), uid, listingID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /api/favorites and returns the saved listings in
// save order, newest first.
func (h *FavoriteHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Favorites.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}
