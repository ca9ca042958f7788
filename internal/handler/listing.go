package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stay-booking/internal/model"
	"github.com/iliyamo/stay-booking/internal/repository"
)

// ListingHandler exposes listing CRUD, search and the like toggle.
type ListingHandler struct {
	Listings *repository.ListingRepo
}

func NewListingHandler(l *repository.ListingRepo) *ListingHandler {
	if l == nil {
		panic("nil repository passed to NewListingHandler")
	}
	return &ListingHandler{Listings: l}
}

type createListingReq struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Description string   `json:"description"`
	Location    string   `json:"location" validate:"required"`
	ImageURL    string   `json:"image"`
	PriceCents  uint32   `json:"price_cents" validate:"required,gt=0"`
	MaxGuests   uint32   `json:"max_guests" validate:"required,gte=1"`
	Type        string   `json:"type" validate:"required,oneof=apartment house tent villa cabin"`
	Amenities   []string `json:"amenities"`
}

// updateListingReq uses pointers so absent fields stay untouched.
type updateListingReq struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	ImageURL    *string   `json:"image"`
	PriceCents  *uint32   `json:"price_cents"`
	MaxGuests   *uint32   `json:"max_guests"`
	Type        *string   `json:"type"`
	Amenities   *[]string `json:"amenities"`
}

// Create handles POST /api/listings.  The authenticated user becomes
// the listing's host.
func (h *ListingHandler) Create(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, location, positive price_cents, max_guests and a known type are required"})
	}

	l := &model.Listing{
		HostID:      hostID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		PriceCents:  req.PriceCents,
		MaxGuests:   req.MaxGuests,
		Type:        req.Type,
		Amenities:   req.Amenities,
	}
	if err := h.Listings.Create(c.Request().Context(), l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create listing"})
	}
	return c.JSON(http.StatusCreated, l)
}

// Get handles GET /api/listings/:id.
func (h *ListingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	l, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, l)
}

// Search handles GET /api/listings with optional query filters:
// location, min_price, max_price, guests, type, amenities (comma
// separated) and sort (price_asc | price_desc).
func (h *ListingHandler) Search(c echo.Context) error {
	f := repository.SearchFilter{
		Location: strings.TrimSpace(c.QueryParam("location")),
		Type:     strings.TrimSpace(c.QueryParam("type")),
		Sort:     strings.TrimSpace(c.QueryParam("sort")),
	}
	if f.Type != "" && !model.ValidListingType(f.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown listing type"})
	}
	var err error
	if f.MinCents, err = queryUint32(c, "min_price"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price"})
	}
	if f.MaxCents, err = queryUint32(c, "max_price"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
	}
	if f.Guests, err = queryUint32(c, "guests"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guests"})
	}
	if raw := strings.TrimSpace(c.QueryParam("amenities")); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				f.Amenities = append(f.Amenities, a)
			}
		}
	}

	items, err := h.Listings.Search(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// ListMine handles GET /api/listings/my and returns the listings
// hosted by the authenticated user.
func (h *ListingHandler) ListMine(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Listings.ListByHost(c.Request().Context(), hostID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Update handles PUT /api/listings/:id.  Only the host may update, and
// only the fields present in the body change.
func (h *ListingHandler) Update(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	l, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if l.HostID != hostID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the host may update this listing"})
	}

	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title cannot be empty"})
		}
		l.Title = t
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Location != nil {
		loc := strings.TrimSpace(*req.Location)
		if loc == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "location cannot be empty"})
		}
		l.Location = loc
	}
	if req.ImageURL != nil {
		l.ImageURL = *req.ImageURL
	}
	if req.PriceCents != nil {
		if *req.PriceCents == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be positive"})
		}
		l.PriceCents = *req.PriceCents
	}
	if req.MaxGuests != nil {
		if *req.MaxGuests == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_guests must be at least 1"})
		}
		l.MaxGuests = *req.MaxGuests
	}
	if req.Type != nil {
		if !model.ValidListingType(*req.Type) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown listing type"})
		}
		l.Type = *req.Type
	}
	if req.Amenities != nil {
		l.Amenities = *req.Amenities
	}

	if err := h.Listings.Update(c.Request().Context(), l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/listings/:id.  Only the host may delete.
func (h *ListingHandler) Delete(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	l, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if l.HostID != hostID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the host may delete this listing"})
	}
	if err := h.Listings.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike handles POST /api/listings/:id/like.  Liking twice
// removes the like.
func (h *ListingHandler) ToggleLike(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Listings.GetByID(c.Request().Context(), id); err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	liked, err := h.Listings.ToggleLike(c.Request().Context(), id, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "like failed"})
	}
	updated, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked, "listing": updated})
}

// queryUint32 parses an optional numeric query parameter; empty means
// zero.
func queryUint32(c echo.Context, name string) (uint32, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
