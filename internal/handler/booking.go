package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stay-booking/internal/model"
	"github.com/iliyamo/stay-booking/internal/queue"
	"github.com/iliyamo/stay-booking/internal/repository"
	"github.com/iliyamo/stay-booking/internal/service"
)

// dateLayout is the wire format for stay dates.
const dateLayout = "2006-01-02"

// BookingHandler exposes booking creation, cancellation, listing and
// the availability check.  All arbitration lives in the service; the
// handler only binds, parses dates and maps errors to status codes.
type BookingHandler struct {
	Svc      *service.BookingService
	Listings *repository.ListingRepo
}

func NewBookingHandler(svc *service.BookingService, listings *repository.ListingRepo) *BookingHandler {
	if svc == nil || listings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc, Listings: listings}
}

type createBookingReq struct {
	ListingID   uint64 `json:"listing_id" validate:"required"`
	CheckIn     string `json:"check_in" validate:"required"`
	CheckOut    string `json:"check_out" validate:"required"`
	GuestsCount uint32 `json:"guests_count"`
	Message     string `json:"message"`
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	guestID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing_id, check_in and check_out are required"})
	}
	stay, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}

	b, err := h.Svc.Create(c.Request().Context(), guestID, service.CreateBookingInput{
		ListingID:   req.ListingID,
		Stay:        stay,
		GuestsCount: req.GuestsCount,
		Message:     strings.TrimSpace(req.Message),
	})
	if err != nil {
		switch err {
		case repository.ErrListingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case model.ErrInvalidRange:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case service.ErrStayTooLong:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case service.ErrGuestsExceeded:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case service.ErrDateConflict:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	go h.publishConfirmed(b)

	return c.JSON(http.StatusCreated, bookingJSON(b))
}

// publishConfirmed emits the booking.confirmed event.  Publishing is
// best-effort: a broker outage never fails the booking.
func (h *BookingHandler) publishConfirmed(b *model.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	title := ""
	if l, err := h.Listings.GetByID(ctx, b.ListingID); err == nil {
		title = l.Title
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:    b.ID,
		ListingID:    b.ListingID,
		ListingTitle: title,
		GuestID:      b.GuestID,
		CheckIn:      b.Stay.CheckIn.Format(dateLayout),
		CheckOut:     b.Stay.CheckOut.Format(dateLayout),
		Nights:       b.Nights,
		TotalCents:   b.TotalCents,
		ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("booking %d: publish confirmed event failed: %v", b.ID, err)
	}
}

// ListMine handles GET /api/bookings/my.
func (h *BookingHandler) ListMine(c echo.Context) error {
	guestID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Svc.ListForGuest(c.Request().Context(), guestID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Cancel handles DELETE /api/bookings/:id.  Only the booking's guest
// may cancel; the freed dates open up immediately.
func (h *BookingHandler) Cancel(c echo.Context) error {
	guestID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Svc.Cancel(c.Request().Context(), id, guestID); err != nil {
		switch err {
		case repository.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "only the guest may cancel this booking"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Availability handles GET /api/bookings/:id/availability, where :id
// is a listing id, with start and end query parameters.  It is a pure
// read and reserves nothing: the answer may be stale by the time a
// booking is attempted.
func (h *BookingHandler) Availability(c echo.Context) error {
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	stay, err := parseStay(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start and end must be YYYY-MM-DD"})
	}
	if _, err := h.Listings.GetByID(c.Request().Context(), listingID); err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	available, err := h.Svc.CheckAvailability(c.Request().Context(), listingID, stay)
	if err != nil {
		if err == model.ErrInvalidRange {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"available": available})
}

// parseStay builds a DateRange from two YYYY-MM-DD strings.
func parseStay(in, out string) (model.DateRange, error) {
	ci, err := time.Parse(dateLayout, strings.TrimSpace(in))
	if err != nil {
		return model.DateRange{}, err
	}
	co, err := time.Parse(dateLayout, strings.TrimSpace(out))
	if err != nil {
		return model.DateRange{}, err
	}
	return model.DateRange{CheckIn: ci, CheckOut: co}, nil
}

// bookingJSON flattens the stay range back into check_in/check_out so
// responses mirror the request shape.
func bookingJSON(b *model.Booking) map[string]any {
	return map[string]any{
		"id":           b.ID,
		"listing_id":   b.ListingID,
		"guest_id":     b.GuestID,
		"check_in":     b.Stay.CheckIn.Format(dateLayout),
		"check_out":    b.Stay.CheckOut.Format(dateLayout),
		"guests_count": b.GuestsCount,
		"message":      b.Message,
		"nights":       b.Nights,
		"total_cents":  b.TotalCents,
		"status":       b.Status,
		"created_at":   b.CreatedAt,
		"updated_at":   b.UpdatedAt,
	}
}
