package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stay-booking/internal/handler"
	"github.com/iliyamo/stay-booking/internal/middleware"
)

// RegisterBookings wires the booking lifecycle and the availability
// check.  Availability is a public read; everything else requires a
// token.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	// The :id here is a listing id.  One param name per position keeps
	// Echo's router from mixing it up with DELETE /bookings/:id.
	e.GET("/api/bookings/:id/availability", b.Availability)

	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	auth.POST("/bookings", b.Create)
	auth.GET("/bookings/my", b.ListMine)
	auth.DELETE("/bookings/:id", b.Cancel)
}

// RegisterReviews wires review writes and the public per-listing list.
// GET /api/reviews/:id takes a listing id and returns that listing's
// reviews; the write routes take a review id.
func RegisterReviews(e *echo.Echo, r *handler.ReviewHandler, jwtSecret string) {
	e.GET("/api/reviews/:id", r.ListForListing)

	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	auth.POST("/reviews", r.Create)
	auth.PUT("/reviews/:id", r.Update)
	auth.DELETE("/reviews/:id", r.Delete)
}

// RegisterUpload wires the media upload proxy, token required.
func RegisterUpload(e *echo.Echo, u *handler.UploadHandler, jwtSecret string) {
	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	auth.POST("/upload", u.Upload)
}
