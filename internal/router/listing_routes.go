package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stay-booking/internal/handler"
	"github.com/iliyamo/stay-booking/internal/middleware"
)

// RegisterListings wires listing browse, CRUD, the like toggle and
// favorites.  Browse endpoints are public; cacheMW (may be nil) wraps
// the two hot reads.
func RegisterListings(e *echo.Echo, l *handler.ListingHandler, f *handler.FavoriteHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	search := l.Search
	get := l.Get
	if cacheMW != nil {
		search = cacheMW(l.Search)
		get = cacheMW(l.Get)
	}
	e.GET("/api/listings", search)

	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	// Echo matches the static /listings/my segment before /listings/:id.
	auth.GET("/listings/my", l.ListMine)
	e.GET("/api/listings/:id", get)
	auth.POST("/listings", l.Create)
	auth.PUT("/listings/:id", l.Update)
	auth.DELETE("/listings/:id", l.Delete)
	auth.POST("/listings/:id/like", l.ToggleLike)

	auth.GET("/favorites", f.List)
	auth.POST("/favorites/:listingId", f.Add)
	auth.DELETE("/favorites/:listingId", f.Remove)
}
