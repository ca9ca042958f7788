// Package router maps URL paths to handlers and attaches the JWT
// middleware to protected groups.  Public reads (search, listing
// detail, reviews, availability) need no token; every write and every
// "my" view does.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stay-booking/internal/handler"
	"github.com/iliyamo/stay-booking/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers session endpoints.  Unauthenticated
// operations live under /api/auth; /api/me requires a valid access
// token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout inspects the Authorization header itself so it stays off
	// the protected group; an expired access token can still log out
	// with a refresh token in the body.
	g.POST("/logout", a.Logout)

	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
