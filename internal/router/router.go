package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/ticket-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/ticket-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Routes that do not require an existing session (register, login,
	// refresh).  Each handler generates or exchanges tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access reuses it.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a refresh token in the body or a bearer token
	// and does not require the JWT middleware.
	g.POST("/logout", a.Logout)

	// Protected group: every handler registered here runs JWTAuth first.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("USER", "ADMIN"))
	auth.GET("/me", a.Me)

	// Top-level alias so clients can call either /v1/auth/logout or
	// /v1/logout with a refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterCatalog registers the unauthenticated browse endpoints: categories,
// events, schedules, seat maps and promoted offers.  The optional cache
// middleware fronts the purely static routes; the seat map is deliberately
// left uncached because availability and the caller's own selection change
// between requests.
func RegisterCatalog(e *echo.Echo, jwtSecret string, cat *handler.CatalogHandler, seats *handler.SeatMapHandler, offers *handler.OfferHandler, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/v1/categories", cat.GetCategories, cache)
		e.GET("/v1/events", cat.GetEvents, cache)
		e.GET("/v1/events/:id", cat.GetEvent, cache)
		e.GET("/v1/events/:id/schedules", cat.GetEventSchedules, cache)
		e.GET("/v1/venues/:id", cat.GetVenue, cache)
		e.GET("/v1/offers", offers.GetOffers, cache)
	} else {
		e.GET("/v1/categories", cat.GetCategories)
		e.GET("/v1/events", cat.GetEvents)
		e.GET("/v1/events/:id", cat.GetEvent)
		e.GET("/v1/events/:id/schedules", cat.GetEventSchedules)
		e.GET("/v1/venues/:id", cat.GetVenue)
		e.GET("/v1/offers", offers.GetOffers)
	}
	// Optional auth lets the seat map mark the caller's own selected seats
	// while staying reachable for guests.
	e.GET("/v1/schedules/:id/seats", seats.GetSeatMap, middleware.OptionalJWT(jwtSecret))
}

// RegisterBookingFlow registers the authenticated booking endpoints:
// selection management, checkout, booking history and notifications.
func RegisterBookingFlow(e *echo.Echo, jwtSecret string,
	sel *handler.SelectionHandler, co *handler.CheckoutHandler,
	bk *handler.BookingHandler, nt *handler.NotificationHandler) {

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("USER", "ADMIN"))

	// Selection: one in-progress booking per user, kept in Redis.
	g.GET("/selection", sel.Get)
	g.PUT("/selection/schedule", sel.SelectSchedule)
	g.POST("/selection/seats/:seatID", sel.ToggleSeat)
	g.POST("/selection/offer", sel.ApplyOffer)
	g.DELETE("/selection/offer", sel.RemoveOffer)

	// Checkout blocks for the simulated processing time and returns the
	// confirmed booking.
	g.POST("/checkout", co.Checkout)

	// Confirmation and history.
	g.GET("/bookings", bk.ListBookings)
	g.GET("/bookings/:id", bk.GetBooking)

	// In-app notifications.
	g.GET("/notifications", nt.GetNotifications)
	g.POST("/notifications/:id/read", nt.MarkNotificationRead)
}
