package handler

// bookings.go serves the confirmation page and booking history.  Both
// routes are scoped to the authenticated user; asking for someone
// else's booking reads as not found.

import (
    "fmt"
    "net/http"
    "net/url"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ticket-booking/internal/repository"
)

// qrBaseURL renders the booking number as a scannable code on the
// confirmation page.
const qrBaseURL = "https://api.qrserver.com/v1/create-qr-code/"

// BookingHandler serves booking detail and history endpoints.
type BookingHandler struct {
    Bookings *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *repository.BookingRepo) *BookingHandler {
    if bookings == nil {
        panic("nil repository passed to NewBookingHandler")
    }
    return &BookingHandler{Bookings: bookings}
}

func qrCodeURL(bookingNumber string) string {
    return fmt.Sprintf("%s?size=200x200&data=%s", qrBaseURL, url.QueryEscape(bookingNumber))
}

// GetBooking returns one of the caller's bookings with its seats and a QR
// code URL for the booking number.
func (h *BookingHandler) GetBooking(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    det, err := h.Bookings.GetDetailForUser(c.Request().Context(), id, uid)
    if err != nil {
        if err == repository.ErrBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "booking": det,
        "qr_url":  qrCodeURL(det.BookingNumber),
    })
}

// ListBookings returns the caller's bookings split into upcoming and past.
// Cancelled bookings always land in past even when the show has not
// started yet.
func (h *BookingHandler) ListBookings(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    details, err := h.Bookings.ListByUser(c.Request().Context(), uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    upcoming, past := repository.PartitionByTime(details, time.Now().UTC())
    return c.JSON(http.StatusOK, echo.Map{
        "upcoming": upcoming,
        "past":     past,
    })
}
