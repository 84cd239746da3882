package handler // handler defines http handlers

import (
    "context" // context propagates cancellation to the data layer
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/ticket-booking/internal/booking"
    "github.com/iliyamo/ticket-booking/internal/model"
)

// Seams over the repository and selection layers used by the seat-map and
// selection handlers.  The concrete repositories and the Redis-backed
// selection store satisfy them; tests substitute mocks so the seat picker
// flow can be exercised without a database.

type scheduleSource interface {
    GetScheduleByID(ctx context.Context, id uint64) (*model.Schedule, error)
}

type seatSource interface {
    ListActiveByVenue(ctx context.Context, venueID uint64) ([]model.SeatLayout, error)
    BookedSeatIDs(ctx context.Context, scheduleID uint64) (map[uint64]struct{}, error)
    GetByIDs(ctx context.Context, venueID uint64, ids []uint64) ([]model.SeatLayout, error)
}

type selectionStore interface {
    Get(ctx context.Context, userID uint64) (*booking.Selection, error)
    Save(ctx context.Context, userID uint64, sel *booking.Selection) error
}

type offerSource interface {
    GetActiveByCode(ctx context.Context, code string) (*model.Offer, error)
}

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// JWTAuth stores the raw claim value, so the type depends on how the token
// was decoded.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric :id style route parameter.
func pathID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}
