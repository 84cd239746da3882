package handler

// seat_map.go renders the seat picker for a schedule: the venue's static
// layout merged with the schedule's sold seats and, when the caller is
// authenticated, their own in-progress selection.  Seats are grouped by
// section and row the way the picker displays them.  A venue without a
// published layout is an explicit empty state, not an error.

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ticket-booking/internal/pricing"
    "github.com/iliyamo/ticket-booking/internal/repository"
)

// SeatMapHandler serves the per-schedule seat availability view.
type SeatMapHandler struct {
    Catalog    scheduleSource
    Seats      seatSource
    Selections selectionStore
}

// NewSeatMapHandler constructs a SeatMapHandler.  Selections may be nil
// when no Redis client is available; seats are then never marked selected.
func NewSeatMapHandler(catalog scheduleSource, seats seatSource, selections selectionStore) *SeatMapHandler {
    if catalog == nil || seats == nil {
        panic("nil repository passed to NewSeatMapHandler")
    }
    return &SeatMapHandler{Catalog: catalog, Seats: seats, Selections: selections}
}

// Seat statuses rendered on the map.
const (
    seatAvailable = "available"
    seatTaken     = "taken"
    seatSelected  = "selected"
)

// seatView is one seat on the map with its resolved price and status.
type seatView struct {
    ID         uint64 `json:"id"`
    SeatNumber uint32 `json:"seat_number"`
    SeatType   string `json:"seat_type"`
    PriceCents uint32 `json:"price_cents"`
    Status     string `json:"status"`
}

// rowView is one row of seats within a section.
type rowView struct {
    Name  string     `json:"name"`
    Seats []seatView `json:"seats"`
}

// sectionView is one named block of rows.
type sectionView struct {
    Name string    `json:"name"`
    Rows []rowView `json:"rows"`
}

// GetSeatMap returns the seat map of a schedule grouped section → row →
// seat.  When the venue has no active seats, has_layout is false and the
// sections array is empty so clients can show a dedicated "no seat layout
// available" state.
func (h *SeatMapHandler) GetSeatMap(c echo.Context) error {
    ctx := c.Request().Context()
    scheduleID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    schedule, err := h.Catalog.GetScheduleByID(ctx, scheduleID)
    if err != nil {
        if err == repository.ErrScheduleNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    layout, err := h.Seats.ListActiveByVenue(ctx, schedule.VenueID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if len(layout) == 0 {
        return c.JSON(http.StatusOK, echo.Map{
            "schedule_id": schedule.ID,
            "has_layout":  false,
            "sections":    []sectionView{},
        })
    }

    taken, err := h.Seats.BookedSeatIDs(ctx, scheduleID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    // Mark the caller's own picks when a selection exists for this schedule.
    selected := map[uint64]struct{}{}
    if h.Selections != nil {
        if uid, err := getUserID(c); err == nil {
            if sel, err := h.Selections.Get(ctx, uid); err == nil && sel.ScheduleID == scheduleID {
                for _, s := range sel.Seats {
                    selected[s.SeatID] = struct{}{}
                }
            }
        }
    }

    // The layout arrives ordered by section, row and seat number, so the
    // grouping is a single fold over adjacent names.
    sections := make([]sectionView, 0)
    for _, s := range layout {
        status := seatAvailable
        if _, ok := taken[s.ID]; ok {
            status = seatTaken
        } else if _, ok := selected[s.ID]; ok {
            status = seatSelected
        }
        view := seatView{
            ID:         s.ID,
            SeatNumber: s.SeatNumber,
            SeatType:   s.SeatType,
            PriceCents: pricing.SeatPriceCents(schedule, &s),
            Status:     status,
        }
        if len(sections) == 0 || sections[len(sections)-1].Name != s.SectionName {
            sections = append(sections, sectionView{Name: s.SectionName, Rows: []rowView{}})
        }
        sec := &sections[len(sections)-1]
        if len(sec.Rows) == 0 || sec.Rows[len(sec.Rows)-1].Name != s.RowName {
            sec.Rows = append(sec.Rows, rowView{Name: s.RowName, Seats: []seatView{}})
        }
        row := &sec.Rows[len(sec.Rows)-1]
        row.Seats = append(row.Seats, view)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "schedule_id":     schedule.ID,
        "has_layout":      true,
        "available_seats": schedule.AvailableSeats,
        "sections":        sections,
    })
}
