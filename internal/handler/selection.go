package handler

// selection.go exposes the authenticated selection endpoints: choosing a
// schedule, toggling seats and applying offer codes.  The selection itself
// lives in Redis keyed by user; every endpoint loads it, applies one
// transition and saves it back.

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ticket-booking/internal/booking"
    "github.com/iliyamo/ticket-booking/internal/pricing"
    "github.com/iliyamo/ticket-booking/internal/repository"
)

// SelectionHandler serves the in-progress booking selection.
type SelectionHandler struct {
    Store   selectionStore
    Catalog scheduleSource
    Seats   seatSource
    Offers  offerSource
}

// NewSelectionHandler constructs a SelectionHandler and panics on nil deps.
func NewSelectionHandler(store selectionStore, catalog scheduleSource, seats seatSource, offers offerSource) *SelectionHandler {
    if store == nil || catalog == nil || seats == nil || offers == nil {
        panic("nil dependency passed to NewSelectionHandler")
    }
    return &SelectionHandler{Store: store, Catalog: catalog, Seats: seats, Offers: offers}
}

// selectionResp is the selection with its derived totals.
type selectionResp struct {
    EventID       uint64                 `json:"event_id"`
    ScheduleID    uint64                 `json:"schedule_id"`
    Seats         []booking.SelectedSeat `json:"seats"`
    OfferCode     string                 `json:"offer_code,omitempty"`
    TotalCents    uint32                 `json:"total_cents"`
    DiscountCents uint32                 `json:"discount_cents"`
    FinalCents    uint32                 `json:"final_cents"`
}

func toSelectionResp(sel *booking.Selection) selectionResp {
    seats := sel.Seats
    if seats == nil {
        seats = []booking.SelectedSeat{}
    }
    return selectionResp{
        EventID:       sel.EventID,
        ScheduleID:    sel.ScheduleID,
        Seats:         seats,
        OfferCode:     sel.OfferCode,
        TotalCents:    sel.TotalCents(),
        DiscountCents: sel.DiscountCents,
        FinalCents:    sel.FinalCents(),
    }
}

// Get returns the caller's current selection.  An expired or missing
// selection reads back empty.
func (h *SelectionHandler) Get(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    sel, err := h.Store.Get(c.Request().Context(), uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
    }
    return c.JSON(http.StatusOK, toSelectionResp(sel))
}

// SelectSchedule sets the selection's schedule.  Switching to a different
// schedule clears any picked seats and applied offer.
func (h *SelectionHandler) SelectSchedule(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        ScheduleID uint64 `json:"schedule_id"`
    }
    if err := c.Bind(&body); err != nil || body.ScheduleID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule_id required"})
    }
    ctx := c.Request().Context()
    schedule, err := h.Catalog.GetScheduleByID(ctx, body.ScheduleID)
    if err != nil {
        if err == repository.ErrScheduleNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    sel, err := h.Store.Get(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
    }
    sel.SelectSchedule(schedule.EventID, schedule.ID)
    if err := h.Store.Save(ctx, uid, sel); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
    }
    return c.JSON(http.StatusOK, toSelectionResp(sel))
}

// ToggleSeat adds or removes one seat from the selection.  The seat must
// belong to the selected schedule's venue, be active and not already sold.
func (h *SelectionHandler) ToggleSeat(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    seatID, err := pathID(c, "seatID")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
    }
    ctx := c.Request().Context()
    sel, err := h.Store.Get(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
    }
    if sel.ScheduleID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrNoSchedule.Error()})
    }
    schedule, err := h.Catalog.GetScheduleByID(ctx, sel.ScheduleID)
    if err != nil {
        if err == repository.ErrScheduleNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    // Removing a seat needs no availability check.
    if sel.HasSeat(seatID) {
        if _, err := sel.ToggleSeat(booking.SelectedSeat{SeatID: seatID}); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        sel.ClearOffer()
        if err := h.Store.Save(ctx, uid, sel); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
        }
        return c.JSON(http.StatusOK, toSelectionResp(sel))
    }

    rows, err := h.Seats.GetByIDs(ctx, schedule.VenueID, []uint64{seatID})
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if len(rows) == 0 {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
    }
    taken, err := h.Seats.BookedSeatIDs(ctx, schedule.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if _, sold := taken[seatID]; sold {
        return c.JSON(http.StatusConflict, echo.Map{"error": "seat already booked"})
    }

    seat := rows[0]
    added, err := sel.ToggleSeat(booking.SelectedSeat{
        SeatID:      seat.ID,
        SectionName: seat.SectionName,
        RowName:     seat.RowName,
        SeatNumber:  seat.SeatNumber,
        SeatType:    seat.SeatType,
        PriceCents:  pricing.SeatPriceCents(schedule, &seat),
    })
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    // Any seat change invalidates a previously computed discount.
    sel.ClearOffer()
    if err := h.Store.Save(ctx, uid, sel); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
    }
    resp := echo.Map{"added": added, "selection": toSelectionResp(sel)}
    return c.JSON(http.StatusOK, resp)
}

// ApplyOffer validates an offer code against the current selection total
// and records the computed discount.
func (h *SelectionHandler) ApplyOffer(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        Code string `json:"code"`
    }
    if err := c.Bind(&body); err != nil || body.Code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
    }
    ctx := c.Request().Context()
    sel, err := h.Store.Get(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
    }
    if len(sel.Seats) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrNoSeats.Error()})
    }
    offer, err := h.Offers.GetActiveByCode(ctx, body.Code)
    if err != nil {
        if err == repository.ErrOfferNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "invalid offer code"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    discount, err := pricing.EvaluateOffer(offer, sel.TotalCents(), time.Now().UTC())
    if err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    }
    if err := sel.ApplyOffer(offer.Code, discount); err != nil {
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    }
    if err := h.Store.Save(ctx, uid, sel); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
    }
    return c.JSON(http.StatusOK, toSelectionResp(sel))
}

// RemoveOffer clears the applied offer.
func (h *SelectionHandler) RemoveOffer(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()
    sel, err := h.Store.Get(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
    }
    if sel.OfferCode == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrNoOfferApplied.Error()})
    }
    sel.ClearOffer()
    if err := h.Store.Save(ctx, uid, sel); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
    }
    return c.JSON(http.StatusOK, toSelectionResp(sel))
}
