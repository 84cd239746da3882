package handler

// checkout.go runs the whole payment step: validate the method-specific
// form fields, run the simulated gateway to completion, then commit the
// booking transaction.  The simulated gateway always succeeds; real
// conflicts (seat sold meanwhile, schedule sold out, offer exhausted)
// surface from the commit itself.

import (
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/ticket-booking/internal/booking"
    "github.com/iliyamo/ticket-booking/internal/config"
    "github.com/iliyamo/ticket-booking/internal/payment"
    "github.com/iliyamo/ticket-booking/internal/repository"
)

// CheckoutHandler drives the payment + commit flow.
type CheckoutHandler struct {
    Cfg       config.Config
    Store     *booking.SelectionStore
    Catalog   *repository.CatalogRepo
    Committer *booking.Committer
    log       *logrus.Entry
}

// NewCheckoutHandler constructs a CheckoutHandler and panics on nil deps.
func NewCheckoutHandler(cfg config.Config, store *booking.SelectionStore, catalog *repository.CatalogRepo, committer *booking.Committer) *CheckoutHandler {
    if store == nil || catalog == nil || committer == nil {
        panic("nil dependency passed to NewCheckoutHandler")
    }
    return &CheckoutHandler{
        Cfg:       cfg,
        Store:     store,
        Catalog:   catalog,
        Committer: committer,
        log:       logrus.WithField("component", "checkout-handler"),
    }
}

type checkoutReq struct {
    PaymentMethod string          `json:"payment_method"`
    Details       payment.Details `json:"details"`
}

// Checkout finalizes the caller's selection.  The request blocks for the
// simulated processing time, then returns the confirmed booking with the
// display-only transaction id.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req checkoutReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := payment.ValidateDetails(req.PaymentMethod, req.Details); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx := c.Request().Context()
    sel, err := h.Store.Get(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection store error"})
    }
    if sel.ScheduleID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrNoSchedule.Error()})
    }
    if len(sel.Seats) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrNoSeats.Error()})
    }

    // Re-resolve the event for the title used in notifications and the
    // queue event.  A schedule that disappeared mid-flow aborts before
    // any money movement.
    if _, err := h.Catalog.GetScheduleByID(ctx, sel.ScheduleID); err != nil {
        if err == repository.ErrScheduleNotFound {
            return c.JSON(http.StatusConflict, echo.Map{"error": "schedule no longer available"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    eventTitle := ""
    if det, err := h.Catalog.GetEventByID(ctx, sel.EventID); err == nil {
        eventTitle = det.Event.Title
    }

    // Run the simulated gateway to completion.  Client disconnect cancels
    // ctx and discards the attempt with nothing persisted.
    sim := payment.NewSimulator(h.Cfg.PaymentTick, h.Cfg.PaymentTotal)
    if err := sim.Start(ctx); err != nil {
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    }
    txnID, err := sim.Wait(ctx)
    if err != nil {
        return c.JSON(http.StatusRequestTimeout, echo.Map{"error": "payment cancelled"})
    }

    bk, err := h.Committer.Commit(ctx, booking.CommitInput{
        UserID:        uid,
        EventTitle:    eventTitle,
        PaymentMethod: req.PaymentMethod,
        Selection:     sel,
    })
    if err != nil {
        switch err {
        case repository.ErrSeatTaken:
            return c.JSON(http.StatusConflict, echo.Map{"error": "one or more seats were just booked by someone else"})
        case repository.ErrScheduleSoldOut:
            return c.JSON(http.StatusConflict, echo.Map{"error": "schedule is sold out"})
        case repository.ErrOfferExhausted:
            return c.JSON(http.StatusConflict, echo.Map{"error": "offer usage limit reached"})
        case booking.ErrNoSchedule, booking.ErrNoSeats:
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        h.log.WithError(err).Error("booking commit failed")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "booking_id":     bk.ID,
        "booking_number": bk.BookingNumber,
        "status":         bk.Status,
        "payment_status": bk.PaymentStatus,
        "transaction_id": txnID,
        "total_cents":    bk.TotalCents,
        "discount_cents": bk.DiscountCents,
        "final_cents":    bk.FinalCents,
    })
}
