package booking

import (
    "context"
    "fmt"
    "time"

    "github.com/sirupsen/logrus"

    "github.com/iliyamo/ticket-booking/internal/model"
    "github.com/iliyamo/ticket-booking/internal/queue"
    "github.com/iliyamo/ticket-booking/internal/repository"
)

// Store is the transactional write side of a commit.  Implemented by
// repository.BookingRepo; mocked in tests.
type Store interface {
    Commit(ctx context.Context, p repository.CommitParams) (*model.Booking, error)
}

// Notifier creates in-app notification rows.  Implemented by
// repository.NotificationRepo.
type Notifier interface {
    Create(ctx context.Context, userID uint64, title, message, ntype string, link *string) error
}

// Publisher delivers the booking-confirmed event to the message
// broker.
type Publisher interface {
    PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
}

// Selections clears a user's selection after a successful commit.
type Selections interface {
    Clear(ctx context.Context, userID uint64) error
}

// Committer turns a finished selection into persisted booking rows.
// The database writes happen atomically through Store; everything
// after the commit (notifications, event publish, selection cleanup)
// is best-effort and only logged on failure, because the booking
// already exists and must be reported as confirmed.
type Committer struct {
    store      Store
    notifier   Notifier
    publisher  Publisher
    selections Selections
    log        *logrus.Entry
}

// NewCommitter wires a Committer.  publisher and selections may be
// nil, in which case those steps are skipped.
func NewCommitter(store Store, notifier Notifier, publisher Publisher, selections Selections) *Committer {
    return &Committer{
        store:      store,
        notifier:   notifier,
        publisher:  publisher,
        selections: selections,
        log:        logrus.WithField("component", "booking-committer"),
    }
}

// CommitInput carries the checkout context the handler resolved
// before invoking the committer.
type CommitInput struct {
    UserID        uint64
    EventTitle    string
    PaymentMethod string
    Selection     *Selection
}

// Commit validates the selection's shape, writes the booking
// transaction and fires the post-commit side effects.  The selection
// totals become the persisted amounts, upholding the invariant that
// the booked seat prices sum to total_cents and final_cents is the
// discounted total floored at zero.
func (c *Committer) Commit(ctx context.Context, in CommitInput) (*model.Booking, error) {
    sel := in.Selection
    if sel == nil || sel.ScheduleID == 0 {
        return nil, ErrNoSchedule
    }
    if len(sel.Seats) == 0 {
        return nil, ErrNoSeats
    }

    number, err := NewBookingNumber(time.Now().UTC())
    if err != nil {
        return nil, err
    }

    seats := make([]model.BookedSeat, 0, len(sel.Seats))
    for _, s := range sel.Seats {
        seats = append(seats, model.BookedSeat{
            ScheduleID:  sel.ScheduleID,
            SeatID:      s.SeatID,
            SectionName: s.SectionName,
            RowName:     s.RowName,
            SeatNumber:  s.SeatNumber,
            PriceCents:  s.PriceCents,
        })
    }

    booking, err := c.store.Commit(ctx, repository.CommitParams{
        UserID:        in.UserID,
        EventID:       sel.EventID,
        ScheduleID:    sel.ScheduleID,
        BookingNumber: number,
        TotalCents:    sel.TotalCents(),
        DiscountCents: sel.DiscountCents,
        FinalCents:    sel.FinalCents(),
        PaymentMethod: in.PaymentMethod,
        OfferCode:     sel.OfferCode,
        Seats:         seats,
    })
    if err != nil {
        return nil, err
    }

    c.notify(ctx, booking, in.EventTitle)
    c.publish(ctx, booking, in.EventTitle, sel)

    if c.selections != nil {
        if err := c.selections.Clear(ctx, in.UserID); err != nil {
            c.log.WithError(err).Warn("failed to clear selection after commit")
        }
    }
    return booking, nil
}

// notify writes the booking-confirmed and payment-successful
// notifications.  Errors are logged and swallowed.
func (c *Committer) notify(ctx context.Context, b *model.Booking, eventTitle string) {
    if c.notifier == nil {
        return
    }
    link := fmt.Sprintf("/bookings/%d", b.ID)
    if err := c.notifier.Create(ctx, b.UserID,
        "Booking Confirmed!",
        fmt.Sprintf("Your booking for %q is confirmed. Booking #%s", eventTitle, b.BookingNumber),
        model.NotificationTypeBooking, &link,
    ); err != nil {
        c.log.WithError(err).Warn("failed to create booking notification")
    }
    if err := c.notifier.Create(ctx, b.UserID,
        "Payment Successful",
        fmt.Sprintf("Payment of ₹%.2f for %q was successful.", float64(b.FinalCents)/100, eventTitle),
        model.NotificationTypePayment, nil,
    ); err != nil {
        c.log.WithError(err).Warn("failed to create payment notification")
    }
}

// publish emits the booking.confirmed broker event.  Errors are
// logged and swallowed.
func (c *Committer) publish(ctx context.Context, b *model.Booking, eventTitle string, sel *Selection) {
    if c.publisher == nil {
        return
    }
    labels := make([]string, 0, len(sel.Seats))
    for _, s := range sel.Seats {
        labels = append(labels, fmt.Sprintf("%s %s%d", s.SectionName, s.RowName, s.SeatNumber))
    }
    ev := queue.BookingConfirmedEvent{
        BookingID:     b.ID,
        BookingNumber: b.BookingNumber,
        UserID:        b.UserID,
        EventID:       b.EventID,
        EventTitle:    eventTitle,
        ScheduleID:    b.ScheduleID,
        SeatLabels:    labels,
        TotalCents:    b.TotalCents,
        DiscountCents: b.DiscountCents,
        FinalCents:    b.FinalCents,
        PaymentMethod: b.PaymentMethod,
        ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
    }
    if err := c.publisher.PublishBookingConfirmed(ctx, ev); err != nil {
        c.log.WithError(err).Warn("failed to publish booking.confirmed event")
    }
}
