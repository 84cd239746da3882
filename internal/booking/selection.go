// Package booking holds the in-progress selection state machine and
// the committer that turns a finished selection into persisted
// booking rows.  The selection itself is pure; persistence concerns
// (the Redis-backed store, the SQL commit) are injected so the state
// transitions can be unit tested without any backend.
package booking

import (
    "errors"
)

// MaxSelectedSeats caps how many seats one selection may hold.
const MaxSelectedSeats = 10

// Selection transition errors.  These are soft validation failures:
// the selection is left unchanged and handlers surface them as
// user-facing warnings.
var (
    ErrMaxSeats       = errors.New("maximum of 10 seats per booking")
    ErrNoSchedule     = errors.New("no schedule selected")
    ErrNoSeats        = errors.New("no seats selected")
    ErrOfferApplied   = errors.New("an offer is already applied; remove it first")
    ErrNoOfferApplied = errors.New("no offer applied")
)

// SelectedSeat is one seat held in a selection together with its
// computed price (schedule base price × seat multiplier).  The
// section/row/number are carried along so the committer can
// denormalize them into booked_seats without re-reading the layout.
type SelectedSeat struct {
    SeatID      uint64 `json:"seat_id"`
    SectionName string `json:"section_name"`
    RowName     string `json:"row_name"`
    SeatNumber  uint32 `json:"seat_number"`
    SeatType    string `json:"seat_type"`
    PriceCents  uint32 `json:"price_cents"`
}

// Selection is one user's in-progress booking: the chosen schedule,
// the toggled seats and an optionally applied offer.  All transitions
// mutate the receiver in place; a transition that returns an error
// leaves the selection untouched.
type Selection struct {
    EventID       uint64         `json:"event_id"`
    ScheduleID    uint64         `json:"schedule_id"`
    Seats         []SelectedSeat `json:"seats"`
    OfferCode     string         `json:"offer_code,omitempty"`
    DiscountCents uint32         `json:"discount_cents,omitempty"`
}

// SelectSchedule replaces the current schedule.  Switching shows
// invalidates prior seat picks, so the seat list and any applied
// offer are cleared.  Re-selecting the current schedule is a no-op.
func (s *Selection) SelectSchedule(eventID, scheduleID uint64) {
    if s.ScheduleID == scheduleID {
        return
    }
    s.EventID = eventID
    s.ScheduleID = scheduleID
    s.Seats = nil
    s.OfferCode = ""
    s.DiscountCents = 0
}

// HasSeat reports whether the seat is currently selected.
func (s *Selection) HasSeat(seatID uint64) bool {
    for _, seat := range s.Seats {
        if seat.SeatID == seatID {
            return true
        }
    }
    return false
}

// ToggleSeat adds the seat if absent and removes it if present.  It
// returns true when the seat was added.  Adding an eleventh seat
// fails with ErrMaxSeats and leaves the selection unchanged.
func (s *Selection) ToggleSeat(seat SelectedSeat) (bool, error) {
    if s.ScheduleID == 0 {
        return false, ErrNoSchedule
    }
    for i, existing := range s.Seats {
        if existing.SeatID == seat.SeatID {
            s.Seats = append(s.Seats[:i], s.Seats[i+1:]...)
            return false, nil
        }
    }
    if len(s.Seats) >= MaxSelectedSeats {
        return false, ErrMaxSeats
    }
    s.Seats = append(s.Seats, seat)
    return true, nil
}

// ApplyOffer records the validated code and its computed discount.
// Both fields are always set together.  An already-applied offer must
// be removed explicitly before another can be applied.
func (s *Selection) ApplyOffer(code string, discountCents uint32) error {
    if s.OfferCode != "" {
        return ErrOfferApplied
    }
    s.OfferCode = code
    s.DiscountCents = discountCents
    return nil
}

// ClearOffer removes the applied offer and its discount together.
func (s *Selection) ClearOffer() {
    s.OfferCode = ""
    s.DiscountCents = 0
}

// TotalCents is the sum of the selected seat prices before discount.
func (s *Selection) TotalCents() uint32 {
    var total uint32
    for _, seat := range s.Seats {
        total += seat.PriceCents
    }
    return total
}

// FinalCents is the amount due after discount, floored at zero so a
// fixed offer larger than the total never produces a negative amount.
func (s *Selection) FinalCents() uint32 {
    total := s.TotalCents()
    if s.DiscountCents >= total {
        return 0
    }
    return total - s.DiscountCents
}

// Reset clears the whole selection.  Called only after a committed
// booking.
func (s *Selection) Reset() {
    *s = Selection{}
}
