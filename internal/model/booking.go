package model

import "time"

// Booking status constants stored in bookings.status.
const (
    BookingStatusPending   = "pending"
    BookingStatusConfirmed = "confirmed"
    BookingStatusCancelled = "cancelled"
    BookingStatusCompleted = "completed"
    BookingStatusRefunded  = "refunded"
)

// Payment status constants stored in bookings.payment_status.
const (
    PaymentStatusPending  = "pending"
    PaymentStatusPaid     = "paid"
    PaymentStatusFailed   = "failed"
    PaymentStatusRefunded = "refunded"
)

// Booking records a user's purchase of one or more seats for a
// schedule.  It is created exactly once per successful checkout and
// written together with its BookedSeat rows and the schedule seat
// count update in a single transaction.
//
// Invariants: the sum of the booking's BookedSeat prices equals
// TotalCents, and FinalCents = max(0, TotalCents - DiscountCents).
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – user who made the booking.
//  EventID       – event booked.
//  ScheduleID    – schedule booked.
//  BookingNumber – human-facing unique reference ("TKT...").
//  Status        – pending, confirmed, cancelled, completed, refunded.
//  TotalCents    – sum of seat prices before discount.
//  DiscountCents – discount applied via an offer code.
//  FinalCents    – amount charged after discount, floored at zero.
//  PaymentMethod – upi, card, wallet or netbanking.
//  PaymentStatus – pending, paid, failed, refunded.
//  OfferCode     – offer code applied, if any.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
    ID            uint64    // bookings.id
    UserID        uint64    // bookings.user_id
    EventID       uint64    // bookings.event_id
    ScheduleID    uint64    // bookings.schedule_id
    BookingNumber string    // bookings.booking_number
    Status        string    // bookings.status
    TotalCents    uint32    // bookings.total_cents
    DiscountCents uint32    // bookings.discount_cents
    FinalCents    uint32    // bookings.final_cents
    PaymentMethod string    // bookings.payment_method
    PaymentStatus string    // bookings.payment_status
    OfferCode     *string   // bookings.offer_code (nullable)
    CreatedAt     time.Time // bookings.created_at
    UpdatedAt     time.Time // bookings.updated_at
}

// BookedSeat ties one seat to one booking for one schedule.  Section,
// row and seat number are denormalized so that a booking remains
// renderable even if the venue layout later changes.  The table
// carries a UNIQUE (schedule_id, seat_id) constraint, which is what
// prevents the same physical seat from being sold twice for a
// schedule under concurrent checkouts.
//
// Fields:
//  ID          – primary key identifier.
//  BookingID   – booking this seat belongs to.
//  ScheduleID  – schedule the seat is sold for.
//  SeatID      – seat_layouts row that was sold.
//  SectionName – denormalized section name.
//  RowName     – denormalized row name.
//  SeatNumber  – denormalized seat number.
//  PriceCents  – price paid for this seat in cents.
type BookedSeat struct {
    ID          uint64 // booked_seats.id
    BookingID   uint64 // booked_seats.booking_id
    ScheduleID  uint64 // booked_seats.schedule_id
    SeatID      uint64 // booked_seats.seat_id
    SectionName string // booked_seats.section_name
    RowName     string // booked_seats.row_name
    SeatNumber  uint32 // booked_seats.seat_number
    PriceCents  uint32 // booked_seats.price_cents
}
