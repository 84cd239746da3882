// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully committed.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID     uint64   `json:"booking_id"`
    BookingNumber string   `json:"booking_number"`
    UserID        uint64   `json:"user_id"`
    EventID       uint64   `json:"event_id"`
    EventTitle    string   `json:"event_title"`
    ScheduleID    uint64   `json:"schedule_id"`
    SeatLabels    []string `json:"seats"`
    TotalCents    uint32   `json:"total_cents"`
    DiscountCents uint32   `json:"discount_cents"`
    FinalCents    uint32   `json:"final_cents"`
    PaymentMethod string   `json:"payment_method"`
    ConfirmedAt   string   `json:"confirmed_at"`
}
