package model

import "time"

// Schedule is a specific showing of an event at a venue with its own
// pricing and seat pool.  AvailableSeats is the only cross-session
// mutable counter in the booking flow; it is decremented inside the
// commit transaction with a guarded UPDATE so that concurrent
// bookings cannot oversell the schedule.
//
// Fields:
//  ID             – primary key identifier.
//  EventID        – event being shown.
//  VenueID        – venue hosting the showing.
//  StartTime      – when the showing begins.
//  EndTime        – when the showing ends (nullable).
//  PriceMinCents  – base seat price in cents; multiplied by the
//                   seat's price multiplier to obtain a seat price.
//  PriceMaxCents  – highest seat price in cents, informational.
//  TotalSeats     – size of the seat pool.
//  AvailableSeats – seats still available for sale.
//  IsActive       – whether the schedule is open for booking.
type Schedule struct {
    ID             uint64     // event_schedules.id
    EventID        uint64     // event_schedules.event_id
    VenueID        uint64     // event_schedules.venue_id
    StartTime      time.Time  // event_schedules.start_time
    EndTime        *time.Time // event_schedules.end_time (nullable)
    PriceMinCents  uint32     // event_schedules.price_min_cents
    PriceMaxCents  uint32     // event_schedules.price_max_cents
    TotalSeats     uint32     // event_schedules.total_seats
    AvailableSeats uint32     // event_schedules.available_seats
    IsActive       bool       // event_schedules.is_active
}
