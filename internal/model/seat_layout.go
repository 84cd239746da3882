package model

// Seat type constants stored in seat_layouts.seat_type.
const (
    SeatTypeRegular    = "regular"
    SeatTypePremium    = "premium"
    SeatTypeVIP        = "vip"
    SeatTypeWheelchair = "wheelchair"
)

// SeatLayout is one physical seat in a venue's static seat map.
// Seats are uniquely identified by their venue, section, row and
// seat number.  The price multiplier scales the schedule's base
// price to obtain the seat's price.
//
// Fields:
//  ID              – primary key identifier.
//  VenueID         – venue to which this seat belongs.
//  SectionName     – named block of seats (e.g. "Balcony").
//  RowName         – letter or string designating the row.
//  SeatNumber      – number of the seat within the row.
//  SeatType        – regular, premium, vip or wheelchair.
//  PriceMultiplier – factor applied to the schedule base price.
//  IsActive        – whether the seat can be sold.
type SeatLayout struct {
    ID              uint64  // seat_layouts.id
    VenueID         uint64  // seat_layouts.venue_id
    SectionName     string  // seat_layouts.section_name
    RowName         string  // seat_layouts.row_name
    SeatNumber      uint32  // seat_layouts.seat_number
    SeatType        string  // seat_layouts.seat_type
    PriceMultiplier float64 // seat_layouts.price_multiplier
    IsActive        bool    // seat_layouts.is_active
}
