package model

// Venue is a physical location hosting event schedules.  Each venue
// owns a static seat layout (see SeatLayout) that every schedule at
// the venue shares.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – venue name.
//  Address  – street address.
//  City     – city used for location filtering.
//  State    – optional state/province.
//  Country  – country name.
//  Capacity – optional total seat capacity.
//  IsActive – whether the venue is in use.
type Venue struct {
    ID       uint64  // venues.id
    Name     string  // venues.name
    Address  string  // venues.address
    City     string  // venues.city
    State    *string // venues.state (nullable)
    Country  string  // venues.country
    Capacity *uint32 // venues.capacity (nullable)
    IsActive bool    // venues.is_active
}
