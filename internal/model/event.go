package model

import "time"

// Category groups events into browsable sections such as movies,
// concerts or theatre.  Categories are static reference data managed
// by administrators and read-only for the booking flow.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the category.
//  Description – optional longer description.
//  Icon        – icon name rendered by clients.
//  Kind        – coarse type of the category (movie, event).
//  IsActive    – whether the category is shown in listings.
type Category struct {
    ID          uint64  // categories.id
    Name        string  // categories.name
    Description *string // categories.description (nullable)
    Icon        *string // categories.icon (nullable)
    Kind        string  // categories.kind
    IsActive    bool    // categories.is_active
}

// Event is a bookable production: a movie, concert, play or similar.
// Events reference a category and a venue and carry media URLs for
// listings.  The booking flow treats events as immutable.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – event title.
//  Description – optional long description.
//  CategoryID  – category this event belongs to (nullable).
//  VenueID     – default venue of the event (nullable).
//  ImageURL    – card image shown in listings.
//  BannerURL   – wide banner for the detail page.
//  Language    – spoken language, free-form.
//  Rating      – certification or audience rating string.
//  IsFeatured  – whether the event is promoted on the home page.
//  IsActive    – whether the event is open for booking.
//  CreatedAt   – creation timestamp.
type Event struct {
    ID          uint64    // events.id
    Title       string    // events.title
    Description *string   // events.description (nullable)
    CategoryID  *uint64   // events.category_id (nullable)
    VenueID     *uint64   // events.venue_id (nullable)
    ImageURL    *string   // events.image_url (nullable)
    BannerURL   *string   // events.banner_url (nullable)
    Language    *string   // events.language (nullable)
    Rating      *string   // events.rating (nullable)
    IsFeatured  bool      // events.is_featured
    IsActive    bool      // events.is_active
    CreatedAt   time.Time // events.created_at
}
