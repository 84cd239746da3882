package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/ticket-booking/internal/model"
)

// CatalogRepo provides read-only access to the browsable catalog:
// categories, events, venues and event schedules.  The booking flow
// never mutates any of these tables except for the guarded
// available-seat decrement, which lives in BookingRepo because it is
// part of the commit transaction.
type CatalogRepo struct {
    db *sql.DB
}

// NewCatalogRepo returns a CatalogRepo bound to the given database.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// ListCategories returns all active categories ordered by name.
func (r *CatalogRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
    const q = `SELECT id, name, description, icon, kind, is_active
               FROM categories WHERE is_active = 1 ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Category, 0)
    for rows.Next() {
        var c model.Category
        if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Kind, &c.IsActive); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}

// EventFilter narrows ListEvents results.  Zero values mean "no
// filter" for every field.
type EventFilter struct {
    CategoryID uint64 // restrict to one category
    City       string // restrict to venues in this city
    Search     string // case-insensitive substring match on the title
    Featured   bool   // only featured events
}

// ListEvents returns active events matching the filter, newest first.
// The venue join is a LEFT JOIN so events without a default venue
// still appear when no city filter is set.
func (r *CatalogRepo) ListEvents(ctx context.Context, f EventFilter) ([]model.Event, error) {
    q := `SELECT e.id, e.title, e.description, e.category_id, e.venue_id,
                 e.image_url, e.banner_url, e.language, e.rating,
                 e.is_featured, e.is_active, e.created_at
          FROM events e
          LEFT JOIN venues v ON v.id = e.venue_id
          WHERE e.is_active = 1`
    args := make([]interface{}, 0, 4)
    if f.CategoryID != 0 {
        q += " AND e.category_id = ?"
        args = append(args, f.CategoryID)
    }
    if city := strings.TrimSpace(f.City); city != "" {
        q += " AND v.city = ?"
        args = append(args, city)
    }
    if s := strings.TrimSpace(f.Search); s != "" {
        q += " AND LOWER(e.title) LIKE ?"
        args = append(args, "%"+strings.ToLower(s)+"%")
    }
    if f.Featured {
        q += " AND e.is_featured = 1"
    }
    q += " ORDER BY e.created_at DESC"
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Event, 0)
    for rows.Next() {
        var e model.Event
        if err := rows.Scan(
            &e.ID, &e.Title, &e.Description, &e.CategoryID, &e.VenueID,
            &e.ImageURL, &e.BannerURL, &e.Language, &e.Rating,
            &e.IsFeatured, &e.IsActive, &e.CreatedAt,
        ); err != nil {
            return nil, err
        }
        out = append(out, e)
    }
    return out, rows.Err()
}

// EventDetail is an event joined with its category and venue for the
// detail page.  Category and Venue are nil when the event has none.
type EventDetail struct {
    Event    model.Event
    Category *model.Category
    Venue    *model.Venue
}

// GetEventByID returns one active event with its category and venue.
// ErrEventNotFound is returned when no such event exists.
func (r *CatalogRepo) GetEventByID(ctx context.Context, id uint64) (*EventDetail, error) {
    const q = `SELECT e.id, e.title, e.description, e.category_id, e.venue_id,
                      e.image_url, e.banner_url, e.language, e.rating,
                      e.is_featured, e.is_active, e.created_at,
                      c.id, c.name, c.description, c.icon, c.kind, c.is_active,
                      v.id, v.name, v.address, v.city, v.state, v.country, v.capacity, v.is_active
               FROM events e
               LEFT JOIN categories c ON c.id = e.category_id
               LEFT JOIN venues v ON v.id = e.venue_id
               WHERE e.id = ? AND e.is_active = 1`
    var det EventDetail
    var (
        catID       sql.NullInt64
        catName     sql.NullString
        catDesc     sql.NullString
        catIcon     sql.NullString
        catKind     sql.NullString
        catActive   sql.NullBool
        venID       sql.NullInt64
        venName     sql.NullString
        venAddr     sql.NullString
        venCity     sql.NullString
        venState    sql.NullString
        venCountry  sql.NullString
        venCapacity sql.NullInt64
        venActive   sql.NullBool
    )
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &det.Event.ID, &det.Event.Title, &det.Event.Description, &det.Event.CategoryID, &det.Event.VenueID,
        &det.Event.ImageURL, &det.Event.BannerURL, &det.Event.Language, &det.Event.Rating,
        &det.Event.IsFeatured, &det.Event.IsActive, &det.Event.CreatedAt,
        &catID, &catName, &catDesc, &catIcon, &catKind, &catActive,
        &venID, &venName, &venAddr, &venCity, &venState, &venCountry, &venCapacity, &venActive,
    )
    if err == sql.ErrNoRows {
        return nil, ErrEventNotFound
    }
    if err != nil {
        return nil, err
    }
    if catID.Valid {
        c := model.Category{ID: uint64(catID.Int64), Name: catName.String, Kind: catKind.String, IsActive: catActive.Bool}
        if catDesc.Valid {
            d := catDesc.String
            c.Description = &d
        }
        if catIcon.Valid {
            i := catIcon.String
            c.Icon = &i
        }
        det.Category = &c
    }
    if venID.Valid {
        v := model.Venue{
            ID:       uint64(venID.Int64),
            Name:     venName.String,
            Address:  venAddr.String,
            City:     venCity.String,
            Country:  venCountry.String,
            IsActive: venActive.Bool,
        }
        if venState.Valid {
            s := venState.String
            v.State = &s
        }
        if venCapacity.Valid {
            cap32 := uint32(venCapacity.Int64)
            v.Capacity = &cap32
        }
        det.Venue = &v
    }
    return &det, nil
}

// GetVenueByID returns one venue or ErrVenueNotFound.
func (r *CatalogRepo) GetVenueByID(ctx context.Context, id uint64) (*model.Venue, error) {
    const q = `SELECT id, name, address, city, state, country, capacity, is_active
               FROM venues WHERE id = ?`
    var v model.Venue
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &v.ID, &v.Name, &v.Address, &v.City, &v.State, &v.Country, &v.Capacity, &v.IsActive)
    if err == sql.ErrNoRows {
        return nil, ErrVenueNotFound
    }
    if err != nil {
        return nil, err
    }
    return &v, nil
}

// ListSchedulesByEvent returns active upcoming schedules of an event
// ordered by start time.
func (r *CatalogRepo) ListSchedulesByEvent(ctx context.Context, eventID uint64) ([]model.Schedule, error) {
    const q = `SELECT id, event_id, venue_id, start_time, end_time,
                      price_min_cents, price_max_cents, total_seats, available_seats, is_active
               FROM event_schedules
               WHERE event_id = ? AND is_active = 1 AND start_time > UTC_TIMESTAMP()
               ORDER BY start_time`
    rows, err := r.db.QueryContext(ctx, q, eventID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Schedule, 0)
    for rows.Next() {
        var s model.Schedule
        if err := rows.Scan(
            &s.ID, &s.EventID, &s.VenueID, &s.StartTime, &s.EndTime,
            &s.PriceMinCents, &s.PriceMaxCents, &s.TotalSeats, &s.AvailableSeats, &s.IsActive,
        ); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// GetScheduleByID returns one active schedule or ErrScheduleNotFound.
func (r *CatalogRepo) GetScheduleByID(ctx context.Context, id uint64) (*model.Schedule, error) {
    const q = `SELECT id, event_id, venue_id, start_time, end_time,
                      price_min_cents, price_max_cents, total_seats, available_seats, is_active
               FROM event_schedules WHERE id = ? AND is_active = 1`
    var s model.Schedule
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &s.ID, &s.EventID, &s.VenueID, &s.StartTime, &s.EndTime,
        &s.PriceMinCents, &s.PriceMaxCents, &s.TotalSeats, &s.AvailableSeats, &s.IsActive)
    if err == sql.ErrNoRows {
        return nil, ErrScheduleNotFound
    }
    if err != nil {
        return nil, err
    }
    return &s, nil
}
