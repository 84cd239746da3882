package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/ticket-booking/internal/model"
)

// SeatLayoutRepo reads the static seat maps of venues plus the
// booked-seat id sets used to mark availability for a schedule.
type SeatLayoutRepo struct {
    db *sql.DB
}

// NewSeatLayoutRepo returns a SeatLayoutRepo bound to the given database.
func NewSeatLayoutRepo(db *sql.DB) *SeatLayoutRepo { return &SeatLayoutRepo{db: db} }

// ListActiveByVenue returns the venue's active seats ordered by
// section, row and seat number.  An empty slice means the venue has
// no published seat layout; callers must render that as an explicit
// empty state rather than a blank grid.
func (r *SeatLayoutRepo) ListActiveByVenue(ctx context.Context, venueID uint64) ([]model.SeatLayout, error) {
    const q = `SELECT id, venue_id, section_name, row_name, seat_number,
                      seat_type, price_multiplier, is_active
               FROM seat_layouts
               WHERE venue_id = ? AND is_active = 1
               ORDER BY section_name, row_name, seat_number`
    rows, err := r.db.QueryContext(ctx, q, venueID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.SeatLayout, 0)
    for rows.Next() {
        var s model.SeatLayout
        if err := rows.Scan(
            &s.ID, &s.VenueID, &s.SectionName, &s.RowName, &s.SeatNumber,
            &s.SeatType, &s.PriceMultiplier, &s.IsActive,
        ); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// BookedSeatIDs returns the set of seat ids already sold for the
// given schedule.  Every persisted booked_seats row counts: the
// UNIQUE (schedule_id, seat_id) key rejects re-inserts regardless of
// the owning booking's status, so a cancellation flow must delete
// the booked_seats rows to release the seats.
func (r *SeatLayoutRepo) BookedSeatIDs(ctx context.Context, scheduleID uint64) (map[uint64]struct{}, error) {
    const q = `SELECT seat_id FROM booked_seats WHERE schedule_id = ?`
    rows, err := r.db.QueryContext(ctx, q, scheduleID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    taken := make(map[uint64]struct{})
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        taken[id] = struct{}{}
    }
    return taken, rows.Err()
}

// GetByIDs returns the active seats with the given ids belonging to
// the venue.  Unknown or inactive ids are silently absent from the
// result; callers detect them by comparing lengths.
func (r *SeatLayoutRepo) GetByIDs(ctx context.Context, venueID uint64, ids []uint64) ([]model.SeatLayout, error) {
    if len(ids) == 0 {
        return []model.SeatLayout{}, nil
    }
    q := `SELECT id, venue_id, section_name, row_name, seat_number,
                 seat_type, price_multiplier, is_active
          FROM seat_layouts
          WHERE venue_id = ? AND is_active = 1 AND id IN (`
    args := make([]interface{}, 0, len(ids)+1)
    args = append(args, venueID)
    for i, id := range ids {
        if i > 0 {
            q += ","
        }
        q += "?"
        args = append(args, id)
    }
    q += ") ORDER BY section_name, row_name, seat_number"
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.SeatLayout, 0, len(ids))
    for rows.Next() {
        var s model.SeatLayout
        if err := rows.Scan(
            &s.ID, &s.VenueID, &s.SectionName, &s.RowName, &s.SeatNumber,
            &s.SeatType, &s.PriceMultiplier, &s.IsActive,
        ); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}
