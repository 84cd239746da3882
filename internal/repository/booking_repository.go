package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/iliyamo/ticket-booking/internal/model"
)

// BookingRepo persists bookings and their seats.  The commit path
// runs as a single transaction so a failure at any step leaves no
// orphaned booking row, no dangling booked seats and an untouched
// available-seat counter.
type BookingRepo struct {
    db     *sql.DB
    offers *OfferRepo
}

// NewBookingRepo returns a BookingRepo bound to the given database.
// The offer repository is used to redeem codes inside the commit
// transaction.
func NewBookingRepo(db *sql.DB, offers *OfferRepo) *BookingRepo {
    return &BookingRepo{db: db, offers: offers}
}

// CommitParams carries everything the commit transaction writes.
// Seats must have their denormalized section/row/number and price
// populated; BookingID is filled in during the insert.
type CommitParams struct {
    UserID        uint64
    EventID       uint64
    ScheduleID    uint64
    BookingNumber string
    TotalCents    uint32
    DiscountCents uint32
    FinalCents    uint32
    PaymentMethod string
    OfferCode     string // empty when no offer was applied
    Seats         []model.BookedSeat
}

// Commit atomically creates the booking with its seats, decrements
// the schedule's available-seat count and redeems the offer code if
// one was applied.  The whole sequence either commits or rolls back.
//
// Two guards protect against concurrent checkouts for the same
// schedule: the UNIQUE (schedule_id, seat_id) key on booked_seats
// (violation maps to ErrSeatTaken) and the available_seats >= n
// predicate on the schedule update (zero rows maps to
// ErrScheduleSoldOut).
func (r *BookingRepo) Commit(ctx context.Context, p CommitParams) (*model.Booking, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    booking := &model.Booking{
        UserID:        p.UserID,
        EventID:       p.EventID,
        ScheduleID:    p.ScheduleID,
        BookingNumber: p.BookingNumber,
        Status:        model.BookingStatusConfirmed,
        TotalCents:    p.TotalCents,
        DiscountCents: p.DiscountCents,
        FinalCents:    p.FinalCents,
        PaymentMethod: p.PaymentMethod,
        PaymentStatus: model.PaymentStatusPaid,
    }
    if code := strings.TrimSpace(p.OfferCode); code != "" {
        booking.OfferCode = &code
    }

    const insertBooking = `INSERT INTO bookings
        (user_id, event_id, schedule_id, booking_number, status,
         total_cents, discount_cents, final_cents,
         payment_method, payment_status, offer_code)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, insertBooking,
        booking.UserID, booking.EventID, booking.ScheduleID, booking.BookingNumber, booking.Status,
        booking.TotalCents, booking.DiscountCents, booking.FinalCents,
        booking.PaymentMethod, booking.PaymentStatus, booking.OfferCode)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    booking.ID = uint64(id)

    if err := r.insertSeatsTx(ctx, tx, booking.ID, p.ScheduleID, p.Seats); err != nil {
        return nil, err
    }

    const decrement = `UPDATE event_schedules
                       SET available_seats = available_seats - ?
                       WHERE id = ? AND available_seats >= ?`
    dres, err := tx.ExecContext(ctx, decrement, len(p.Seats), p.ScheduleID, len(p.Seats))
    if err != nil {
        return nil, err
    }
    n, err := dres.RowsAffected()
    if err != nil {
        return nil, err
    }
    if n == 0 {
        return nil, ErrScheduleSoldOut
    }

    if booking.OfferCode != nil {
        if err := r.offers.RedeemTx(ctx, tx, *booking.OfferCode); err != nil {
            return nil, err
        }
    }

    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    booking.CreatedAt = time.Now().UTC()
    booking.UpdatedAt = booking.CreatedAt
    return booking, nil
}

// insertSeatsTx bulk-inserts the booked_seats rows for a booking.
func (r *BookingRepo) insertSeatsTx(ctx context.Context, tx *sql.Tx, bookingID, scheduleID uint64, seats []model.BookedSeat) error {
    if len(seats) == 0 {
        return nil
    }
    q := `INSERT INTO booked_seats
          (booking_id, schedule_id, seat_id, section_name, row_name, seat_number, price_cents) VALUES `
    args := make([]interface{}, 0, len(seats)*7)
    for i, s := range seats {
        if i > 0 {
            q += ","
        }
        q += "(?, ?, ?, ?, ?, ?, ?)"
        args = append(args, bookingID, scheduleID, s.SeatID, s.SectionName, s.RowName, s.SeatNumber, s.PriceCents)
    }
    if _, err := tx.ExecContext(ctx, q, args...); err != nil {
        if isDuplicateKey(err) {
            return ErrSeatTaken
        }
        return err
    }
    return nil
}

// BookedSeatDetail is one seat of a booking as rendered on the
// confirmation page.
type BookedSeatDetail struct {
    SeatID      uint64 `json:"seat_id"`
    SectionName string `json:"section_name"`
    RowName     string `json:"row_name"`
    SeatNumber  uint32 `json:"seat_number"`
    PriceCents  uint32 `json:"price_cents"`
}

// BookingDetail is a booking joined with its event, schedule and
// venue plus the booked seats, as consumed by the confirmation and
// history pages.
type BookingDetail struct {
    ID            uint64             `json:"id"`
    BookingNumber string             `json:"booking_number"`
    Status        string             `json:"status"`
    TotalCents    uint32             `json:"total_cents"`
    DiscountCents uint32             `json:"discount_cents"`
    FinalCents    uint32             `json:"final_cents"`
    PaymentMethod string             `json:"payment_method"`
    PaymentStatus string             `json:"payment_status"`
    OfferCode     *string            `json:"offer_code,omitempty"`
    EventID       uint64             `json:"event_id"`
    EventTitle    string             `json:"event_title"`
    EventImageURL *string            `json:"event_image_url,omitempty"`
    ScheduleID    uint64             `json:"schedule_id"`
    StartTime     time.Time          `json:"start_time"`
    EndTime       *time.Time         `json:"end_time,omitempty"`
    VenueName     string             `json:"venue_name"`
    VenueAddress  string             `json:"venue_address"`
    VenueCity     string             `json:"venue_city"`
    CreatedAt     time.Time          `json:"created_at"`
    Seats         []BookedSeatDetail `json:"seats"`
}

const bookingDetailColumns = `b.id, b.booking_number, b.status,
           b.total_cents, b.discount_cents, b.final_cents,
           b.payment_method, b.payment_status, b.offer_code,
           e.id, e.title, e.image_url,
           s.id, s.start_time, s.end_time,
           v.name, v.address, v.city,
           b.created_at`

func scanBookingDetail(row interface{ Scan(...interface{}) error }, d *BookingDetail) error {
    return row.Scan(
        &d.ID, &d.BookingNumber, &d.Status,
        &d.TotalCents, &d.DiscountCents, &d.FinalCents,
        &d.PaymentMethod, &d.PaymentStatus, &d.OfferCode,
        &d.EventID, &d.EventTitle, &d.EventImageURL,
        &d.ScheduleID, &d.StartTime, &d.EndTime,
        &d.VenueName, &d.VenueAddress, &d.VenueCity,
        &d.CreatedAt,
    )
}

// GetDetailForUser returns one booking with its seats, restricted to
// the owning user.  ErrBookingNotFound is returned when the booking
// does not exist or belongs to someone else.
func (r *BookingRepo) GetDetailForUser(ctx context.Context, bookingID, userID uint64) (*BookingDetail, error) {
    q := `SELECT ` + bookingDetailColumns + `
          FROM bookings b
          JOIN events e ON e.id = b.event_id
          JOIN event_schedules s ON s.id = b.schedule_id
          JOIN venues v ON v.id = s.venue_id
          WHERE b.id = ? AND b.user_id = ?`
    var det BookingDetail
    err := scanBookingDetail(r.db.QueryRowContext(ctx, q, bookingID, userID), &det)
    if err == sql.ErrNoRows {
        return nil, ErrBookingNotFound
    }
    if err != nil {
        return nil, err
    }
    det.Seats = []BookedSeatDetail{}
    const seatQ = `SELECT seat_id, section_name, row_name, seat_number, price_cents
                   FROM booked_seats WHERE booking_id = ?
                   ORDER BY section_name, row_name, seat_number`
    rows, err := r.db.QueryContext(ctx, seatQ, det.ID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var s BookedSeatDetail
        if err := rows.Scan(&s.SeatID, &s.SectionName, &s.RowName, &s.SeatNumber, &s.PriceCents); err != nil {
            return nil, err
        }
        det.Seats = append(det.Seats, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return &det, nil
}

// ListByUser returns all of the user's bookings with their seats,
// newest first.  Seats for every booking are loaded with a single IN
// query instead of one query per booking.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
    q := `SELECT ` + bookingDetailColumns + `
          FROM bookings b
          JOIN events e ON e.id = b.event_id
          JOIN event_schedules s ON s.id = b.schedule_id
          JOIN venues v ON v.id = s.venue_id
          WHERE b.user_id = ?
          ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]BookingDetail, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var d BookingDetail
        if err := scanBookingDetail(rows, &d); err != nil {
            return nil, err
        }
        d.Seats = []BookedSeatDetail{}
        index[d.ID] = len(details)
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(details) == 0 {
        return details, nil
    }

    ids := make([]interface{}, 0, len(details))
    placeholders := make([]string, 0, len(details))
    for _, d := range details {
        ids = append(ids, d.ID)
        placeholders = append(placeholders, "?")
    }
    seatQ := `SELECT booking_id, seat_id, section_name, row_name, seat_number, price_cents
              FROM booked_seats
              WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
              ORDER BY booking_id, section_name, row_name, seat_number`
    srows, err := r.db.QueryContext(ctx, seatQ, ids...)
    if err != nil {
        return nil, err
    }
    defer srows.Close()
    for srows.Next() {
        var bid uint64
        var s BookedSeatDetail
        if err := srows.Scan(&bid, &s.SeatID, &s.SectionName, &s.RowName, &s.SeatNumber, &s.PriceCents); err != nil {
            return nil, err
        }
        if idx, ok := index[bid]; ok {
            details[idx].Seats = append(details[idx].Seats, s)
        }
    }
    if err := srows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}

// PartitionByTime splits bookings into upcoming and past relative to
// now.  A booking is upcoming when its schedule has not started yet
// and it is not cancelled; cancelled and already-started bookings are
// past.  Order within each partition follows the input order.
func PartitionByTime(details []BookingDetail, now time.Time) (upcoming, past []BookingDetail) {
    upcoming = make([]BookingDetail, 0, len(details))
    past = make([]BookingDetail, 0, len(details))
    for _, d := range details {
        if d.StartTime.After(now) && d.Status != model.BookingStatusCancelled {
            upcoming = append(upcoming, d)
        } else {
            past = append(past, d)
        }
    }
    return upcoming, past
}
