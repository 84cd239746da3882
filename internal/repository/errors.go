// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrSeatTaken indicates that a seat was sold to another
// session between selection and commit, while ErrScheduleSoldOut
// signals that the schedule no longer has enough available seats
// for the requested booking.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrSeatTaken is returned by the booking commit when inserting a
// booked seat violates the UNIQUE (schedule_id, seat_id) constraint,
// meaning another booking already claimed one of the requested
// seats. Handlers should translate this into an HTTP 409 response.
var ErrSeatTaken = errors.New("seat already booked")

// ErrScheduleSoldOut is returned by the booking commit when the
// guarded available-seat decrement matches no row, meaning the
// schedule has fewer remaining seats than the booking requires.
var ErrScheduleSoldOut = errors.New("not enough seats available")

// ErrOfferExhausted is returned when redeeming an offer whose
// used_count has reached its usage_limit.
var ErrOfferExhausted = errors.New("offer usage limit reached")

// Not-found sentinels per aggregate. Repositories return these
// instead of sql.ErrNoRows so handlers do not need to import
// database/sql.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrVenueNotFound    = errors.New("venue not found")
	ErrOfferNotFound    = errors.New("offer not found")
	ErrBookingNotFound  = errors.New("booking not found")
)

// isDuplicateKey reports whether err is a MySQL duplicate-key
// violation (error 1062).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
