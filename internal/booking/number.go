package booking

import (
    "crypto/rand"
    "encoding/hex"
    "strconv"
    "strings"
    "time"
)

// NewBookingNumber returns a booking reference of the form
// "TKT<base36 epoch millis><4 hex chars>", uppercased.  The random
// suffix removes the collision window of two bookings committing in
// the same millisecond; uniqueness is still enforced by the database
// index on booking_number.
func NewBookingNumber(now time.Time) (string, error) {
    buf := make([]byte, 2)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    millis := strconv.FormatInt(now.UnixMilli(), 36)
    return "TKT" + strings.ToUpper(millis+hex.EncodeToString(buf)), nil
}
