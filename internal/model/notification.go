package model

import "time"

// Notification type constants stored in notifications.type.
const (
    NotificationTypeInfo    = "info"
    NotificationTypeBooking = "booking"
    NotificationTypePayment = "payment"
    NotificationTypeOffer   = "offer"
)

// Notification is an in-app message shown to a user.  The booking
// committer writes two of these (booking confirmed, payment
// successful) after a checkout; failures are logged and swallowed
// because a missing notification must not fail the booking.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – recipient.
//  Title     – short headline.
//  Message   – body text.
//  Type      – info, booking, payment or offer.
//  Link      – optional in-app link target.
//  IsRead    – whether the user has opened it.
//  CreatedAt – creation timestamp.
type Notification struct {
    ID        uint64    // notifications.id
    UserID    uint64    // notifications.user_id
    Title     string    // notifications.title
    Message   string    // notifications.message
    Type      string    // notifications.type
    Link      *string   // notifications.link (nullable)
    IsRead    bool      // notifications.is_read
    CreatedAt time.Time // notifications.created_at
}
