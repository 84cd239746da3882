package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/ticket-booking/internal/model"
)

// NotificationRepo persists and lists in-app notifications.
type NotificationRepo struct {
    db *sql.DB
}

// NewNotificationRepo returns a NotificationRepo bound to the given database.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Create inserts one notification row.  Callers in the commit path
// treat errors as best-effort and only log them.
func (r *NotificationRepo) Create(ctx context.Context, userID uint64, title, message, ntype string, link *string) error {
    const q = `INSERT INTO notifications (user_id, title, message, type, link, is_read)
               VALUES (?, ?, ?, ?, ?, 0)`
    _, err := r.db.ExecContext(ctx, q, userID, title, message, ntype, link)
    return err
}

// ListByUser returns the user's notifications, newest first, capped
// at limit rows.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.Notification, error) {
    if limit <= 0 {
        limit = 50
    }
    const q = `SELECT id, user_id, title, message, type, link, is_read, created_at
               FROM notifications WHERE user_id = ?
               ORDER BY created_at DESC LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, userID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Notification, 0)
    for rows.Next() {
        var n model.Notification
        if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, n)
    }
    return out, rows.Err()
}

// MarkRead flags one of the user's notifications as read.  Marking an
// already-read or unknown notification is a no-op.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID uint64) error {
    const q = `UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`
    _, err := r.db.ExecContext(ctx, q, notificationID, userID)
    return err
}
