package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ticket-booking/internal/model"
    "github.com/iliyamo/ticket-booking/internal/repository"
)

// NotificationHandler serves the in-app notification feed.
type NotificationHandler struct {
    Notifications *repository.NotificationRepo
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
    if n == nil {
        panic("nil repository passed to NewNotificationHandler")
    }
    return &NotificationHandler{Notifications: n}
}

type notificationView struct {
    ID        uint64    `json:"id"`
    Title     string    `json:"title"`
    Message   string    `json:"message"`
    Type      string    `json:"type"`
    Link      *string   `json:"link,omitempty"`
    IsRead    bool      `json:"is_read"`
    CreatedAt time.Time `json:"created_at"`
}

func toNotificationView(n model.Notification) notificationView {
    return notificationView{
        ID:        n.ID,
        Title:     n.Title,
        Message:   n.Message,
        Type:      n.Type,
        Link:      n.Link,
        IsRead:    n.IsRead,
        CreatedAt: n.CreatedAt,
    }
}

// GetNotifications lists the caller's notifications, newest first.  The
// optional limit query parameter caps the result.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    limit := 0
    if raw := c.QueryParam("limit"); raw != "" {
        if n, err := strconv.Atoi(raw); err == nil {
            limit = n
        }
    }
    items, err := h.Notifications.ListByUser(c.Request().Context(), uid, limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]notificationView, 0, len(items))
    unread := 0
    for _, n := range items {
        if !n.IsRead {
            unread++
        }
        out = append(out, toNotificationView(n))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "unread": unread})
}

// MarkNotificationRead flags one notification as read.  Unknown ids are a
// no-op so the endpoint stays idempotent.
func (h *NotificationHandler) MarkNotificationRead(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Notifications.MarkRead(c.Request().Context(), uid, id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.NoContent(http.StatusNoContent)
}
