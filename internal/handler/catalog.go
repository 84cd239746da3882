// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public catalog: categories, events,
// venues and schedules.  These routes require no authentication and return
// sanitized views of the underlying rows.
package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ticket-booking/internal/model"
    "github.com/iliyamo/ticket-booking/internal/repository"
)

// CatalogHandler aggregates the read-only repositories behind the browse API.
type CatalogHandler struct {
    Catalog *repository.CatalogRepo
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalog *repository.CatalogRepo) *CatalogHandler {
    if catalog == nil {
        panic("nil repository passed to NewCatalogHandler")
    }
    return &CatalogHandler{Catalog: catalog}
}

// publicCategory is a category as exposed via the public API.
type publicCategory struct {
    ID   uint64  `json:"id"`
    Name string  `json:"name"`
    Icon *string `json:"icon,omitempty"`
    Kind string  `json:"kind"`
}

// publicEvent is an event in list responses.
type publicEvent struct {
    ID         uint64  `json:"id"`
    Title      string  `json:"title"`
    ImageURL   *string `json:"image_url,omitempty"`
    Language   *string `json:"language,omitempty"`
    Rating     *string `json:"rating,omitempty"`
    IsFeatured bool    `json:"is_featured"`
}

// publicVenue is a venue as embedded in detail responses.
type publicVenue struct {
    ID      uint64 `json:"id"`
    Name    string `json:"name"`
    Address string `json:"address"`
    City    string `json:"city"`
}

// publicSchedule is one showing of an event.
type publicSchedule struct {
    ID             uint64     `json:"id"`
    VenueID        uint64     `json:"venue_id"`
    StartTime      time.Time  `json:"start_time"`
    EndTime        *time.Time `json:"end_time,omitempty"`
    PriceMinCents  uint32     `json:"price_min_cents"`
    PriceMaxCents  uint32     `json:"price_max_cents"`
    AvailableSeats uint32     `json:"available_seats"`
    SoldOut        bool       `json:"sold_out"`
}

// publicEventDetail is the event detail response with category, venue and
// upcoming schedules embedded.
type publicEventDetail struct {
    publicEvent
    Description *string          `json:"description,omitempty"`
    BannerURL   *string          `json:"banner_url,omitempty"`
    Category    *publicCategory  `json:"category,omitempty"`
    Venue       *publicVenue     `json:"venue,omitempty"`
    Schedules   []publicSchedule `json:"schedules"`
}

func toPublicEvent(e model.Event) publicEvent {
    return publicEvent{
        ID:         e.ID,
        Title:      e.Title,
        ImageURL:   e.ImageURL,
        Language:   e.Language,
        Rating:     e.Rating,
        IsFeatured: e.IsFeatured,
    }
}

func toPublicSchedule(s model.Schedule) publicSchedule {
    return publicSchedule{
        ID:             s.ID,
        VenueID:        s.VenueID,
        StartTime:      s.StartTime,
        EndTime:        s.EndTime,
        PriceMinCents:  s.PriceMinCents,
        PriceMaxCents:  s.PriceMaxCents,
        AvailableSeats: s.AvailableSeats,
        SoldOut:        s.AvailableSeats == 0,
    }
}

// GetCategories lists active categories.  Response JSON contains an "items"
// array of publicCategory.
func (h *CatalogHandler) GetCategories(c echo.Context) error {
    ctx := c.Request().Context()
    cats, err := h.Catalog.ListCategories(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]publicCategory, 0, len(cats))
    for _, cat := range cats {
        out = append(out, publicCategory{ID: cat.ID, Name: cat.Name, Icon: cat.Icon, Kind: cat.Kind})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetEvents lists active events.  Query parameters narrow the result:
// category_id, city, q (title substring) and featured=true.
func (h *CatalogHandler) GetEvents(c echo.Context) error {
    ctx := c.Request().Context()
    var f repository.EventFilter
    if raw := c.QueryParam("category_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
        }
        f.CategoryID = id
    }
    f.City = c.QueryParam("city")
    f.Search = c.QueryParam("q")
    f.Featured = c.QueryParam("featured") == "true"

    events, err := h.Catalog.ListEvents(ctx, f)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]publicEvent, 0, len(events))
    for _, e := range events {
        out = append(out, toPublicEvent(e))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetEvent returns one event with category, venue and upcoming schedules.
func (h *CatalogHandler) GetEvent(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    det, err := h.Catalog.GetEventByID(ctx, id)
    if err != nil {
        if err == repository.ErrEventNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    schedules, err := h.Catalog.ListSchedulesByEvent(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    resp := publicEventDetail{
        publicEvent: toPublicEvent(det.Event),
        Description: det.Event.Description,
        BannerURL:   det.Event.BannerURL,
        Schedules:   make([]publicSchedule, 0, len(schedules)),
    }
    if det.Category != nil {
        resp.Category = &publicCategory{ID: det.Category.ID, Name: det.Category.Name, Icon: det.Category.Icon, Kind: det.Category.Kind}
    }
    if det.Venue != nil {
        resp.Venue = &publicVenue{ID: det.Venue.ID, Name: det.Venue.Name, Address: det.Venue.Address, City: det.Venue.City}
    }
    for _, s := range schedules {
        resp.Schedules = append(resp.Schedules, toPublicSchedule(s))
    }
    return c.JSON(http.StatusOK, resp)
}

// publicVenueDetail is the standalone venue response, richer than the
// embedded publicVenue.
type publicVenueDetail struct {
    publicVenue
    State    *string `json:"state,omitempty"`
    Country  string  `json:"country"`
    Capacity *uint32 `json:"capacity,omitempty"`
}

// GetVenue returns one venue.
func (h *CatalogHandler) GetVenue(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    v, err := h.Catalog.GetVenueByID(ctx, id)
    if err != nil {
        if err == repository.ErrVenueNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, publicVenueDetail{
        publicVenue: publicVenue{ID: v.ID, Name: v.Name, Address: v.Address, City: v.City},
        State:       v.State,
        Country:     v.Country,
        Capacity:    v.Capacity,
    })
}

// GetEventSchedules lists the upcoming schedules of one event.
func (h *CatalogHandler) GetEventSchedules(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    // ensure event exists
    if _, err := h.Catalog.GetEventByID(ctx, id); err != nil {
        if err == repository.ErrEventNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    schedules, err := h.Catalog.ListSchedulesByEvent(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]publicSchedule, 0, len(schedules))
    for _, s := range schedules {
        out = append(out, toPublicSchedule(s))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}
