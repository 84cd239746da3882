package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ticket-booking/internal/model"
    "github.com/iliyamo/ticket-booking/internal/repository"
)

// OfferHandler lists the offers promoted on the checkout page.
type OfferHandler struct {
    Offers *repository.OfferRepo
    Limit  int
}

// NewOfferHandler constructs an OfferHandler.
func NewOfferHandler(offers *repository.OfferRepo, limit int) *OfferHandler {
    if offers == nil {
        panic("nil repository passed to NewOfferHandler")
    }
    return &OfferHandler{Offers: offers, Limit: limit}
}

// publicOffer is an offer as shown to users.  Usage counters stay private.
type publicOffer struct {
    Code          string    `json:"code"`
    Title         string    `json:"title"`
    Description   *string   `json:"description,omitempty"`
    DiscountType  string    `json:"discount_type"`
    DiscountValue uint32    `json:"discount_value"`
    MinPurchase   uint32    `json:"min_purchase"`
    MaxDiscount   *uint32   `json:"max_discount,omitempty"`
    ValidUntil    time.Time `json:"valid_until"`
}

func toPublicOffer(o model.Offer) publicOffer {
    return publicOffer{
        Code:          o.Code,
        Title:         o.Title,
        Description:   o.Description,
        DiscountType:  o.DiscountType,
        DiscountValue: o.DiscountValue,
        MinPurchase:   o.MinPurchase,
        MaxDiscount:   o.MaxDiscount,
        ValidUntil:    o.ValidUntil,
    }
}

// GetOffers lists currently valid offers, soonest-expiring first.
func (h *OfferHandler) GetOffers(c echo.Context) error {
    offers, err := h.Offers.ListActive(c.Request().Context(), h.Limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]publicOffer, 0, len(offers))
    for _, o := range offers {
        out = append(out, toPublicOffer(o))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}
