// Package pricing computes seat prices and evaluates offer codes.
// Everything here is pure: callers load the schedule, seat and offer
// rows and pass them in together with the clock, which keeps the
// rules unit-testable without a database.
package pricing

import (
    "errors"
    "math"
    "time"

    "github.com/iliyamo/ticket-booking/internal/model"
)

// Rejection reasons returned by EvaluateOffer.  Handlers map each to
// a specific user-facing message.
var (
    ErrOfferInactive  = errors.New("offer is not active")
    ErrOfferNotYet    = errors.New("offer is not valid yet")
    ErrOfferExpired   = errors.New("offer has expired")
    ErrMinPurchase    = errors.New("minimum purchase not met")
    ErrOfferExhausted = errors.New("offer usage limit reached")
)

// SeatPriceCents returns the price of one seat for a schedule: the
// schedule's base price scaled by the seat's multiplier, rounded to
// the nearest cent.  A zero or negative multiplier is treated as 1.
func SeatPriceCents(schedule *model.Schedule, seat *model.SeatLayout) uint32 {
    mult := seat.PriceMultiplier
    if mult <= 0 {
        mult = 1
    }
    return uint32(math.Round(float64(schedule.PriceMinCents) * mult))
}

// EvaluateOffer validates an offer against an order total at the
// given instant and returns the discount in cents.  The checks run
// in a fixed order so that the first failing rule determines the
// error: active flag, validity window (inclusive on both ends),
// minimum purchase (skipped when zero), usage limit.
//
// Percentage discounts are capped at MaxDiscount when set.  Fixed
// discounts are returned as-is even when they exceed the total; the
// final amount is floored at zero by the selection.
func EvaluateOffer(offer *model.Offer, totalCents uint32, now time.Time) (uint32, error) {
    if !offer.IsActive {
        return 0, ErrOfferInactive
    }
    if now.Before(offer.ValidFrom) {
        return 0, ErrOfferNotYet
    }
    if now.After(offer.ValidUntil) {
        return 0, ErrOfferExpired
    }
    if offer.MinPurchase > 0 && totalCents < offer.MinPurchase {
        return 0, ErrMinPurchase
    }
    if offer.UsageLimit != nil && offer.UsedCount >= *offer.UsageLimit {
        return 0, ErrOfferExhausted
    }

    switch offer.DiscountType {
    case model.DiscountTypePercentage:
        discount := uint32(math.Round(float64(totalCents) * float64(offer.DiscountValue) / 100))
        if offer.MaxDiscount != nil && discount > *offer.MaxDiscount {
            discount = *offer.MaxDiscount
        }
        return discount, nil
    default: // fixed
        return offer.DiscountValue, nil
    }
}
