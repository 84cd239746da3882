package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-booking/internal/model"
)

func offerFixture(mutate func(*model.Offer)) *model.Offer {
	now := time.Now().UTC()
	o := &model.Offer{
		ID:            1,
		Code:          "SAVE10",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: 10,
		ValidFrom:     now.Add(-24 * time.Hour),
		ValidUntil:    now.Add(24 * time.Hour),
		IsActive:      true,
	}
	if mutate != nil {
		mutate(o)
	}
	return o
}

func TestSeatPriceCents(t *testing.T) {
	schedule := &model.Schedule{PriceMinCents: 30000}

	assert.Equal(t, uint32(30000), SeatPriceCents(schedule, &model.SeatLayout{PriceMultiplier: 1}))
	assert.Equal(t, uint32(45000), SeatPriceCents(schedule, &model.SeatLayout{PriceMultiplier: 1.5}))
	assert.Equal(t, uint32(60000), SeatPriceCents(schedule, &model.SeatLayout{PriceMultiplier: 2}))
	// zero multiplier falls back to the base price
	assert.Equal(t, uint32(30000), SeatPriceCents(schedule, &model.SeatLayout{PriceMultiplier: 0}))
}

func TestEvaluateOffer_OutsideWindow(t *testing.T) {
	now := time.Now().UTC()

	notYet := offerFixture(func(o *model.Offer) {
		o.ValidFrom = now.Add(time.Hour)
		o.ValidUntil = now.Add(48 * time.Hour)
	})
	_, err := EvaluateOffer(notYet, 1000, now)
	assert.ErrorIs(t, err, ErrOfferNotYet)

	expired := offerFixture(func(o *model.Offer) {
		o.ValidFrom = now.Add(-48 * time.Hour)
		o.ValidUntil = now.Add(-time.Hour)
	})
	_, err = EvaluateOffer(expired, 1000, now)
	assert.ErrorIs(t, err, ErrOfferExpired)

	// the window bounds themselves are valid
	boundary := offerFixture(func(o *model.Offer) {
		o.ValidFrom = now
		o.ValidUntil = now
	})
	_, err = EvaluateOffer(boundary, 1000, now)
	assert.NoError(t, err)
}

func TestEvaluateOffer_Inactive(t *testing.T) {
	o := offerFixture(func(o *model.Offer) { o.IsActive = false })
	_, err := EvaluateOffer(o, 1000, time.Now().UTC())
	assert.ErrorIs(t, err, ErrOfferInactive)
}

func TestEvaluateOffer_MinPurchase(t *testing.T) {
	o := offerFixture(func(o *model.Offer) { o.MinPurchase = 500 })

	_, err := EvaluateOffer(o, 499, time.Now().UTC())
	assert.ErrorIs(t, err, ErrMinPurchase)

	_, err = EvaluateOffer(o, 500, time.Now().UTC())
	assert.NoError(t, err)
}

func TestEvaluateOffer_PercentageCapped(t *testing.T) {
	cap := uint32(100)
	o := offerFixture(func(o *model.Offer) {
		o.DiscountValue = 20
		o.MaxDiscount = &cap
	})

	discount, err := EvaluateOffer(o, 1000, time.Now().UTC())
	require.NoError(t, err)
	// 20% of 1000 is 200, capped at 100
	assert.Equal(t, uint32(100), discount)
}

func TestEvaluateOffer_PercentageUncapped(t *testing.T) {
	o := offerFixture(func(o *model.Offer) { o.DiscountValue = 10 })

	discount, err := EvaluateOffer(o, 60000, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, uint32(6000), discount)
}

func TestEvaluateOffer_FixedExceedsTotal(t *testing.T) {
	o := offerFixture(func(o *model.Offer) {
		o.DiscountType = model.DiscountTypeFixed
		o.DiscountValue = 150
	})

	discount, err := EvaluateOffer(o, 100, time.Now().UTC())
	require.NoError(t, err)
	// fixed discounts are not clamped here; the selection floors the final amount
	assert.Equal(t, uint32(150), discount)
}

func TestEvaluateOffer_UsageLimit(t *testing.T) {
	limit := uint32(3)
	exhausted := offerFixture(func(o *model.Offer) {
		o.UsageLimit = &limit
		o.UsedCount = 3
	})
	_, err := EvaluateOffer(exhausted, 1000, time.Now().UTC())
	assert.ErrorIs(t, err, ErrOfferExhausted)

	remaining := offerFixture(func(o *model.Offer) {
		o.UsageLimit = &limit
		o.UsedCount = 2
	})
	_, err = EvaluateOffer(remaining, 1000, time.Now().UTC())
	assert.NoError(t, err)
}
