package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatFixture(id uint64, price uint32) SelectedSeat {
	return SelectedSeat{
		SeatID:      id,
		SectionName: "Stalls",
		RowName:     "A",
		SeatNumber:  uint32(id),
		SeatType:    "regular",
		PriceCents:  price,
	}
}

func TestSelection_TotalsTrackSeatPrices(t *testing.T) {
	sel := &Selection{}
	sel.SelectSchedule(1, 10)

	for i, price := range []uint32{300, 450, 250} {
		_, err := sel.ToggleSeat(seatFixture(uint64(i+1), price))
		require.NoError(t, err)
	}
	assert.Equal(t, uint32(1000), sel.TotalCents())
	assert.Equal(t, uint32(1000), sel.FinalCents())

	// removing a seat adjusts the total
	added, err := sel.ToggleSeat(seatFixture(2, 450))
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, uint32(550), sel.TotalCents())
}

func TestSelection_EleventhSeatRejected(t *testing.T) {
	sel := &Selection{}
	sel.SelectSchedule(1, 10)
	for i := 1; i <= MaxSelectedSeats; i++ {
		_, err := sel.ToggleSeat(seatFixture(uint64(i), 300))
		require.NoError(t, err)
	}

	_, err := sel.ToggleSeat(seatFixture(11, 300))
	assert.ErrorIs(t, err, ErrMaxSeats)
	// the rejection is a no-op: selection unchanged, retry changes nothing
	assert.Len(t, sel.Seats, MaxSelectedSeats)
	_, err = sel.ToggleSeat(seatFixture(11, 300))
	assert.ErrorIs(t, err, ErrMaxSeats)
	assert.Len(t, sel.Seats, MaxSelectedSeats)

	// toggling an already-selected seat still works at the cap
	added, err := sel.ToggleSeat(seatFixture(5, 300))
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, sel.Seats, MaxSelectedSeats-1)
}

func TestSelection_ToggleWithoutSchedule(t *testing.T) {
	sel := &Selection{}
	_, err := sel.ToggleSeat(seatFixture(1, 300))
	assert.ErrorIs(t, err, ErrNoSchedule)
}

func TestSelection_SwitchingScheduleClearsSeatsAndOffer(t *testing.T) {
	sel := &Selection{}
	sel.SelectSchedule(1, 10)
	_, err := sel.ToggleSeat(seatFixture(1, 300))
	require.NoError(t, err)
	require.NoError(t, sel.ApplyOffer("SAVE10", 30))

	sel.SelectSchedule(1, 20)
	assert.Empty(t, sel.Seats)
	assert.Empty(t, sel.OfferCode)
	assert.Zero(t, sel.DiscountCents)
	assert.Equal(t, uint64(20), sel.ScheduleID)

	// re-selecting the same schedule keeps the picks
	_, err = sel.ToggleSeat(seatFixture(2, 300))
	require.NoError(t, err)
	sel.SelectSchedule(1, 20)
	assert.Len(t, sel.Seats, 1)
}

func TestSelection_OfferSetAndClearedTogether(t *testing.T) {
	sel := &Selection{}
	sel.SelectSchedule(1, 10)
	_, err := sel.ToggleSeat(seatFixture(1, 600))
	require.NoError(t, err)

	require.NoError(t, sel.ApplyOffer("SAVE10", 60))
	assert.Equal(t, uint32(540), sel.FinalCents())

	// applying on top of an active offer requires explicit removal
	assert.ErrorIs(t, sel.ApplyOffer("OTHER", 100), ErrOfferApplied)
	assert.Equal(t, "SAVE10", sel.OfferCode)

	sel.ClearOffer()
	assert.Empty(t, sel.OfferCode)
	assert.Zero(t, sel.DiscountCents)
	assert.Equal(t, uint32(600), sel.FinalCents())
}

func TestSelection_FinalAmountFlooredAtZero(t *testing.T) {
	sel := &Selection{}
	sel.SelectSchedule(1, 10)
	_, err := sel.ToggleSeat(seatFixture(1, 100))
	require.NoError(t, err)
	require.NoError(t, sel.ApplyOffer("BIGFIXED", 150))

	assert.Equal(t, uint32(100), sel.TotalCents())
	assert.Equal(t, uint32(0), sel.FinalCents())
}

func TestSelection_Reset(t *testing.T) {
	sel := &Selection{}
	sel.SelectSchedule(1, 10)
	_, err := sel.ToggleSeat(seatFixture(1, 300))
	require.NoError(t, err)
	require.NoError(t, sel.ApplyOffer("SAVE10", 30))

	sel.Reset()
	assert.Equal(t, Selection{}, *sel)
}
