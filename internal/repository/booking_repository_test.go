package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/ticket-booking/internal/model"
)

func TestPartitionByTime(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	details := []BookingDetail{
		{ID: 1, Status: model.BookingStatusConfirmed, StartTime: tomorrow},
		{ID: 2, Status: model.BookingStatusConfirmed, StartTime: yesterday},
		{ID: 3, Status: model.BookingStatusCancelled, StartTime: tomorrow},
		{ID: 4, Status: model.BookingStatusConfirmed, StartTime: now},
	}

	upcoming, past := PartitionByTime(details, now)

	// only the future, non-cancelled booking is upcoming; a cancelled
	// booking is past even though its schedule has not started
	assert.Len(t, upcoming, 1)
	assert.Equal(t, uint64(1), upcoming[0].ID)

	assert.Len(t, past, 3)
	assert.Equal(t, uint64(2), past[0].ID)
	assert.Equal(t, uint64(3), past[1].ID)
	assert.Equal(t, uint64(4), past[2].ID)
}

func TestPartitionByTime_IgnoresCreationOrder(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// booked in the opposite order of their start times
	details := []BookingDetail{
		{ID: 1, Status: model.BookingStatusConfirmed, StartTime: now.Add(-time.Hour)},
		{ID: 2, Status: model.BookingStatusConfirmed, StartTime: now.Add(time.Hour)},
	}

	upcoming, past := PartitionByTime(details, now)
	assert.Len(t, upcoming, 1)
	assert.Equal(t, uint64(2), upcoming[0].ID)
	assert.Len(t, past, 1)
	assert.Equal(t, uint64(1), past[0].ID)
}
