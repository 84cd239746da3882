package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-booking/internal/model"
	"github.com/iliyamo/ticket-booking/internal/queue"
	"github.com/iliyamo/ticket-booking/internal/repository"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Commit(ctx context.Context, p repository.CommitParams) (*model.Booking, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Create(ctx context.Context, userID uint64, title, message, ntype string, link *string) error {
	args := m.Called(ctx, userID, title, message, ntype, link)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockSelections struct {
	mock.Mock
}

func (m *MockSelections) Clear(ctx context.Context, userID uint64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func checkoutSelection() *Selection {
	sel := &Selection{}
	sel.SelectSchedule(7, 42)
	// two regular seats at 300 each
	_, _ = sel.ToggleSeat(SelectedSeat{SeatID: 1, SectionName: "Stalls", RowName: "A", SeatNumber: 1, PriceCents: 300})
	_, _ = sel.ToggleSeat(SelectedSeat{SeatID: 2, SectionName: "Stalls", RowName: "A", SeatNumber: 2, PriceCents: 300})
	// 10% off, no cap
	_ = sel.ApplyOffer("SAVE10", 60)
	return sel
}

func TestCommitter_CommitPersistsSelectionAmounts(t *testing.T) {
	store := &MockStore{}
	notifier := &MockNotifier{}
	publisher := &MockPublisher{}
	selections := &MockSelections{}

	var captured repository.CommitParams
	store.On("Commit", mock.Anything, mock.MatchedBy(func(p repository.CommitParams) bool {
		captured = p
		return true
	})).Return(&model.Booking{
		ID:            99,
		UserID:        5,
		EventID:       7,
		ScheduleID:    42,
		BookingNumber: "TKT1ABC2DEF",
		Status:        model.BookingStatusConfirmed,
		TotalCents:    600,
		DiscountCents: 60,
		FinalCents:    540,
		PaymentMethod: "upi",
		PaymentStatus: model.PaymentStatusPaid,
	}, nil)
	notifier.On("Create", mock.Anything, uint64(5), mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishBookingConfirmed", mock.Anything, mock.Anything).Return(nil)
	selections.On("Clear", mock.Anything, uint64(5)).Return(nil)

	c := NewCommitter(store, notifier, publisher, selections)
	b, err := c.Commit(context.Background(), CommitInput{
		UserID:        5,
		EventTitle:    "Hamlet",
		PaymentMethod: "upi",
		Selection:     checkoutSelection(),
	})
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusConfirmed, b.Status)
	assert.Equal(t, uint32(600), captured.TotalCents)
	assert.Equal(t, uint32(60), captured.DiscountCents)
	assert.Equal(t, uint32(540), captured.FinalCents)
	assert.Equal(t, "SAVE10", captured.OfferCode)
	assert.Len(t, captured.Seats, 2)
	assert.True(t, strings.HasPrefix(captured.BookingNumber, "TKT"))
	// seat rows carry the schedule id and denormalized labels
	for _, s := range captured.Seats {
		assert.Equal(t, uint64(42), s.ScheduleID)
		assert.Equal(t, "Stalls", s.SectionName)
		assert.Equal(t, uint32(300), s.PriceCents)
	}

	// both notifications, one event, selection cleared
	notifier.AssertNumberOfCalls(t, "Create", 2)
	publisher.AssertNumberOfCalls(t, "PublishBookingConfirmed", 1)
	selections.AssertNumberOfCalls(t, "Clear", 1)
}

func TestCommitter_EmptySelectionRejected(t *testing.T) {
	c := NewCommitter(&MockStore{}, nil, nil, nil)

	_, err := c.Commit(context.Background(), CommitInput{UserID: 5, Selection: &Selection{}})
	assert.ErrorIs(t, err, ErrNoSchedule)

	sel := &Selection{}
	sel.SelectSchedule(7, 42)
	_, err = c.Commit(context.Background(), CommitInput{UserID: 5, Selection: sel})
	assert.ErrorIs(t, err, ErrNoSeats)
}

func TestCommitter_StoreFailureSurfacesAndSkipsSideEffects(t *testing.T) {
	store := &MockStore{}
	notifier := &MockNotifier{}
	selections := &MockSelections{}
	store.On("Commit", mock.Anything, mock.Anything).Return(nil, repository.ErrSeatTaken)

	c := NewCommitter(store, notifier, nil, selections)
	_, err := c.Commit(context.Background(), CommitInput{
		UserID:        5,
		PaymentMethod: "card",
		Selection:     checkoutSelection(),
	})
	assert.ErrorIs(t, err, repository.ErrSeatTaken)
	notifier.AssertNotCalled(t, "Create")
	selections.AssertNotCalled(t, "Clear")
}

func TestCommitter_NotificationFailureDoesNotFailBooking(t *testing.T) {
	store := &MockStore{}
	notifier := &MockNotifier{}
	store.On("Commit", mock.Anything, mock.Anything).Return(&model.Booking{
		ID: 1, UserID: 5, BookingNumber: "TKT1", Status: model.BookingStatusConfirmed,
	}, nil)
	notifier.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("notifications table unavailable"))

	c := NewCommitter(store, notifier, nil, nil)
	b, err := c.Commit(context.Background(), CommitInput{
		UserID:        5,
		PaymentMethod: "wallet",
		Selection:     checkoutSelection(),
	})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)
}

func TestNewBookingNumber(t *testing.T) {
	n1, err := NewBookingNumber(time.Now())
	require.NoError(t, err)
	n2, err := NewBookingNumber(time.Now())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(n1, "TKT"))
	assert.Equal(t, strings.ToUpper(n1), n1)
	assert.NotEqual(t, n1, n2)
}
