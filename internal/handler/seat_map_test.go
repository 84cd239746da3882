package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-booking/internal/booking"
	"github.com/iliyamo/ticket-booking/internal/model"
)

type MockScheduleSource struct {
	mock.Mock
}

func (m *MockScheduleSource) GetScheduleByID(ctx context.Context, id uint64) (*model.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Schedule), args.Error(1)
}

type MockSeatSource struct {
	mock.Mock
}

func (m *MockSeatSource) ListActiveByVenue(ctx context.Context, venueID uint64) ([]model.SeatLayout, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SeatLayout), args.Error(1)
}

func (m *MockSeatSource) BookedSeatIDs(ctx context.Context, scheduleID uint64) (map[uint64]struct{}, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]struct{}), args.Error(1)
}

func (m *MockSeatSource) GetByIDs(ctx context.Context, venueID uint64, ids []uint64) ([]model.SeatLayout, error) {
	args := m.Called(ctx, venueID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SeatLayout), args.Error(1)
}

type MockSelectionStore struct {
	mock.Mock
}

func (m *MockSelectionStore) Get(ctx context.Context, userID uint64) (*booking.Selection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Selection), args.Error(1)
}

func (m *MockSelectionStore) Save(ctx context.Context, userID uint64, sel *booking.Selection) error {
	args := m.Called(ctx, userID, sel)
	return args.Error(0)
}

type MockOfferSource struct {
	mock.Mock
}

func (m *MockOfferSource) GetActiveByCode(ctx context.Context, code string) (*model.Offer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func seatMapContext(scheduleID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/schedules/"+scheduleID+"/seats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/schedules/:id/seats")
	c.SetParamNames("id")
	c.SetParamValues(scheduleID)
	return c, rec
}

type seatMapResp struct {
	ScheduleID uint64        `json:"schedule_id"`
	HasLayout  bool          `json:"has_layout"`
	Sections   []sectionView `json:"sections"`
}

func venueLayout() []model.SeatLayout {
	return []model.SeatLayout{
		{ID: 1, VenueID: 7, SectionName: "Balcony", RowName: "A", SeatNumber: 1, SeatType: model.SeatTypeVIP, PriceMultiplier: 2, IsActive: true},
		{ID: 2, VenueID: 7, SectionName: "Stalls", RowName: "A", SeatNumber: 1, SeatType: model.SeatTypeRegular, PriceMultiplier: 1, IsActive: true},
		{ID: 3, VenueID: 7, SectionName: "Stalls", RowName: "A", SeatNumber: 2, SeatType: model.SeatTypeRegular, PriceMultiplier: 1, IsActive: true},
		{ID: 4, VenueID: 7, SectionName: "Stalls", RowName: "B", SeatNumber: 1, SeatType: model.SeatTypePremium, PriceMultiplier: 1.5, IsActive: true},
	}
}

func TestGetSeatMap_GroupsBySectionAndRow(t *testing.T) {
	schedules := &MockScheduleSource{}
	seats := &MockSeatSource{}
	schedules.On("GetScheduleByID", mock.Anything, uint64(42)).
		Return(&model.Schedule{ID: 42, VenueID: 7, PriceMinCents: 300, AvailableSeats: 3, IsActive: true}, nil)
	seats.On("ListActiveByVenue", mock.Anything, uint64(7)).Return(venueLayout(), nil)
	seats.On("BookedSeatIDs", mock.Anything, uint64(42)).Return(map[uint64]struct{}{3: {}}, nil)

	h := NewSeatMapHandler(schedules, seats, nil)
	c, rec := seatMapContext("42")
	require.NoError(t, h.GetSeatMap(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp seatMapResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.HasLayout)
	require.Len(t, resp.Sections, 2)

	// Layout order is section, row, seat number.
	assert.Equal(t, "Balcony", resp.Sections[0].Name)
	require.Len(t, resp.Sections[0].Rows, 1)
	require.Len(t, resp.Sections[0].Rows[0].Seats, 1)
	assert.Equal(t, uint32(600), resp.Sections[0].Rows[0].Seats[0].PriceCents)

	stalls := resp.Sections[1]
	assert.Equal(t, "Stalls", stalls.Name)
	require.Len(t, stalls.Rows, 2)
	assert.Equal(t, "A", stalls.Rows[0].Name)
	assert.Len(t, stalls.Rows[0].Seats, 2)
	assert.Equal(t, "B", stalls.Rows[1].Name)
	assert.Equal(t, uint32(450), stalls.Rows[1].Seats[0].PriceCents)
}

func TestGetSeatMap_MarksBookedSeatTaken(t *testing.T) {
	schedules := &MockScheduleSource{}
	seats := &MockSeatSource{}
	schedules.On("GetScheduleByID", mock.Anything, uint64(42)).
		Return(&model.Schedule{ID: 42, VenueID: 7, PriceMinCents: 300, AvailableSeats: 3, IsActive: true}, nil)
	seats.On("ListActiveByVenue", mock.Anything, uint64(7)).Return(venueLayout(), nil)
	seats.On("BookedSeatIDs", mock.Anything, uint64(42)).Return(map[uint64]struct{}{3: {}}, nil)

	h := NewSeatMapHandler(schedules, seats, nil)
	c, rec := seatMapContext("42")
	require.NoError(t, h.GetSeatMap(c))

	var resp seatMapResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	statuses := map[uint64]string{}
	for _, sec := range resp.Sections {
		for _, row := range sec.Rows {
			for _, s := range row.Seats {
				statuses[s.ID] = s.Status
			}
		}
	}
	assert.Equal(t, seatTaken, statuses[3])
	assert.Equal(t, seatAvailable, statuses[2])
	assert.Equal(t, seatAvailable, statuses[1])
}

func TestGetSeatMap_MarksOwnSelectionSelected(t *testing.T) {
	schedules := &MockScheduleSource{}
	seats := &MockSeatSource{}
	store := &MockSelectionStore{}
	schedules.On("GetScheduleByID", mock.Anything, uint64(42)).
		Return(&model.Schedule{ID: 42, VenueID: 7, PriceMinCents: 300, AvailableSeats: 3, IsActive: true}, nil)
	seats.On("ListActiveByVenue", mock.Anything, uint64(7)).Return(venueLayout(), nil)
	seats.On("BookedSeatIDs", mock.Anything, uint64(42)).Return(map[uint64]struct{}{}, nil)
	store.On("Get", mock.Anything, uint64(9)).Return(&booking.Selection{
		EventID:    5,
		ScheduleID: 42,
		Seats:      []booking.SelectedSeat{{SeatID: 2, PriceCents: 300}},
	}, nil)

	h := NewSeatMapHandler(schedules, seats, store)
	c, rec := seatMapContext("42")
	c.Set("user_id", uint64(9))
	require.NoError(t, h.GetSeatMap(c))

	var resp seatMapResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	statuses := map[uint64]string{}
	for _, sec := range resp.Sections {
		for _, row := range sec.Rows {
			for _, s := range row.Seats {
				statuses[s.ID] = s.Status
			}
		}
	}
	assert.Equal(t, seatSelected, statuses[2])
	assert.Equal(t, seatAvailable, statuses[1])
}

func TestGetSeatMap_EmptyLayoutIsExplicit(t *testing.T) {
	schedules := &MockScheduleSource{}
	seats := &MockSeatSource{}
	schedules.On("GetScheduleByID", mock.Anything, uint64(42)).
		Return(&model.Schedule{ID: 42, VenueID: 7, PriceMinCents: 300, IsActive: true}, nil)
	seats.On("ListActiveByVenue", mock.Anything, uint64(7)).Return([]model.SeatLayout{}, nil)

	h := NewSeatMapHandler(schedules, seats, nil)
	c, rec := seatMapContext("42")
	require.NoError(t, h.GetSeatMap(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp seatMapResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.HasLayout)
	assert.Empty(t, resp.Sections)
	seats.AssertNotCalled(t, "BookedSeatIDs", mock.Anything, mock.Anything)
}
