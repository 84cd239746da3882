package handler

import (
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

func toggleSeatContext(userID uint64, seatID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/selection/seats/"+seatID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/selection/seats/:seatID")
	c.SetParamNames("seatID")
	c.SetParamValues(seatID)
	c.Set("user_id", userID)
	return c, rec
}

func TestToggleSeat_RejectsBookedSeat(t *testing.T) {
	store := &MockSelectionStore{}
	schedules := &MockScheduleSource{}
	seats := &MockSeatSource{}
	offers := &MockOfferSource{}

	store.On("Get", mock.Anything, uint64(9)).
		Return(&booking.Selection{EventID: 5, ScheduleID: 42}, nil)
	schedules.On("GetScheduleByID", mock.Anything, uint64(42)).
		Return(&model.Schedule{ID: 42, EventID: 5, VenueID: 7, PriceMinCents: 300, IsActive: true}, nil)
	seats.On("GetByIDs", mock.Anything, uint64(7), []uint64{3}).
		Return([]model.SeatLayout{
			{ID: 3, VenueID: 7, SectionName: "Stalls", RowName: "A", SeatNumber: 2, SeatType: model.SeatTypeRegular, PriceMultiplier: 1, IsActive: true},
		}, nil)
	seats.On("BookedSeatIDs", mock.Anything, uint64(42)).
		Return(map[uint64]struct{}{3: {}}, nil)

	h := NewSelectionHandler(store, schedules, seats, offers)
	c, rec := toggleSeatContext(9, "3")
	require.NoError(t, h.ToggleSeat(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "seat already booked", resp["error"])
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleSeat_AddsAvailableSeat(t *testing.T) {
	store := &MockSelectionStore{}
	schedules := &MockScheduleSource{}
	seats := &MockSeatSource{}
	offers := &MockOfferSource{}

	store.On("Get", mock.Anything, uint64(9)).
		Return(&booking.Selection{EventID: 5, ScheduleID: 42}, nil)
	store.On("Save", mock.Anything, uint64(9), mock.Anything).Return(nil)
	schedules.On("GetScheduleByID", mock.Anything, uint64(42)).
		Return(&model.Schedule{ID: 42, EventID: 5, VenueID: 7, PriceMinCents: 300, IsActive: true}, nil)
	seats.On("GetByIDs", mock.Anything, uint64(7), []uint64{4}).
		Return([]model.SeatLayout{
			{ID: 4, VenueID: 7, SectionName: "Stalls", RowName: "B", SeatNumber: 1, SeatType: model.SeatTypePremium, PriceMultiplier: 1.5, IsActive: true},
		}, nil)
	seats.On("BookedSeatIDs", mock.Anything, uint64(42)).
		Return(map[uint64]struct{}{3: {}}, nil)

	h := NewSelectionHandler(store, schedules, seats, offers)
	c, rec := toggleSeatContext(9, "4")
	require.NoError(t, h.ToggleSeat(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Added     bool          `json:"added"`
		Selection selectionResp `json:"selection"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Added)
	require.Len(t, resp.Selection.Seats, 1)
	assert.Equal(t, uint64(4), resp.Selection.Seats[0].SeatID)
	assert.Equal(t, uint32(450), resp.Selection.Seats[0].PriceCents)
	assert.Equal(t, uint32(450), resp.Selection.TotalCents)
	store.AssertExpectations(t)
}

func TestToggleSeat_UnknownSeatNotFound(t *testing.T) {
	store := &MockSelectionStore{}
	schedules := &MockScheduleSource{}
	seats := &MockSeatSource{}
	offers := &MockOfferSource{}

	store.On("Get", mock.Anything, uint64(9)).
		Return(&booking.Selection{EventID: 5, ScheduleID: 42}, nil)
	schedules.On("GetScheduleByID", mock.Anything, uint64(42)).
		Return(&model.Schedule{ID: 42, EventID: 5, VenueID: 7, PriceMinCents: 300, IsActive: true}, nil)
	seats.On("GetByIDs", mock.Anything, uint64(7), []uint64{99}).
		Return([]model.SeatLayout{}, nil)

	h := NewSelectionHandler(store, schedules, seats, offers)
	c, rec := toggleSeatContext(9, "99")
	require.NoError(t, h.ToggleSeat(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}
