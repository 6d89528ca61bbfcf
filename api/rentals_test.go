package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/velopool/bikeshare/internal/auth"
	"github.com/velopool/bikeshare/internal/domain"
)

// MockRentalUseCase is a mock implementation of rental.UseCase.
type MockRentalUseCase struct {
	mock.Mock
}

func (m *MockRentalUseCase) Rent(ctx context.Context, userID, stationID int64) (*domain.Rental, error) {
	args := m.Called(ctx, userID, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalUseCase) Return(ctx context.Context, userID, rentalID, stationID int64) (*domain.Rental, error) {
	args := m.Called(ctx, userID, rentalID, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalUseCase) ListForUser(ctx context.Context, userID int64) ([]domain.UserRental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRental), args.Error(1)
}

func newTestContext(t *testing.T, method, path string, body interface{}, userID int64) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")

	auth.SetClaims(c, &auth.Claims{UserID: userID, Username: "rider", Role: domain.RoleUser})
	return c, w
}

func TestRentalHandler_rent(t *testing.T) {
	mockService := &MockRentalUseCase{}
	handler := NewRentalHandler(mockService)

	c, w := newTestContext(t, "POST", "/api/rentals/rent", rentRequest{StationID: 1}, 7)

	rental := &domain.Rental{
		ID:            42,
		UserID:        7,
		FromStationID: 1,
		Status:        domain.RentalStatusActive,
		StartedAt:     time.Now(),
	}
	mockService.On("Rent", c.Request.Context(), int64(7), int64(1)).Return(rental, nil)

	handler.rent(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response rentalResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(42), response.RentalID)
	assert.Equal(t, "active", response.Status)

	mockService.AssertExpectations(t)
}

func TestRentalHandler_rent_errorMapping(t *testing.T) {
	testCases := []struct {
		err  error
		code int
	}{
		{err: domain.ErrStationNotFound, code: http.StatusNotFound},
		{err: domain.ErrStationClosed, code: http.StatusConflict},
		{err: domain.ErrNoBikesAvailable, code: http.StatusConflict},
		{err: domain.ErrInvalidInput, code: http.StatusBadRequest},
		{err: domain.ErrLockTimeout, code: http.StatusServiceUnavailable},
		{err: domain.ErrStore, code: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			mockService := &MockRentalUseCase{}
			handler := NewRentalHandler(mockService)

			c, w := newTestContext(t, "POST", "/api/rentals/rent", rentRequest{StationID: 1}, 7)
			mockService.On("Rent", c.Request.Context(), int64(7), int64(1)).Return(nil, tc.err)

			handler.rent(c)

			assert.Equal(t, tc.code, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestRentalHandler_rent_badBody(t *testing.T) {
	handler := NewRentalHandler(&MockRentalUseCase{})

	c, w := newTestContext(t, "POST", "/api/rentals/rent", gin.H{"stationId": "nope"}, 7)
	handler.rent(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRentalHandler_returnBike(t *testing.T) {
	mockService := &MockRentalUseCase{}
	handler := NewRentalHandler(mockService)

	c, w := newTestContext(t, "POST", "/api/rentals/return", returnRequest{RentalID: 42, StationID: 1}, 7)

	station := int64(1)
	ended := time.Now()
	rental := &domain.Rental{
		ID:            42,
		UserID:        7,
		FromStationID: 1,
		ToStationID:   &station,
		Status:        domain.RentalStatusReturned,
		EndedAt:       &ended,
	}
	mockService.On("Return", c.Request.Context(), int64(7), int64(42), int64(1)).Return(rental, nil)

	handler.returnBike(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response rentalResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(42), response.RentalID)
	assert.Equal(t, "returned", response.Status)

	mockService.AssertExpectations(t)
}

func TestRentalHandler_returnBike_forbidden(t *testing.T) {
	mockService := &MockRentalUseCase{}
	handler := NewRentalHandler(mockService)

	c, w := newTestContext(t, "POST", "/api/rentals/return", returnRequest{RentalID: 42, StationID: 1}, 9)
	mockService.On("Return", c.Request.Context(), int64(9), int64(42), int64(1)).Return(nil, domain.ErrForbidden)

	handler.returnBike(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertExpectations(t)
}

func TestRentalHandler_returnBike_alreadyReturned(t *testing.T) {
	mockService := &MockRentalUseCase{}
	handler := NewRentalHandler(mockService)

	c, w := newTestContext(t, "POST", "/api/rentals/return", returnRequest{RentalID: 42, StationID: 1}, 7)
	mockService.On("Return", c.Request.Context(), int64(7), int64(42), int64(1)).Return(nil, domain.ErrAlreadyReturned)

	handler.returnBike(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}

func TestRentalHandler_listMine(t *testing.T) {
	mockService := &MockRentalUseCase{}
	handler := NewRentalHandler(mockService)

	c, w := newTestContext(t, "GET", "/api/rentals/me", nil, 7)

	station := domain.StationRef{ID: 1, Name: "Central"}
	rentals := []domain.UserRental{
		{ID: 42, Status: domain.RentalStatusReturned, FromStation: station, ToStation: &station},
		{ID: 43, Status: domain.RentalStatusActive, FromStation: station},
	}
	mockService.On("ListForUser", c.Request.Context(), int64(7)).Return(rentals, nil)

	handler.listMine(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.UserRental
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 2)
	assert.Equal(t, "Central", response[0].FromStation.Name)
	assert.Nil(t, response[1].ToStation)

	mockService.AssertExpectations(t)
}
