package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/velopool/bikeshare/internal/domain"
)

// MockStationUseCase is a mock implementation of stations.UseCase.
type MockStationUseCase struct {
	mock.Mock
}

func (m *MockStationUseCase) List(ctx context.Context) ([]domain.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *MockStationUseCase) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationUseCase) Create(ctx context.Context, station *domain.Station) error {
	args := m.Called(ctx, station)
	return args.Error(0)
}

func (m *MockStationUseCase) Update(ctx context.Context, station *domain.Station) error {
	args := m.Called(ctx, station)
	return args.Error(0)
}

func (m *MockStationUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStationUseCase) ToggleOpen(ctx context.Context, id int64) (*domain.Station, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationUseCase) AdjustInventory(ctx context.Context, id int64, delta int) (*domain.Station, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationUseCase) SetCapacity(ctx context.Context, id int64, capacity int) (*domain.Station, error) {
	args := m.Called(ctx, id, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationUseCase) Stats(ctx context.Context) ([]domain.StationStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StationStat), args.Error(1)
}

func (m *MockStationUseCase) RefreshStats(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestStationHandler_list(t *testing.T) {
	mockService := &MockStationUseCase{}
	handler := NewStationHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/stations", nil)

	stations := []domain.Station{
		{ID: 1, Name: "Central", Capacity: 20, Available: 8, Open: true},
		{ID: 2, Name: "Harbor", Capacity: 12, Available: 0, Open: false},
	}
	mockService.On("List", c.Request.Context()).Return(stations, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Station
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 2)
	assert.Equal(t, "Central", response[0].Name)

	mockService.AssertExpectations(t)
}

func TestStationHandler_get(t *testing.T) {
	mockService := &MockStationUseCase{}
	handler := NewStationHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/api/stations/1", nil)

	station := &domain.Station{ID: 1, Name: "Central", Capacity: 20, Available: 8, Open: true}
	mockService.On("GetByID", c.Request.Context(), int64(1)).Return(station, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestStationHandler_get_notFound(t *testing.T) {
	mockService := &MockStationUseCase{}
	handler := NewStationHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("GET", "/api/stations/99", nil)

	mockService.On("GetByID", c.Request.Context(), int64(99)).Return(nil, domain.ErrStationNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestStationHandler_get_badID(t *testing.T) {
	handler := NewStationHandler(&MockStationUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/api/stations/abc", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_adjustInventory(t *testing.T) {
	mockService := &MockStationUseCase{}
	handler := NewAdminHandler(mockService, nil)

	c, w := newTestContext(t, "POST", "/api/admin/stations/1/inventory", inventoryRequest{Delta: -3}, 1)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	station := &domain.Station{ID: 1, Name: "Central", Capacity: 20, Available: 5, Open: true}
	mockService.On("AdjustInventory", c.Request.Context(), int64(1), -3).Return(station, nil)

	handler.adjustInventory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestAdminHandler_updateStation_zeroCoordinates(t *testing.T) {
	mockService := &MockStationUseCase{}
	handler := NewAdminHandler(mockService, nil)

	// Moving a station to lat/lng 0 must stick; omitted fields keep their
	// current value.
	c, w := newTestContext(t, "PUT", "/api/admin/stations/1", gin.H{"lat": 0, "lng": 0}, 1)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	current := &domain.Station{ID: 1, Name: "Central", Lat: 48.2, Lng: 16.4, Capacity: 20, Available: 5, Open: true}
	mockService.On("GetByID", c.Request.Context(), int64(1)).Return(current, nil)
	mockService.On("Update", c.Request.Context(), mock.MatchedBy(func(s *domain.Station) bool {
		return s.Lat == 0 && s.Lng == 0 && s.Name == "Central"
	})).Return(nil)

	handler.updateStation(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestAdminHandler_setCapacity_invalid(t *testing.T) {
	mockService := &MockStationUseCase{}
	handler := NewAdminHandler(mockService, nil)

	c, w := newTestContext(t, "POST", "/api/admin/stations/1/capacity", capacityRequest{Capacity: -1}, 1)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	mockService.On("SetCapacity", c.Request.Context(), int64(1), -1).Return(nil, domain.ErrInvalidInput)

	handler.setCapacity(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertExpectations(t)
}
