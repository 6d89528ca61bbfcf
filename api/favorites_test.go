package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/velopool/bikeshare/internal/domain"
)

// MockFavoriteRepository is a mock implementation of repository.FavoriteRepository.
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserFavorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserFavorite), args.Error(1)
}

func (m *MockFavoriteRepository) Toggle(ctx context.Context, userID, stationID int64) (*domain.Favorite, error) {
	args := m.Called(ctx, userID, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, userID, favoriteID int64) error {
	args := m.Called(ctx, userID, favoriteID)
	return args.Error(0)
}

func TestFavoriteHandler_toggle_added(t *testing.T) {
	mockRepo := &MockFavoriteRepository{}
	handler := NewFavoriteHandler(mockRepo)

	c, w := newTestContext(t, "POST", "/api/favorites/", toggleFavoriteRequest{StationID: 3}, 7)

	fav := &domain.Favorite{ID: 11, UserID: 7, StationID: 3, CreatedAt: time.Now()}
	mockRepo.On("Toggle", c.Request.Context(), int64(7), int64(3)).Return(fav, nil)

	handler.toggle(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["favorited"])
	assert.Equal(t, float64(11), response["id"])

	mockRepo.AssertExpectations(t)
}

func TestFavoriteHandler_toggle_removed(t *testing.T) {
	mockRepo := &MockFavoriteRepository{}
	handler := NewFavoriteHandler(mockRepo)

	c, w := newTestContext(t, "POST", "/api/favorites/", toggleFavoriteRequest{StationID: 3}, 7)

	// A nil favorite means the toggle removed an existing one.
	mockRepo.On("Toggle", c.Request.Context(), int64(7), int64(3)).Return(nil, nil)

	handler.toggle(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["favorited"])

	mockRepo.AssertExpectations(t)
}

func TestFavoriteHandler_delete_forbidden(t *testing.T) {
	mockRepo := &MockFavoriteRepository{}
	handler := NewFavoriteHandler(mockRepo)

	c, w := newTestContext(t, "DELETE", "/api/favorites/11", nil, 9)
	c.Params = gin.Params{{Key: "id", Value: "11"}}

	mockRepo.On("Delete", c.Request.Context(), int64(9), int64(11)).Return(domain.ErrForbidden)

	handler.delete(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRepo.AssertExpectations(t)
}
