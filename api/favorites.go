package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velopool/bikeshare/internal/auth"
	"github.com/velopool/bikeshare/internal/repository"
)

type FavoriteHandler struct {
	favorites repository.FavoriteRepository
}

type toggleFavoriteRequest struct {
	StationID int64 `json:"stationId" binding:"required"`
}

func NewFavoriteHandler(favorites repository.FavoriteRepository) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

func (h *FavoriteHandler) Register(router *gin.RouterGroup) {
	router.GET("/me", h.listMine)
	router.POST("/", h.toggle)
	router.DELETE("/:id", h.delete)
}

func (h *FavoriteHandler) listMine(c *gin.Context) {
	claims := auth.FromContext(c)
	favorites, err := h.favorites.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *FavoriteHandler) toggle(c *gin.Context) {
	var req toggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing stationId"})
		return
	}

	claims := auth.FromContext(c)
	fav, err := h.favorites.Toggle(c.Request.Context(), claims.UserID, req.StationID)
	if err != nil {
		respondError(c, err)
		return
	}
	if fav == nil {
		c.JSON(http.StatusOK, gin.H{"favorited": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": true, "id": fav.ID, "createdAt": fav.CreatedAt})
}

func (h *FavoriteHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	claims := auth.FromContext(c)
	if err := h.favorites.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
