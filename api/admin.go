package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velopool/bikeshare/internal/domain"
	"github.com/velopool/bikeshare/internal/repository"
	"github.com/velopool/bikeshare/internal/service/stations"
)

// AdminHandler groups station and user management. Routes must be mounted
// behind the auth and admin-only middleware.
type AdminHandler struct {
	stations stations.UseCase
	users    repository.UserRepository
}

type stationRequest struct {
	Name      string   `json:"name"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Capacity  int      `json:"capacity"`
	Available int      `json:"available"`
	Open      *bool    `json:"open"`
}

type inventoryRequest struct {
	Delta int `json:"delta"`
}

type capacityRequest struct {
	Capacity int `json:"capacity"`
}

type roleRequest struct {
	Role string `json:"role"`
}

func NewAdminHandler(stations stations.UseCase, users repository.UserRepository) *AdminHandler {
	return &AdminHandler{stations: stations, users: users}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/stations", h.listStations)
	router.POST("/stations", h.createStation)
	router.PUT("/stations/:id", h.updateStation)
	router.DELETE("/stations/:id", h.deleteStation)
	router.PUT("/stations/:id/toggle", h.toggleStation)
	router.POST("/stations/:id/inventory", h.adjustInventory)
	router.POST("/stations/:id/capacity", h.setCapacity)
	router.GET("/users", h.listUsers)
	router.GET("/users/:id", h.getUser)
	router.PUT("/users/:id/role", h.setRole)
}

func (h *AdminHandler) listStations(c *gin.Context) {
	list, err := h.stations.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) createStation(c *gin.Context) {
	var req stationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Capacity == 0 {
		req.Capacity = 10
	}
	open := true
	if req.Open != nil {
		open = *req.Open
	}

	station := &domain.Station{
		Name:      req.Name,
		Capacity:  req.Capacity,
		Available: req.Available,
		Open:      open,
	}
	if req.Lat != nil {
		station.Lat = *req.Lat
	}
	if req.Lng != nil {
		station.Lng = *req.Lng
	}
	if err := h.stations.Create(c.Request.Context(), station); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, station)
}

func (h *AdminHandler) updateStation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req stationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.stations.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Name != "" {
		current.Name = req.Name
	}
	if req.Lat != nil {
		current.Lat = *req.Lat
	}
	if req.Lng != nil {
		current.Lng = *req.Lng
	}
	if req.Open != nil {
		current.Open = *req.Open
	}

	if err := h.stations.Update(c.Request.Context(), current); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, current)
}

func (h *AdminHandler) deleteStation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.stations.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) toggleStation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	station, err := h.stations.ToggleOpen(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, station)
}

func (h *AdminHandler) adjustInventory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	station, err := h.stations.AdjustInventory(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, station)
}

func (h *AdminHandler) setCapacity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req capacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	station, err := h.stations.SetCapacity(c.Request.Context(), id, req.Capacity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, station)
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) setRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Role != domain.RoleUser && req.Role != domain.RoleAdmin) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	user, err := h.users.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// parseID reads the :id path param and writes the 400 itself on failure.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
