package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velopool/bikeshare/internal/auth"
	"github.com/velopool/bikeshare/internal/service/rental"
)

type RentalHandler struct {
	service rental.UseCase
}

type rentRequest struct {
	StationID int64 `json:"stationId" binding:"required"`
}

type returnRequest struct {
	RentalID  int64 `json:"rentalId" binding:"required"`
	StationID int64 `json:"stationId" binding:"required"`
}

type rentalResponse struct {
	RentalID int64  `json:"rentalId"`
	Status   string `json:"status"`
}

func NewRentalHandler(service rental.UseCase) *RentalHandler {
	return &RentalHandler{service: service}
}

func (h *RentalHandler) Register(router *gin.RouterGroup) {
	router.POST("/rent", h.rent)
	router.POST("/return", h.returnBike)
	router.GET("/me", h.listMine)
}

func (h *RentalHandler) rent(c *gin.Context) {
	var req rentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stationId"})
		return
	}

	claims := auth.FromContext(c)
	created, err := h.service.Rent(c.Request.Context(), claims.UserID, req.StationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rentalResponse{
		RentalID: created.ID,
		Status:   string(created.Status),
	})
}

func (h *RentalHandler) returnBike(c *gin.Context) {
	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rentalId or stationId"})
		return
	}

	claims := auth.FromContext(c)
	returned, err := h.service.Return(c.Request.Context(), claims.UserID, req.RentalID, req.StationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rentalResponse{
		RentalID: returned.ID,
		Status:   string(returned.Status),
	})
}

func (h *RentalHandler) listMine(c *gin.Context) {
	claims := auth.FromContext(c)
	rentals, err := h.service.ListForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rentals)
}
