package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velopool/bikeshare/internal/service/stations"
)

type StationHandler struct {
	service stations.UseCase
}

func NewStationHandler(service stations.UseCase) *StationHandler {
	return &StationHandler{service: service}
}

func (h *StationHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *StationHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *StationHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	station, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, station)
}
