package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velopool/bikeshare/internal/service/stations"
)

type StatsHandler struct {
	stations stations.UseCase
}

func NewStatsHandler(stations stations.UseCase) *StatsHandler {
	return &StatsHandler{stations: stations}
}

func (h *StatsHandler) Register(router *gin.RouterGroup) {
	router.GET("/stations", h.stationStats)
}

func (h *StatsHandler) stationStats(c *gin.Context) {
	stats, err := h.stations.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stats})
}
