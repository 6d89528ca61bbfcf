package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velopool/bikeshare/internal/auth"
	"github.com/velopool/bikeshare/internal/domain"
	"github.com/velopool/bikeshare/internal/repository"
)

type ReportHandler struct {
	reports repository.ReportRepository
}

type createReportRequest struct {
	StationID   int64  `json:"stationId" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type reportStatusRequest struct {
	Status string `json:"status"`
}

func NewReportHandler(reports repository.ReportRepository) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Register mounts the public list route; RegisterAuthed and RegisterAdmin
// mount the routes that need identity.
func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
}

func (h *ReportHandler) RegisterAuthed(router *gin.RouterGroup) {
	router.POST("/", h.create)
}

func (h *ReportHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.PUT("/:id/status", h.setStatus)
}

func (h *ReportHandler) list(c *gin.Context) {
	var stationID int64
	if raw := c.Query("stationId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stationId"})
			return
		}
		stationID = id
	}

	reports, err := h.reports.List(c.Request.Context(), stationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) create(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := auth.FromContext(c)
	report := &domain.Report{
		StationID:   req.StationID,
		UserID:      claims.UserID,
		Description: req.Description,
	}
	if err := h.reports.Create(c.Request.Context(), report); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) setStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req reportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := domain.ReportStatus(req.Status)
	if status != domain.ReportStatusOpen && status != domain.ReportStatusClosed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	report, err := h.reports.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
