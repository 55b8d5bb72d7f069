package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edumetric/edumetric/internal/engine"
	"github.com/edumetric/edumetric/pkg/database/queries"
	"github.com/edumetric/edumetric/pkg/models"
)

type AnalyticsHandler struct {
	engine *engine.Engine
	alerts *queries.AlertRepository
}

func NewAnalyticsHandler(eng *engine.Engine, alerts *queries.AlertRepository) *AnalyticsHandler {
	return &AnalyticsHandler{
		engine: eng,
		alerts: alerts,
	}
}

// Stats returns the roster-wide summary counters.
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Stats())
}

// Group aggregates the students matching dept/year/batch_year query
// parameters; with no parameters it covers the whole roster.
func (h *AnalyticsHandler) Group(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	batchYear, _ := strconv.Atoi(c.Query("batch_year"))

	filters := models.Filters{
		Dept:      strings.ToUpper(c.Query("dept")),
		Year:      year,
		BatchYear: batchYear,
	}

	c.JSON(http.StatusOK, h.engine.AnalyzeGroup(filters))
}

// Alerts returns the most recent mentor alerts.
func (h *AnalyticsHandler) Alerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	alerts, err := h.alerts.Recent(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if alerts == nil {
		alerts = []models.MentorAlert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// StudentAlerts returns the alert history for one roll number.
func (h *AnalyticsHandler) StudentAlerts(c *gin.Context) {
	rno := strings.ToUpper(c.Param("rno"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	alerts, err := h.alerts.ForStudent(ctx, rno)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if alerts == nil {
		alerts = []models.MentorAlert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"rno":    rno,
		"alerts": alerts,
	})
}
