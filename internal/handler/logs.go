package handler

import (
	"net/http"
	"strconv"

	"clarity/internal/repository"

	"github.com/gin-gonic/gin"
)

// LogsHandler serves the recent analysis log
type LogsHandler struct {
	repo         *repository.PostgresRepository
	defaultLimit int
}

// NewLogsHandler creates a new logs handler
func NewLogsHandler(repo *repository.PostgresRepository, defaultLimit int) *LogsHandler {
	return &LogsHandler{repo: repo, defaultLimit: defaultLimit}
}

// List handles GET /api/v1/logs
func (h *LogsHandler) List(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	logs, err := h.repo.ListAnalysisLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list logs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}
