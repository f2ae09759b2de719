package handler

import (
	"errors"
	"net/http"

	"clarity/internal/model"
	"clarity/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyzeHandler handles sentence analysis HTTP requests
type AnalyzeHandler struct {
	analyzer *service.Analyzer
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer *service.Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// Analyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req.Sentence)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptySentence):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a sentence to analyze"})
		case errors.Is(err, service.ErrSentenceTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sentence is too long to analyze"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
