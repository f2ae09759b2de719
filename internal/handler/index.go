package handler

import (
	"net/http"

	"clarity/internal/lexicon"
	"clarity/internal/model"
	"clarity/internal/service"

	"github.com/gin-gonic/gin"
)

// IndexHandler handles phrase index administration requests
type IndexHandler struct {
	sim *service.VectorSimilarity
	lex *lexicon.Store
}

// NewIndexHandler creates a new index handler
func NewIndexHandler(sim *service.VectorSimilarity, lex *lexicon.Store) *IndexHandler {
	return &IndexHandler{sim: sim, lex: lex}
}

// Reindex handles POST /api/v1/index/reindex
func (h *IndexHandler) Reindex(c *gin.Context) {
	indexed, err := h.sim.Reindex(c.Request.Context(), h.lex)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reindex failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"indexed": indexed})
}

// AddPhrase handles POST /api/v1/index/phrases
func (h *IndexHandler) AddPhrase(c *gin.Context) {
	var req model.UpsertPhraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	category, err := lexicon.ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sim.Upsert(c.Request.Context(), category, req.StandardValue, req.Phrase); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add phrase: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Info handles GET /api/v1/index/info
func (h *IndexHandler) Info(c *gin.Context) {
	count, err := h.sim.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get index info: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.IndexInfo{PointCount: count})
}
