package model

// PhraseMatch is one nearest-neighbor hit from the phrase index
type PhraseMatch struct {
	Value     string  `json:"value" db:"standard_value"`
	Phrase    string  `json:"text" db:"phrase"`
	Score     float64 `json:"score" db:"score"`
	IsPrimary bool    `json:"is_primary" db:"is_primary"`
}

// PhrasePoint is one row to bulk-load into the phrase index
type PhrasePoint struct {
	ID            int64
	Category      string
	StandardValue string
	Phrase        string
	IsPrimary     bool
	Embedding     []float32
}

// IndexInfo describes the current state of the phrase index
type IndexInfo struct {
	PointCount int `json:"point_count"`
}

// UpsertPhraseRequest adds or replaces a single indexed phrase
type UpsertPhraseRequest struct {
	Category      string `json:"category" binding:"required"`
	StandardValue string `json:"standard_value" binding:"required"`
	Phrase        string `json:"phrase" binding:"required"`
}
