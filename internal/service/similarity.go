package service

import (
	"context"
	"fmt"
	"log"

	"clarity/internal/lexicon"
	"clarity/internal/model"
)

// SimilaritySearcher is the nearest-neighbor surface the circle validator
// consumes. Search returns the top category match at or above the
// configured score floor, or nil when nothing qualifies. Compare returns
// the cosine similarity of two texts.
type SimilaritySearcher interface {
	Search(ctx context.Context, text string, category lexicon.Category) (*model.PhraseMatch, error)
	Compare(ctx context.Context, text, phrase string) (float64, error)
}

// PhraseRepository is the persistence surface behind the similarity service
type PhraseRepository interface {
	SearchPhrases(ctx context.Context, embedding []float32, category string, limit int) ([]model.PhraseMatch, error)
	UpsertPhrase(ctx context.Context, category, standardValue, phrase string, isPrimary bool, embedding []float32) error
	ReplacePhrases(ctx context.Context, points []model.PhrasePoint) error
	CountPhrases(ctx context.Context) (int, error)
}

// VectorSimilarity backs SimilaritySearcher with an embedding client and
// the pgvector phrase index
type VectorSimilarity struct {
	embedder *EmbeddingClient
	repo     PhraseRepository
	limit    int
	minScore float64
}

// NewVectorSimilarity creates a vector similarity service
func NewVectorSimilarity(embedder *EmbeddingClient, repo PhraseRepository, limit int, minScore float64) *VectorSimilarity {
	return &VectorSimilarity{
		embedder: embedder,
		repo:     repo,
		limit:    limit,
		minScore: minScore,
	}
}

// Search finds the best indexed phrase for the text within a category
func (s *VectorSimilarity) Search(ctx context.Context, text string, category lexicon.Category) (*model.PhraseMatch, error) {
	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed search text: %w", err)
	}

	matches, err := s.repo.SearchPhrases(ctx, embedding, string(category), s.limit)
	if err != nil {
		return nil, fmt.Errorf("phrase search failed: %w", err)
	}

	for i := range matches {
		if matches[i].Score >= s.minScore {
			return &matches[i], nil
		}
	}
	return nil, nil
}

// Compare returns the cosine similarity between a text and a phrase.
// Embeddings are L2-normalized, so the dot product is the cosine.
func (s *VectorSimilarity) Compare(ctx context.Context, text, phrase string) (float64, error) {
	vectors, err := s.embedder.EmbedAll(ctx, []string{text, phrase})
	if err != nil {
		return 0, fmt.Errorf("failed to embed comparison pair: %w", err)
	}
	if len(vectors) != 2 || len(vectors[0]) == 0 || len(vectors[1]) == 0 {
		return 0, fmt.Errorf("embedding API returned incomplete comparison pair")
	}
	if len(vectors[0]) != len(vectors[1]) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(vectors[0]), len(vectors[1]))
	}

	var dot float64
	for i := range vectors[0] {
		dot += float64(vectors[0][i]) * float64(vectors[1][i])
	}
	return dot, nil
}

// Upsert adds or replaces one phrase in the index. The operation is
// idempotent: re-adding the same (category, phrase) pair updates in place.
func (s *VectorSimilarity) Upsert(ctx context.Context, category lexicon.Category, standardValue, phrase string) error {
	embedding, err := s.embedder.Embed(ctx, phrase)
	if err != nil {
		return fmt.Errorf("failed to embed phrase: %w", err)
	}
	return s.repo.UpsertPhrase(ctx, string(category), standardValue, phrase, false, embedding)
}

// Count returns the number of indexed phrases
func (s *VectorSimilarity) Count(ctx context.Context) (int, error) {
	return s.repo.CountPhrases(ctx)
}

// Reindex rebuilds the whole phrase index from the lexicon store
func (s *VectorSimilarity) Reindex(ctx context.Context, store *lexicon.Store) (int, error) {
	source := store.IndexPoints()
	texts := make([]string, len(source))
	for i, p := range source {
		texts[i] = p.Phrase
	}

	log.Printf("Embedding %d lexicon phrases for reindex", len(texts))
	embeddings, err := s.embedder.EmbedAll(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed lexicon: %w", err)
	}
	if len(embeddings) != len(source) {
		return 0, fmt.Errorf("embedding count mismatch: got %d, want %d", len(embeddings), len(source))
	}

	points := make([]model.PhrasePoint, len(source))
	for i, p := range source {
		points[i] = model.PhrasePoint{
			ID:            int64(i + 1),
			Category:      string(p.Category),
			StandardValue: p.StandardValue,
			Phrase:        p.Phrase,
			IsPrimary:     p.IsPrimary,
			Embedding:     embeddings[i],
		}
	}

	if err := s.repo.ReplacePhrases(ctx, points); err != nil {
		return 0, fmt.Errorf("failed to replace phrase index: %w", err)
	}
	return len(points), nil
}
