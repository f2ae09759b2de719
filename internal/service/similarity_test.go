package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/internal/lexicon"
	"clarity/internal/model"
)

type fakeRepo struct {
	matches  []model.PhraseMatch
	replaced []model.PhrasePoint
	upserts  int
	count    int
}

func (f *fakeRepo) SearchPhrases(_ context.Context, _ []float32, _ string, _ int) ([]model.PhraseMatch, error) {
	return f.matches, nil
}

func (f *fakeRepo) UpsertPhrase(_ context.Context, _, _, _ string, _ bool, _ []float32) error {
	f.upserts++
	return nil
}

func (f *fakeRepo) ReplacePhrases(_ context.Context, points []model.PhrasePoint) error {
	f.replaced = points
	return nil
}

func (f *fakeRepo) CountPhrases(_ context.Context) (int, error) {
	return f.count, nil
}

func TestVectorSimilarity_SearchAppliesScoreFloor(t *testing.T) {
	srv, _ := embeddingTestServer(t, 4)
	repo := &fakeRepo{matches: []model.PhraseMatch{
		{Value: "create", Phrase: "create", Score: 0.2},
		{Value: "modify", Phrase: "modify", Score: 0.6},
	}}
	s := NewVectorSimilarity(NewEmbeddingClient(embeddingTestConfig(srv.URL)), repo, 10, 0.5)

	match, err := s.Search(context.Background(), "something", lexicon.CategoryAction)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "modify", match.Value)
}

func TestVectorSimilarity_SearchNoQualifyingMatch(t *testing.T) {
	srv, _ := embeddingTestServer(t, 4)
	repo := &fakeRepo{matches: []model.PhraseMatch{{Value: "create", Phrase: "create", Score: 0.2}}}
	s := NewVectorSimilarity(NewEmbeddingClient(embeddingTestConfig(srv.URL)), repo, 10, 0.5)

	match, err := s.Search(context.Background(), "something", lexicon.CategoryAction)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestVectorSimilarity_ReindexLoadsWholeLexicon(t *testing.T) {
	srv, _ := embeddingTestServer(t, 4)
	repo := &fakeRepo{}
	cfg := embeddingTestConfig(srv.URL)
	cfg.BatchSize = 500 // whole lexicon in one request
	s := NewVectorSimilarity(NewEmbeddingClient(cfg), repo, 10, 0)

	store := newTestLexicon(t)
	indexed, err := s.Reindex(context.Background(), store)
	require.NoError(t, err)

	want := len(store.IndexPoints())
	assert.Equal(t, want, indexed)
	require.Len(t, repo.replaced, want)

	// bulk-load ids are dense starting at 1
	assert.Equal(t, int64(1), repo.replaced[0].ID)
	assert.Equal(t, int64(want), repo.replaced[want-1].ID)
	for _, p := range repo.replaced {
		assert.NotEmpty(t, p.Phrase)
		assert.NotEmpty(t, p.Category)
		require.Len(t, p.Embedding, 4)
	}
}

func TestVectorSimilarity_Upsert(t *testing.T) {
	srv, _ := embeddingTestServer(t, 4)
	repo := &fakeRepo{}
	s := NewVectorSimilarity(NewEmbeddingClient(embeddingTestConfig(srv.URL)), repo, 10, 0)

	err := s.Upsert(context.Background(), lexicon.CategoryAction, "create", "spin up")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)
}
