package rank_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/placefinder/ai/mock"
	"github.com/poiesic/placefinder/core"
	"github.com/poiesic/placefinder/rank"
)

func venue(name string, rating, travelMinutes float64, reviews ...string) *core.Venue {
	v := &core.Venue{Name: name, Rating: rating, TravelTime: travelMinutes}
	for _, text := range reviews {
		v.Reviews = append(v.Reviews, core.Review{Text: text})
	}
	return v
}

func TestNewRankerRequiresEmbedder(t *testing.T) {
	_, err := rank.NewRanker(nil)
	assert.ErrorIs(t, err, rank.ErrEmbedderRequired)
}

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights rank.Weights
		ok      bool
	}{
		{name: "exact", weights: rank.Weights{Similarity: 0.5, Rating: 0.3, TravelTime: 0.2}, ok: true},
		{name: "within tolerance", weights: rank.Weights{Similarity: 0.5, Rating: 0.3, TravelTime: 0.195}, ok: true},
		{name: "under", weights: rank.Weights{Similarity: 0.5, Rating: 0.3, TravelTime: 0.17}, ok: false},
		{name: "over", weights: rank.Weights{Similarity: 0.6, Rating: 0.3, TravelTime: 0.15}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, rank.ErrInvalidWeights)
			}
		})
	}
}

func TestDefaultWeights(t *testing.T) {
	with := rank.DefaultWeights(true)
	assert.Equal(t, rank.Weights{Similarity: 0.5, Rating: 0.3, TravelTime: 0.2}, with)

	without := rank.DefaultWeights(false)
	assert.Equal(t, rank.Weights{Rating: 0.6, TravelTime: 0.4}, without)
}

func TestRankInvalidCustomWeights(t *testing.T) {
	ranker, err := rank.NewRanker(mock.NewMockEmbedder())
	require.NoError(t, err)

	_, err = ranker.Rank(context.Background(), nil, nil, rank.Weights{Similarity: 0.9, Rating: 0.2})
	assert.ErrorIs(t, err, rank.ErrInvalidWeights)
}

func TestRankWithoutKeywords(t *testing.T) {
	ranker, err := rank.NewRanker(mock.NewMockEmbedder())
	require.NoError(t, err)

	venues := []*core.Venue{
		venue("Far but great", 5.0, 30),
		venue("Close but average", 3.0, 2),
		venue("Close and great", 5.0, 2),
	}

	ranked, err := ranker.Rank(context.Background(), venues, nil, rank.Weights{})
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	// rating 5, 2 min: 0.6*1.0 + 0.4*(1/3) > the others.
	assert.Equal(t, "Close and great", ranked[0].Venue.Name)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].CombinedScore, ranked[i].CombinedScore)
	}
}

func TestRankSkipsUnrankableVenues(t *testing.T) {
	ranker, err := rank.NewRanker(mock.NewMockEmbedder())
	require.NoError(t, err)

	venues := []*core.Venue{
		venue("", 4.0, 5),
		venue("No rating", 0, 5),
		venue("No travel time", 4.0, 0),
		venue("Good", 4.0, 5),
	}

	ranked, err := ranker.Rank(context.Background(), venues, nil, rank.Weights{})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Good", ranked[0].Venue.Name)
}

func TestRankWithKeywordsRequiresReviews(t *testing.T) {
	ranker, err := rank.NewRanker(mock.NewMockEmbedder())
	require.NoError(t, err)

	venues := []*core.Venue{
		venue("Silent", 4.5, 5),
		venue("Reviewed", 4.0, 5, "lovely quiet atmosphere"),
		venue("Blank reviews", 4.8, 5, "   "),
	}

	ranked, err := ranker.Rank(context.Background(), venues, []string{"quiet"}, rank.Weights{})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Reviewed", ranked[0].Venue.Name)
}

func TestRankSimilarityFavorsMatchingReviews(t *testing.T) {
	// The mock embedder is deterministic per text, so identical texts have
	// similarity 1 and distinct texts score lower.
	ranker, err := rank.NewRanker(mock.NewMockEmbedder())
	require.NoError(t, err)

	venues := []*core.Venue{
		venue("Off topic", 4.0, 5, "completely unrelated review text"),
		venue("On topic", 4.0, 5, "quiet with live jazz"),
	}

	ranked, err := ranker.Rank(context.Background(), venues, []string{"quiet with live jazz"}, rank.Weights{})
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "On topic", ranked[0].Venue.Name)
	assert.InDelta(t, 1.0, ranked[0].AverageSimilarity, 1e-6)
	assert.Greater(t, ranked[0].AverageSimilarity, ranked[1].AverageSimilarity)
}

func TestRankSkipsVenueWhenEmbedderReturnsNoVectors(t *testing.T) {
	// Some embedding services silently return nothing for texts they
	// cannot process; the venue must be dropped rather than scored NaN.
	embedder := mock.NewMockEmbedder()
	calls := 0
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			// Keyword embedding behaves normally.
			vectors := make([][]float32, len(texts))
			for i := range vectors {
				vectors[i] = []float32{1, 0, 0}
			}
			return vectors, nil
		}
		return [][]float32{}, nil
	}

	ranker, err := rank.NewRanker(embedder)
	require.NoError(t, err)

	venues := []*core.Venue{venue("Unembeddable", 4.5, 5, "some review")}
	ranked, err := ranker.Rank(context.Background(), venues, []string{"quiet"}, rank.Weights{})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	ranker, err := rank.NewRanker(mock.NewMockEmbedder())
	require.NoError(t, err)

	a := venue("A", 3.0, 10)
	b := venue("B", 5.0, 2)
	venues := []*core.Venue{a, b}

	_, err = ranker.Rank(context.Background(), venues, nil, rank.Weights{})
	require.NoError(t, err)

	assert.Equal(t, []*core.Venue{a, b}, venues)
	assert.Equal(t, 3.0, a.Rating)
	assert.Equal(t, 10.0, a.TravelTime)
}
