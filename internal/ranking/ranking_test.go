package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/domain"
)

func TestScoreExactMatch(t *testing.T) {
	assert.Equal(t, 1000, Score("chrome", "chrome"))
	assert.Equal(t, 1000, Score("ChRoMe", "chrome"))
	assert.Equal(t, 1000, Score("google chrome", "Google Chrome"))
}

func TestScorePrefixMatch(t *testing.T) {
	assert.Equal(t, 900, Score("goo", "Google Chrome"))
	assert.Equal(t, 900, Score("google c", "Google Chrome"))
}

func TestScoreTokenPrefix(t *testing.T) {
	assert.Equal(t, 500, Score("chrome", "Google Chrome"))
	assert.Equal(t, 500, Score("code", "Visual Studio Code"))
	// Splitting happens on any run of non-alphanumerics.
	assert.Equal(t, 500, Score("chrome", "google--chrome!!beta"))
}

func TestScoreInitials(t *testing.T) {
	assert.Equal(t, 420, Score("gc", "Google Chrome"))
	assert.Equal(t, 430, Score("vsc", "Visual Studio Code"))
	// A prefix of the initials counts too.
	assert.Equal(t, 420, Score("vs", "Visual Studio Code"))
}

func TestScoreInitialsCanOutrankTokenPrefix(t *testing.T) {
	// With 11+ query runes the initials bonus passes the fixed 500 of the
	// token-prefix tier. Documented behavior, kept as-is.
	target := "a b c d e f g h i j k"
	assert.Equal(t, 510, Score("abcdefghijk", target))
}

func TestScoreSubsequenceFallback(t *testing.T) {
	assert.Equal(t, 104, Score("goch", "Google Chrome"))
	assert.Equal(t, 103, Score("ggl", "Google Chrome"))
}

func TestScoreNoMatch(t *testing.T) {
	assert.Equal(t, 0, Score("xyz", "Google Chrome"))
	assert.Equal(t, 0, Score("chromex", "Google Chrome"))
	assert.Equal(t, 0, Score("", "Google Chrome"))
}

func TestScoreSubsequenceDoesNotRunWhenHigherTierMatched(t *testing.T) {
	// Token prefix wins over what would also be a valid subsequence.
	assert.Equal(t, 500, Score("studio", "Visual Studio Code"))
}

func TestRankExcludesNonMatches(t *testing.T) {
	corpus := []domain.Candidate{
		domain.AppCandidate{Name: "Google Chrome", Path: "/apps/chrome"},
		domain.AppCandidate{Name: "Visual Studio Code", Path: "/apps/code"},
		domain.AppCandidate{Name: "Calculator", Path: "/apps/calc"},
	}

	results := Rank("vsc", corpus)
	require.Len(t, results, 1)
	assert.Equal(t, "Visual Studio Code", results[0].Candidate.DisplayLabel())
	assert.Equal(t, 430, results[0].Score)
}

func TestRankOrdersByDescendingScore(t *testing.T) {
	corpus := []domain.Candidate{
		domain.AppCandidate{Name: "Google Chrome", Path: "/apps/chrome"},
		domain.AppCandidate{Name: "Chromium", Path: "/apps/chromium"},
	}

	results := Rank("chrom", corpus)
	require.Len(t, results, 2)
	// "Chromium" is a prefix match (900), beats the token prefix (500).
	assert.Equal(t, "Chromium", results[0].Candidate.DisplayLabel())
	assert.Equal(t, 900, results[0].Score)
	assert.Equal(t, "Google Chrome", results[1].Candidate.DisplayLabel())
	assert.Equal(t, 500, results[1].Score)
}

func TestRankStableOnTies(t *testing.T) {
	corpus := []domain.Candidate{
		domain.AppCandidate{Name: "Music Player", Path: "/apps/music"},
		domain.AppCandidate{Name: "Media Player", Path: "/apps/media"},
		domain.AppCandidate{Name: "Video Player", Path: "/apps/video"},
	}

	results := Rank("player", corpus)
	require.Len(t, results, 3)
	// All three hit the token-prefix tier; original corpus order holds.
	assert.Equal(t, "Music Player", results[0].Candidate.DisplayLabel())
	assert.Equal(t, "Media Player", results[1].Candidate.DisplayLabel())
	assert.Equal(t, "Video Player", results[2].Candidate.DisplayLabel())
	for _, r := range results {
		assert.Equal(t, 500, r.Score)
	}
}

func TestRankEmptyQueryReturnsNothing(t *testing.T) {
	corpus := []domain.Candidate{
		domain.AppCandidate{Name: "Google Chrome", Path: "/apps/chrome"},
	}
	assert.Empty(t, Rank("", corpus))
}
