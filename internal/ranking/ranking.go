package ranking

import (
	"sort"
	"strings"
	"unicode"

	"glint/internal/domain"
)

// Score tiers, highest precedence first. Exact and prefix matches are
// terminal; the remaining tiers combine as a running maximum.
const (
	scoreExact        = 1000
	scorePrefix       = 900
	scoreTokenPrefix  = 500
	scoreInitialsBase = 400
	scoreInitialsStep = 10
	scoreSubseqBase   = 100
)

// Score rates how well target matches query. 0 means no match and the
// candidate must be excluded from results; higher is better. Comparison is
// case-insensitive; the stored data is never case-folded.
func Score(query, target string) int {
	q := strings.ToLower(query)
	if q == "" {
		return 0
	}
	t := strings.ToLower(target)

	if t == q {
		return scoreExact
	}
	if strings.HasPrefix(t, q) {
		return scorePrefix
	}

	score := 0
	tokens := tokenize(t)

	// Word-start matches in multi-word names ("chrome" in "google chrome").
	for _, tok := range tokens {
		if strings.HasPrefix(tok, q) {
			score = scoreTokenPrefix
			break
		}
	}

	// Acronym typing ("gc" for "google chrome"). The bonus grows with the
	// query, so for 11+ rune queries it outranks the token-prefix tier.
	if initials := tokenInitials(tokens); strings.HasPrefix(initials, q) {
		if s := scoreInitialsBase + scoreInitialsStep*len([]rune(q)); s > score {
			score = s
		}
	}

	// Lowest tier: any in-order character match still surfaces, but only
	// when nothing above matched. A broken subsequence rejects outright.
	if score == 0 {
		if matched, ok := subsequenceLen(q, t); ok {
			score = scoreSubseqBase + matched
		}
	}

	return score
}

// Rank scores every candidate and returns the survivors ordered by
// descending score. Ties keep the original corpus order.
func Rank(query string, candidates []domain.Candidate) []domain.ScoredCandidate {
	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if s := Score(query, c.MatchKey()); s > 0 {
			scored = append(scored, domain.ScoredCandidate{Candidate: c, Score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// tokenize splits on runs of non-alphanumeric characters, discarding
// empty tokens.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// tokenInitials concatenates the first rune of each token.
func tokenInitials(tokens []string) string {
	var b strings.Builder
	for _, tok := range tokens {
		for _, r := range tok {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// subsequenceLen walks query's runes left to right, finding each one in
// target after the previous match. Reports the number of matched runes and
// whether every rune was found.
func subsequenceLen(query, target string) (int, bool) {
	qr := []rune(query)
	tr := []rune(target)

	ti := 0
	for _, qc := range qr {
		found := false
		for ti < len(tr) {
			if tr[ti] == qc {
				found = true
				ti++
				break
			}
			ti++
		}
		if !found {
			return 0, false
		}
	}
	return len(qr), true
}
