package analytics

import (
	"sort"

	"github.com/tummybutters/wm/internal/models"
)

// Rank aggregates a token sequence into a word-frequency table sorted by
// count descending, truncated to limit. Ties keep first-seen order, so the
// result is deterministic for identical input. Zero tokens yields an empty
// table, never an error.
func Rank(tokens []string, limit int) models.WordCounts {
	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	ranked := make(models.WordCounts, 0, len(order))
	for _, word := range order {
		ranked = append(ranked, models.WordCount{Word: word, Count: counts[word]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// TopWords tokenizes every text and ranks the combined token stream.
func TopWords(texts []string, limit int) models.WordCounts {
	var tokens []string
	for _, text := range texts {
		tokens = append(tokens, Tokenize(text)...)
	}
	return Rank(tokens, limit)
}
