package analytics

import "strings"

// stopwords are common English words excluded from frequency rankings.
// The lone "s" and "t" entries absorb fragments left over when
// contractions split on the apostrophe.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "all", "am", "an", "and", "any", "are", "as", "at",
		"be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
		"can", "could", "did", "do", "does", "doing", "down", "during",
		"each", "few", "for", "from", "further",
		"had", "has", "have", "having", "he", "her", "here", "hers", "herself", "him", "himself",
		"his", "how",
		"i", "if", "in", "into", "is", "it", "its", "itself",
		"just",
		"me", "might", "more", "most", "must", "my", "myself",
		"no", "nor", "not", "now",
		"of", "off", "on", "once", "only", "or", "other", "our", "ours", "ourselves", "out", "over", "own",
		"s", "same", "she", "should", "so", "some", "such",
		"t", "than", "that", "the", "their", "theirs", "them", "themselves", "then", "there", "these",
		"they", "this", "those", "through", "to", "too",
		"under", "until", "up",
		"very",
		"was", "we", "were", "what", "when", "where", "which", "while", "who", "whom", "why", "will", "with",
		"would",
		"you", "your", "yours", "yourself", "yourselves",
	} {
		stopwords[w] = struct{}{}
	}
}

const minTokenLength = 3

// IsStopword reports whether the word is in the fixed stopword set.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// Tokenize lowercases the text, splits it on any run of characters outside
// ASCII a-z (digits, punctuation and non-ASCII letters all act as
// separators), and drops tokens shorter than three characters or in the
// stopword set. Deterministic, side-effect free; degenerate input yields
// an empty slice.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)

	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() >= minTokenLength {
			token := b.String()
			if !IsStopword(token) {
				tokens = append(tokens, token)
			}
		}
		b.Reset()
	}

	for _, r := range lower {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}
