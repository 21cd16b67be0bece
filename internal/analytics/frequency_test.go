package analytics

import (
	"reflect"
	"testing"

	"github.com/tummybutters/wm/internal/models"
)

func TestRank(t *testing.T) {
	got := Rank([]string{"market", "market", "belief"}, 10)
	want := models.WordCounts{
		{Word: "market", Count: 2},
		{Word: "belief", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank = %v, want %v", got, want)
	}
}

func TestRankEmpty(t *testing.T) {
	got := Rank(nil, 5)
	if len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}
}

func TestRankLimit(t *testing.T) {
	tokens := []string{"aaa", "bbb", "ccc", "ddd", "eee"}
	got := Rank(tokens, 3)
	if len(got) != 3 {
		t.Errorf("Rank limit 3 returned %d entries", len(got))
	}
}

func TestRankCountsSumToInputLength(t *testing.T) {
	tokens := []string{"alpha", "beta", "alpha", "gamma", "beta", "alpha"}
	got := Rank(tokens, 100)

	sum := 0
	for _, wc := range got {
		sum += wc.Count
	}
	if sum != len(tokens) {
		t.Errorf("counts sum to %d, want %d", sum, len(tokens))
	}
}

func TestRankTieOrderDeterministic(t *testing.T) {
	tokens := []string{"zzz", "mmm", "aaa", "zzz", "mmm", "aaa"}

	first := Rank(tokens, 10)
	for i := 0; i < 50; i++ {
		if got := Rank(tokens, 10); !reflect.DeepEqual(got, first) {
			t.Fatalf("tie order not deterministic: run %d got %v, first run %v", i, got, first)
		}
	}

	// Ties keep first-seen order.
	want := models.WordCounts{
		{Word: "zzz", Count: 2},
		{Word: "mmm", Count: 2},
		{Word: "aaa", Count: 2},
	}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("tie order = %v, want first-seen order %v", first, want)
	}
}

func TestTopWords(t *testing.T) {
	texts := []string{
		"Markets move on beliefs.",
		"Beliefs about markets compound.",
	}
	got := TopWords(texts, 20)
	want := models.WordCounts{
		{Word: "markets", Count: 2},
		{Word: "beliefs", Count: 2},
		{Word: "move", Count: 1},
		{Word: "compound", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopWords = %v, want %v", got, want)
	}
}
