package insight

import (
	"strings"
	"testing"

	"github.com/tummybutters/wm/internal/models"
)

func TestBuildUserPrompt(t *testing.T) {
	data := PromptData{
		TopWords: models.WordCounts{
			{Word: "markets", Count: 4},
			{Word: "discipline", Count: 2},
		},
		BetCounts:  models.BetCounts{Open: 3, Resolved: 2},
		BrierScore: 0.1875,
		RecentEntries: []string{
			"Felt sharp about the rate decision today.",
			"Need to stop chasing momentum.",
		},
	}

	prompt := BuildUserPrompt(data)

	for _, want := range []string{
		`"markets" (4x)`,
		`"discipline" (2x)`,
		"Total bets: 5",
		"Open bets: 3",
		"Resolved bets: 2",
		"Brier Score: 0.188 (lower is better, 0.25 is baseline)",
		"1. Felt sharp about the rate decision today.",
		"2. Need to stop chasing momentum.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}
}

func TestBuildUserPromptCapsWords(t *testing.T) {
	var words models.WordCounts
	for i := 0; i < 20; i++ {
		words = append(words, models.WordCount{
			Word:  string(rune('a'+i)) + "word",
			Count: 20 - i,
		})
	}

	prompt := BuildUserPrompt(PromptData{TopWords: words})

	if !strings.Contains(prompt, `"aword" (20x)`) {
		t.Error("first word missing")
	}
	if !strings.Contains(prompt, `"oword" (6x)`) {
		t.Error("15th word missing")
	}
	if strings.Contains(prompt, `"pword"`) {
		t.Error("16th word should be cut")
	}
}

func TestBuildUserPromptTruncatesEntries(t *testing.T) {
	long := strings.Repeat("x", 300)

	prompt := BuildUserPrompt(PromptData{RecentEntries: []string{long}})

	if strings.Contains(prompt, long) {
		t.Error("entry not truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 200)+"...") {
		t.Error("truncated entry missing ellipsis")
	}
}

func TestBuildUserPromptCapsEntries(t *testing.T) {
	entries := []string{"one", "two", "three", "four", "five", "six"}

	prompt := BuildUserPrompt(PromptData{RecentEntries: entries})

	if !strings.Contains(prompt, "5. five") {
		t.Error("fifth entry missing")
	}
	if strings.Contains(prompt, "six") {
		t.Error("sixth entry should be cut")
	}
}

func TestBuildUserPromptEmptyData(t *testing.T) {
	prompt := BuildUserPrompt(PromptData{})

	if !strings.Contains(prompt, "No significant words") {
		t.Error("missing empty-words placeholder")
	}
	if !strings.Contains(prompt, "No entries available") {
		t.Error("missing empty-entries placeholder")
	}
	if !strings.Contains(prompt, "Total bets: 0") {
		t.Error("missing zero bet totals")
	}
}

func TestSystemPromptNamesRequiredFields(t *testing.T) {
	prompt := SystemPrompt()

	for _, field := range []string{`"themes"`, `"assumptions"`, `"mood"`, `"biases"`, `"summary"`} {
		if !strings.Contains(prompt, field) {
			t.Errorf("system prompt missing %s in the format contract", field)
		}
	}
}
