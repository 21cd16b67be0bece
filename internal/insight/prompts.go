package insight

import (
	"fmt"
	"strings"

	"github.com/tummybutters/wm/internal/models"
)

const (
	promptWordLimit     = 15
	promptEntryLimit    = 5
	promptEntryMaxChars = 200
)

// PromptData is everything one user's prompt is built from: the stored
// daily aggregate plus the day's raw entry texts.
type PromptData struct {
	TopWords      models.WordCounts
	BetCounts     models.BetCounts
	BrierScore    float64
	RecentEntries []string
}

// SystemPrompt defines the analyst role and the required JSON shape.
func SystemPrompt() string {
	return `You are an analytical assistant that generates psychological and cognitive insights from user data.

Your task is to analyze a user's writing patterns, prediction bets, and activity to infer:
1. Main themes and topics they focus on (entities, concepts, domains)
2. Core worldview assumptions (implicit beliefs about how things work)
3. Overall sentiment and mood (analytical, optimistic, anxious, etc.)
4. Cognitive biases (confirmation bias, optimism bias, status-quo bias, etc.)
5. A concise summary of their thinking patterns

Important guidelines:
- Base insights on the actual data provided, don't make up information
- Be specific and evidence-based
- Identify patterns in word usage and prediction behavior
- Consider Brier score as a measure of calibration quality
- Keep insights actionable and constructive

You must return your response as valid JSON in the following format:
{
  "themes": ["theme1", "theme2", "theme3"],
  "assumptions": ["assumption1", "assumption2"],
  "mood": "descriptive mood string",
  "biases": ["bias1", "bias2"],
  "summary": "A 2-3 sentence summary of the user's cognitive patterns and focus areas"
}`
}

// BuildUserPrompt renders one user's data into the analysis prompt. Word
// and entry lists are capped and entries truncated so oversized journals
// cannot blow the token budget.
func BuildUserPrompt(data PromptData) string {
	words := data.TopWords
	if len(words) > promptWordLimit {
		words = words[:promptWordLimit]
	}

	wordParts := make([]string, 0, len(words))
	for _, w := range words {
		wordParts = append(wordParts, fmt.Sprintf("%q (%dx)", w.Word, w.Count))
	}
	wordsStr := strings.Join(wordParts, ", ")
	if wordsStr == "" {
		wordsStr = "No significant words"
	}

	entries := data.RecentEntries
	if len(entries) > promptEntryLimit {
		entries = entries[:promptEntryLimit]
	}

	entryParts := make([]string, 0, len(entries))
	for i, text := range entries {
		if len(text) > promptEntryMaxChars {
			text = text[:promptEntryMaxChars] + "..."
		}
		entryParts = append(entryParts, fmt.Sprintf("%d. %s", i+1, text))
	}
	entriesStr := strings.Join(entryParts, "\n\n")
	if entriesStr == "" {
		entriesStr = "No entries available"
	}

	return fmt.Sprintf(`Analyze the following user data from the past day:

## Top Words & Phrases
%s

## Prediction Betting Activity
- Total bets: %d
- Open bets: %d
- Resolved bets: %d
- Brier Score: %.3f (lower is better, 0.25 is baseline)

## Recent Journal Entries & Notes
%s

Based on this data, provide a comprehensive cognitive and thematic analysis following the specified JSON format.`,
		wordsStr,
		data.BetCounts.Total(),
		data.BetCounts.Open,
		data.BetCounts.Resolved,
		data.BrierScore,
		entriesStr,
	)
}
