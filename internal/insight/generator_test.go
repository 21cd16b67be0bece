package insight

import (
	"strings"
	"testing"
)

func TestParseInsightResponse(t *testing.T) {
	content := `{
		"themes": ["markets", "calibration"],
		"assumptions": ["rates stay high"],
		"mood": "analytical",
		"biases": ["anchoring"],
		"summary": "Focused on market outcomes with a calibration bent."
	}`

	payload, err := ParseInsightResponse(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(payload.Themes) != 2 || payload.Themes[0] != "markets" {
		t.Errorf("themes = %v", payload.Themes)
	}
	if payload.Mood != "analytical" {
		t.Errorf("mood = %q", payload.Mood)
	}
}

func TestParseInsightResponseUnwrapsCodeFence(t *testing.T) {
	content := "```json\n" + `{
		"themes": [],
		"assumptions": [],
		"mood": "flat",
		"biases": [],
		"summary": "Quiet day."
	}` + "\n```"

	payload, err := ParseInsightResponse(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if payload.Summary != "Quiet day." {
		t.Errorf("summary = %q", payload.Summary)
	}
}

func TestParseInsightResponseRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing string
	}{
		{
			name:    "no themes",
			content: `{"assumptions": [], "mood": "m", "biases": [], "summary": "s"}`,
			missing: "themes",
		},
		{
			name:    "no mood",
			content: `{"themes": [], "assumptions": [], "biases": [], "summary": "s"}`,
			missing: "mood",
		},
		{
			name:    "empty summary",
			content: `{"themes": [], "assumptions": [], "mood": "m", "biases": [], "summary": ""}`,
			missing: "summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInsightResponse(tt.content)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.missing) {
				t.Errorf("error %q does not name field %q", err, tt.missing)
			}
		})
	}
}

func TestParseInsightResponseRejectsGarbage(t *testing.T) {
	if _, err := ParseInsightResponse("I could not produce JSON, sorry."); err == nil {
		t.Fatal("expected parse error")
	}
}
