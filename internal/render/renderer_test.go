package render

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkShortTextIsSingleChunk(t *testing.T) {
	chunks := Chunk("hello world", 100)
	if len(chunks) != 1 || chunks[0] != "hello world" {
		t.Errorf("Expected one unmodified chunk, got %v", chunks)
	}
}

func TestChunkEmptyInput(t *testing.T) {
	chunks := Chunk("", 100)
	if len(chunks) != 1 || chunks[0] != "" {
		t.Errorf("Empty input must yield exactly one empty chunk, got %v", chunks)
	}
}

func TestChunkConcatenationLaw(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
	}{
		{name: "plain long text", text: strings.Repeat("abcdefghij", 100), limit: 64},
		{name: "newline rich", text: strings.Repeat("line one\nline two\nline three\n", 50), limit: 80},
		{name: "space rich", text: strings.Repeat("word ", 500), limit: 100},
		{name: "limit of one", text: "abc def", limit: 1},
		{name: "exactly at limit", text: strings.Repeat("x", 50), limit: 50},
		{name: "one over limit", text: strings.Repeat("x", 51), limit: 50},
		{name: "multibyte runes", text: strings.Repeat("привет мир ", 100), limit: 70},
		{name: "emoji", text: strings.Repeat("🎙 voice note 📝 ", 80), limit: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(tt.text, tt.limit)

			if strings.Join(chunks, "") != tt.text {
				t.Error("Concatenated chunks must reproduce the input exactly")
			}
			for i, c := range chunks {
				if n := utf8.RuneCountInString(c); n > tt.limit {
					t.Errorf("Chunk %d has %d runes, limit is %d", i, n, tt.limit)
				}
				if c == "" {
					t.Errorf("Chunk %d is empty", i)
				}
			}
		})
	}
}

func TestChunkPrefersNewlineBreaks(t *testing.T) {
	// Two paragraphs that together exceed the limit but individually fit.
	text := strings.Repeat("a", 30) + "\n" + strings.Repeat("b", 30)
	chunks := Chunk(text, 40)

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if !strings.HasSuffix(chunks[0], "\n") {
		t.Errorf("Expected the first chunk to end at the newline, got %q", chunks[0])
	}
	if chunks[1] != strings.Repeat("b", 30) {
		t.Errorf("Expected the second paragraph intact, got %q", chunks[1])
	}
}

func TestChunkFallsBackToSpaceBreaks(t *testing.T) {
	text := strings.Repeat("word ", 20) // 100 runes, no newlines
	chunks := Chunk(text, 30)

	if strings.Join(chunks, "") != text {
		t.Error("Concatenated chunks must reproduce the input exactly")
	}
	for i, c := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(c, " ") {
			t.Errorf("Chunk %d should break after a space, got %q", i, c)
		}
	}
}

func TestChunkHardSplitWithoutBreakPoints(t *testing.T) {
	text := strings.Repeat("x", 100)
	chunks := Chunk(text, 40)

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 40 || len(chunks[1]) != 40 || len(chunks[2]) != 20 {
		t.Errorf("Expected 40/40/20 split, got %d/%d/%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func TestChunkZeroLimitUsesDefault(t *testing.T) {
	text := strings.Repeat("x", DefaultChunkLimit+1)
	chunks := Chunk(text, 0)

	if len(chunks) != 2 {
		t.Fatalf("Expected the default limit to apply, got %d chunks", len(chunks))
	}
	if utf8.RuneCountInString(chunks[0]) != DefaultChunkLimit {
		t.Errorf("Expected first chunk at the default limit, got %d", utf8.RuneCountInString(chunks[0]))
	}
}

func TestPlan(t *testing.T) {
	text := strings.Repeat("a", 50)
	results := Plan(text, 30)

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	var rebuilt strings.Builder
	for i, r := range results {
		if !r.UseHTML {
			t.Errorf("Result %d should request HTML", i)
		}
		if r.FallbackText != r.Text {
			t.Errorf("Result %d fallback should match its text", i)
		}
		rebuilt.WriteString(r.Text)
	}
	if rebuilt.String() != text {
		t.Error("Planned results must reproduce the input exactly")
	}
}

func TestPlanEmptyText(t *testing.T) {
	results := Plan("", DefaultChunkLimit)
	if len(results) != 1 || results[0].Text != "" {
		t.Errorf("Empty text must plan one empty message, got %v", results)
	}
}
