package render

// DefaultChunkLimit keeps messages under Telegram's 4096-character cap
// with headroom for entity overhead.
const DefaultChunkLimit = 4000

// Result describes how a message should be sent to Telegram.
type Result struct {
	Text         string
	FallbackText string
	UseHTML      bool
}

// Plan splits model output into sendable messages. Each result carries
// the same text as its plain fallback: the rewriting model is asked for
// Telegram HTML, and when Telegram rejects the formatting the raw text
// is still worth delivering.
func Plan(text string, limit int) []Result {
	chunks := Chunk(text, limit)
	results := make([]Result, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, Result{
			Text:         chunk,
			FallbackText: chunk,
			UseHTML:      true,
		})
	}
	return results
}

// Chunk splits text into pieces of at most limit runes whose
// concatenation reproduces the input exactly. Splits prefer the last
// newline, then the last space, in the back half of the window so
// formatting survives where possible. Empty input yields a single
// empty chunk so the caller always has something to send.
func Chunk(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkLimit
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		if i := lastIndexInBackHalf(runes[:limit], '\n'); i >= 0 {
			cut = i + 1
		} else if i := lastIndexInBackHalf(runes[:limit], ' '); i >= 0 {
			cut = i + 1
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	return append(chunks, string(runes))
}

// lastIndexInBackHalf finds the last occurrence of r in the back half
// of the window, or -1. Limiting the search keeps chunks from getting
// degenerately short around sparse break points.
func lastIndexInBackHalf(window []rune, r rune) int {
	floor := len(window) / 2
	for i := len(window) - 1; i >= floor; i-- {
		if window[i] == r {
			return i
		}
	}
	return -1
}
