package profile

// globalInstruction is prepended to every mode instruction before the
// rewriting model sees it.
const globalInstruction = `IMPORTANT: This is a transcript of a voice message. Your job is to make the text read as if it were written by hand, not like a typical machine transcript.
Keep the author's emotions, intonation and liveliness. The text must be pleasant to read while still carrying the speaker's character and mood.`

// defaultInstruction is used when a selected custom prompt no longer
// exists, so a voice message is never dropped over stale state.
const defaultInstruction = `Lightly edit the text: fix grammar and punctuation, remove filler words, keep the meaning and tone unchanged. Return only the edited text.`

// BuiltinSpec describes one builtin editing mode.
type BuiltinSpec struct {
	ID          string
	Title       string // button label
	Short       string // short name echoed in confirmations
	Description string
	Instruction string
}

var builtinModes = []BuiltinSpec{
	{
		ID:          "transcribe",
		Title:       "📝 Transcript",
		Short:       "Transcript",
		Description: "A plain transcript, like Telegram Premium but free and with proper punctuation.",
		Instruction: "Fix grammar and punctuation mistakes. Keep the original structure, emotions and liveliness of the speech. The text must read as if written by hand. Return only the corrected text.",
	},
	{
		ID:          "cosmetic",
		Title:       "✨ Light edit",
		Short:       "Light edit",
		Description: "Drops filler words, splits the text into paragraphs. Constructive, plain-language tone.",
		Instruction: "Edit the text: remove interjections and filler words, split it into paragraphs, fix the grammar. Keep the author's emotions, intonation and character so the text sounds alive, as if written by hand. The tone is constructive. Do not write too formally and do not create distance from the reader, but avoid being over-familiar. Prefer verbs and plain language. Return only the edited text.",
	},
	{
		ID:          "notes",
		Title:       "📋 Notes",
		Short:       "Notes",
		Description: "A structured note in a constructive, plain-language tone. Good for a message to a colleague or a note to yourself.",
		Instruction: `Turn the text into a well-structured note.

CRITICAL - FORMATTING:
- USE ONLY HTML TAGS: <b>bold</b> and <i>italic</i>
- NEVER USE Markdown! Forbidden: **text**, *text*, __text__
- Use • for lists (NOT *, NOT -)
- Use emojis: 📌, ✅, 💡, 📝, ⚡
- ALWAYS put a SPACE after an emoji, before text or tags!
  ✓ Correct: "✅ <b>Takeaways:</b>"
  ✗ Wrong: "✅<b>Takeaways:</b>" or "✅ **Takeaways:**"
- Separate paragraphs with a blank line

STRUCTURE:
1. 📌 <b>Short note title</b>
2. <b>Key points:</b> (a • list)
3. ✅ <b>Takeaways or actions</b> (if any)

The tone is constructive. Do not write too formally and do not create distance from the reader, but avoid being over-familiar. Prefer verbs and plain language.
Return ONLY the finished note, using ONLY HTML tags for formatting.`,
	},
}

// Builtins returns the builtin mode catalog in display order.
func Builtins() []BuiltinSpec {
	return builtinModes
}

// BuiltinByID looks up a builtin mode by its id.
func BuiltinByID(id string) (BuiltinSpec, bool) {
	for _, m := range builtinModes {
		if m.ID == id {
			return m, true
		}
	}
	return BuiltinSpec{}, false
}

// Instruction resolves the record's selected mode into the full system
// instruction for the rewriting model. A custom mode whose prompt was
// deleted from under it falls back to a generic edit instruction.
func (r *Record) Instruction() string {
	var mode string
	switch r.Mode.Kind {
	case ModeBuiltin:
		if spec, ok := BuiltinByID(r.Mode.ID); ok {
			mode = spec.Instruction
		} else {
			mode = defaultInstruction
		}
	case ModeCustom:
		if r.Mode.Index >= 0 && r.Mode.Index < len(r.CustomPrompts) {
			mode = r.CustomPrompts[r.Mode.Index].Instruction
		} else {
			mode = defaultInstruction
		}
	default:
		mode = defaultInstruction
	}
	return globalInstruction + "\n" + mode
}

// ModeLabel returns a short human-readable name for the record's mode,
// or "" when no mode is selected.
func (r *Record) ModeLabel() string {
	switch r.Mode.Kind {
	case ModeBuiltin:
		if spec, ok := BuiltinByID(r.Mode.ID); ok {
			return spec.Short
		}
		return r.Mode.ID
	case ModeCustom:
		if r.Mode.Index >= 0 && r.Mode.Index < len(r.CustomPrompts) {
			return r.CustomPrompts[r.Mode.Index].Name
		}
		return "Custom prompt"
	}
	return ""
}
