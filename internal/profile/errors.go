package profile

import "errors"

var (
	// ErrPromptLimit is returned when a user already has MaxCustomPrompts prompts.
	ErrPromptLimit = errors.New("custom prompt limit reached")

	// ErrUnknownMode is returned when a builtin mode id does not exist.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrNoSuchPrompt is returned when a custom prompt index is out of range.
	ErrNoSuchPrompt = errors.New("no such custom prompt")
)
