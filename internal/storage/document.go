package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"voice-bot/internal/profile"
)

// document is the stored JSON shape of a user record. The schema is a
// persistence detail; handlers only ever see profile.Record.
type document struct {
	Mode          *string          `json:"mode"`
	CustomPrompts []promptDocument `json:"custom_prompts"`
	Pending       *pendingDocument `json:"pending_action,omitempty"`
}

type promptDocument struct {
	Name        string `json:"name"`
	Instruction string `json:"instruction"`
}

type pendingDocument struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
}

const (
	pendingKindName        = "awaiting_name"
	pendingKindInstruction = "awaiting_instruction"
)

// encodeRecord serializes a record for storage.
func encodeRecord(rec *profile.Record) ([]byte, error) {
	doc := document{
		CustomPrompts: make([]promptDocument, 0, len(rec.CustomPrompts)),
	}

	switch rec.Mode.Kind {
	case profile.ModeBuiltin:
		s := "builtin:" + rec.Mode.ID
		doc.Mode = &s
	case profile.ModeCustom:
		s := "custom:" + strconv.Itoa(rec.Mode.Index)
		doc.Mode = &s
	}

	for _, p := range rec.CustomPrompts {
		doc.CustomPrompts = append(doc.CustomPrompts, promptDocument{Name: p.Name, Instruction: p.Instruction})
	}

	switch rec.Pending.Kind {
	case profile.PendingName:
		doc.Pending = &pendingDocument{Kind: pendingKindName}
	case profile.PendingInstruction:
		doc.Pending = &pendingDocument{Kind: pendingKindInstruction, Name: rec.Pending.Name}
	}

	return json.Marshal(doc)
}

// decodeRecord parses a stored document. Unknown or malformed fields
// decode to their defaults instead of failing, so an old or hand-edited
// row never locks a user out.
func decodeRecord(data []byte) (*profile.Record, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}

	rec := profile.NewRecord()

	for _, p := range doc.CustomPrompts {
		rec.CustomPrompts = append(rec.CustomPrompts, profile.CustomPrompt{Name: p.Name, Instruction: p.Instruction})
	}

	if doc.Mode != nil {
		rec.Mode = parseModeTag(*doc.Mode)
	}

	if doc.Pending != nil {
		switch doc.Pending.Kind {
		case pendingKindName:
			rec.Pending = profile.PendingAction{Kind: profile.PendingName}
		case pendingKindInstruction:
			rec.Pending = profile.PendingAction{Kind: profile.PendingInstruction, Name: doc.Pending.Name}
		}
	}

	return rec, nil
}

// parseModeTag turns "builtin:<id>" / "custom:<index>" back into a
// ModeRef. Anything unrecognized means no selection.
func parseModeTag(tag string) profile.ModeRef {
	kind, value, found := strings.Cut(tag, ":")
	if !found {
		return profile.ModeRef{}
	}
	switch kind {
	case "builtin":
		if value == "" {
			return profile.ModeRef{}
		}
		return profile.BuiltinMode(value)
	case "custom":
		index, err := strconv.Atoi(value)
		if err != nil || index < 0 {
			return profile.ModeRef{}
		}
		return profile.CustomMode(index)
	}
	return profile.ModeRef{}
}
