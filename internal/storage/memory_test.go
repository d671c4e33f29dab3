package storage

import (
	"testing"

	"voice-bot/internal/profile"
)

func TestMemoryStoreLoadUnknownUser(t *testing.T) {
	store := NewMemoryStore()

	rec, err := store.Load(1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rec.Mode.Selected() || len(rec.CustomPrompts) != 0 {
		t.Errorf("Expected a default record, got %+v", rec)
	}
}

func TestMemoryStoreSaveAndLoad(t *testing.T) {
	store := NewMemoryStore()

	rec := profile.NewRecord()
	rec.Mode = profile.CustomMode(0)
	rec.CustomPrompts = []profile.CustomPrompt{{Name: "p", Instruction: "i"}}
	if err := store.Save(1, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Mode.Kind != profile.ModeCustom || len(got.CustomPrompts) != 1 {
		t.Errorf("Record did not round-trip: %+v", got)
	}
}

func TestMemoryStoreCopiesRecords(t *testing.T) {
	store := NewMemoryStore()

	rec := profile.NewRecord()
	rec.CustomPrompts = []profile.CustomPrompt{{Name: "original", Instruction: "i"}}
	if err := store.Save(1, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the saved record or a loaded record must not leak into
	// the store.
	rec.CustomPrompts[0].Name = "mutated"
	loaded, _ := store.Load(1)
	loaded.CustomPrompts[0].Name = "also mutated"

	fresh, _ := store.Load(1)
	if fresh.CustomPrompts[0].Name != "original" {
		t.Errorf("Store leaked shared state: %+v", fresh.CustomPrompts)
	}
}
