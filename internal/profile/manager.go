package profile

import (
	"fmt"
	"strings"
	"sync"
)

// Store is the persistence the Manager needs. Load returns a default
// record for unknown users, Save is a full-record upsert.
type Store interface {
	Load(userID int64) (*Record, error)
	Save(userID int64, rec *Record) error
}

// Manager owns all reads and writes of user records. Every mutation for
// a user runs under that user's lock, so handler goroutines may overlap
// freely without losing updates.
type Manager struct {
	store Store

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewManager creates a manager on top of a store.
func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		locks: make(map[int64]*sync.Mutex),
	}
}

// userLock returns the mutex serializing operations for one user.
func (m *Manager) userLock(userID int64) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[userID] = lock
	}
	return lock
}

// update runs fn on the user's current record and persists the result.
// If fn fails the record is not saved, so state never half-transitions.
func (m *Manager) update(userID int64, fn func(*Record) error) error {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	rec, err := m.store.Load(userID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", userID, err)
	}
	if err := fn(rec); err != nil {
		return err
	}
	if err := m.store.Save(userID, rec); err != nil {
		return fmt.Errorf("save user %d: %w", userID, err)
	}
	return nil
}

// Get returns the user's current record.
func (m *Manager) Get(userID int64) (*Record, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	rec, err := m.store.Load(userID)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	return rec, nil
}

// SelectBuiltin switches the user to a builtin mode and abandons any
// prompt creation in progress.
func (m *Manager) SelectBuiltin(userID int64, modeID string) (BuiltinSpec, error) {
	spec, ok := BuiltinByID(modeID)
	if !ok {
		return BuiltinSpec{}, fmt.Errorf("%w: %s", ErrUnknownMode, modeID)
	}
	err := m.update(userID, func(rec *Record) error {
		rec.Mode = BuiltinMode(modeID)
		rec.Pending = PendingAction{}
		return nil
	})
	return spec, err
}

// SelectCustom switches the user to one of their custom prompts.
// An out-of-range index leaves the record untouched.
func (m *Manager) SelectCustom(userID int64, index int) (CustomPrompt, error) {
	var selected CustomPrompt
	err := m.update(userID, func(rec *Record) error {
		if index < 0 || index >= len(rec.CustomPrompts) {
			return fmt.Errorf("%w: index %d", ErrNoSuchPrompt, index)
		}
		selected = rec.CustomPrompts[index]
		rec.Mode = CustomMode(index)
		rec.Pending = PendingAction{}
		return nil
	})
	return selected, err
}

// Reset clears the selected mode and any pending action. Custom prompts
// survive a reset.
func (m *Manager) Reset(userID int64) error {
	return m.update(userID, func(rec *Record) error {
		rec.Mode = ModeRef{}
		rec.Pending = PendingAction{}
		return nil
	})
}

// Prompts returns the user's custom prompts.
func (m *Manager) Prompts(userID int64) ([]CustomPrompt, error) {
	rec, err := m.Get(userID)
	if err != nil {
		return nil, err
	}
	return rec.CustomPrompts, nil
}

// AddPrompt appends a custom prompt and returns its index.
func (m *Manager) AddPrompt(userID int64, name, instruction string) (int, error) {
	var index int
	err := m.update(userID, func(rec *Record) error {
		var err error
		index, err = rec.AddPrompt(name, instruction)
		return err
	})
	return index, err
}

// DeletePromptAt removes a custom prompt, reindexing the selected mode.
// Returns false for an out-of-range index.
func (m *Manager) DeletePromptAt(userID int64, index int) (bool, error) {
	var deleted bool
	err := m.update(userID, func(rec *Record) error {
		deleted = rec.DeletePromptAt(index)
		return nil
	})
	return deleted, err
}

// BeginPromptCapture starts the prompt-creation dialog. Fails with
// ErrPromptLimit when the user is already at capacity.
func (m *Manager) BeginPromptCapture(userID int64) error {
	return m.update(userID, func(rec *Record) error {
		if len(rec.CustomPrompts) >= MaxCustomPrompts {
			return ErrPromptLimit
		}
		rec.Pending = PendingAction{Kind: PendingName}
		return nil
	})
}

// CancelPending abandons an in-progress prompt creation. The returned
// bool reports whether there was anything to cancel.
func (m *Manager) CancelPending(userID int64) (bool, error) {
	var had bool
	err := m.update(userID, func(rec *Record) error {
		had = rec.Pending.Kind != PendingNone
		rec.Pending = PendingAction{}
		return nil
	})
	return had, err
}

// CaptureOutcome says what a free-text message did to the pending dialog.
type CaptureOutcome int

const (
	// CaptureIgnored: no dialog was in progress, the text was not consumed.
	CaptureIgnored CaptureOutcome = iota
	// CaptureNamed: the text became the prompt's name, instruction is next.
	CaptureNamed
	// CaptureCommitted: the prompt was stored and selected.
	CaptureCommitted
)

// CaptureResult describes the effect of CaptureText.
type CaptureResult struct {
	Outcome CaptureOutcome
	Name    string // prompt name, set for CaptureNamed and CaptureCommitted
	Index   int    // stored prompt index, set for CaptureCommitted
}

// CaptureText feeds a free-text message into the prompt-creation dialog.
// Input is trimmed but otherwise taken verbatim; an empty string is a
// legal name or instruction. A failed commit leaves the dialog where it
// was so the user can retry.
func (m *Manager) CaptureText(userID int64, text string) (CaptureResult, error) {
	text = strings.TrimSpace(text)
	var res CaptureResult
	err := m.update(userID, func(rec *Record) error {
		switch rec.Pending.Kind {
		case PendingName:
			rec.Pending = PendingAction{Kind: PendingInstruction, Name: text}
			res = CaptureResult{Outcome: CaptureNamed, Name: text}
		case PendingInstruction:
			name := rec.Pending.Name
			index, err := rec.AddPrompt(name, text)
			if err != nil {
				return err
			}
			rec.Mode = CustomMode(index)
			rec.Pending = PendingAction{}
			res = CaptureResult{Outcome: CaptureCommitted, Name: name, Index: index}
		default:
			res = CaptureResult{Outcome: CaptureIgnored}
		}
		return nil
	})
	return res, err
}
