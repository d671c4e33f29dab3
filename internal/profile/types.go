package profile

// MaxCustomPrompts limits how many custom editing prompts a user may keep.
const MaxCustomPrompts = 3

// ModeKind discriminates the variants of ModeRef.
type ModeKind int

const (
	ModeNone ModeKind = iota
	ModeBuiltin
	ModeCustom
)

// ModeRef identifies the editing mode a user has selected.
// The zero value means no mode is selected.
type ModeRef struct {
	Kind  ModeKind
	ID    string // builtin mode id, set when Kind == ModeBuiltin
	Index int    // custom prompt index, set when Kind == ModeCustom
}

// BuiltinMode returns a ModeRef pointing at a builtin mode.
func BuiltinMode(id string) ModeRef {
	return ModeRef{Kind: ModeBuiltin, ID: id}
}

// CustomMode returns a ModeRef pointing at the user's custom prompt i.
func CustomMode(i int) ModeRef {
	return ModeRef{Kind: ModeCustom, Index: i}
}

// Selected reports whether any mode is selected.
func (m ModeRef) Selected() bool {
	return m.Kind != ModeNone
}

// CustomPrompt is a user-defined editing instruction.
type CustomPrompt struct {
	Name        string
	Instruction string
}

// PendingKind discriminates the steps of the prompt-creation dialog.
type PendingKind int

const (
	PendingNone PendingKind = iota
	PendingName
	PendingInstruction
)

// PendingAction tracks an in-progress custom prompt creation.
// Name carries the already-captured prompt name while the
// instruction text is awaited.
type PendingAction struct {
	Kind PendingKind
	Name string
}

// Record is the complete per-user state. The whole record is the unit
// of persistence: stores load and save it atomically.
type Record struct {
	Mode          ModeRef
	CustomPrompts []CustomPrompt
	Pending       PendingAction
}

// NewRecord returns the default state for a user with no history.
func NewRecord() *Record {
	return &Record{}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	cp := *r
	cp.CustomPrompts = make([]CustomPrompt, len(r.CustomPrompts))
	copy(cp.CustomPrompts, r.CustomPrompts)
	return &cp
}

// AddPrompt appends a custom prompt and returns its index.
// Fails with ErrPromptLimit when the record is at capacity.
func (r *Record) AddPrompt(name, instruction string) (int, error) {
	if len(r.CustomPrompts) >= MaxCustomPrompts {
		return 0, ErrPromptLimit
	}
	r.CustomPrompts = append(r.CustomPrompts, CustomPrompt{Name: name, Instruction: instruction})
	return len(r.CustomPrompts) - 1, nil
}

// DeletePromptAt removes the custom prompt at index i and reindexes the
// selected mode: a mode pointing at i becomes unselected, a mode pointing
// past i shifts down by one. Returns false when i is out of range.
func (r *Record) DeletePromptAt(i int) bool {
	if i < 0 || i >= len(r.CustomPrompts) {
		return false
	}
	r.CustomPrompts = append(r.CustomPrompts[:i], r.CustomPrompts[i+1:]...)
	if r.Mode.Kind == ModeCustom {
		switch {
		case r.Mode.Index == i:
			r.Mode = ModeRef{}
		case r.Mode.Index > i:
			r.Mode.Index--
		}
	}
	return true
}
