package storage

import (
	"voice-bot/internal/profile"
)

// Store defines the interface for persistent user state storage.
// Load never reports a missing user: unknown users get a fresh default
// record. Save upserts the whole record; the record is the unit of
// atomicity.
type Store interface {
	Load(userID int64) (*profile.Record, error)
	Save(userID int64, rec *profile.Record) error
	Close() error
}

// Options contains configuration options for storage
type Options struct {
	Type       string // "sqlite" or "memory"
	SQLitePath string // path to the SQLite database file
}
