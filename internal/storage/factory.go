package storage

import (
	"fmt"
)

// NewStore creates a new store based on options
func NewStore(opts Options) (Store, error) {
	switch opts.Type {
	case "", "sqlite":
		if opts.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path is required for sqlite storage")
		}
		return NewGormStore(opts.SQLitePath)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unsupported storage type: %s, supported types are 'sqlite' and 'memory'", opts.Type)
}
