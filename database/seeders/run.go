// Package seeders provides a registry of database seed functions.
//
// Define a seeder in any file in this package:
//
//	func init() {
//	    seeders.Register("menu", SeedMenu)
//	}
//
// Then run via CLI: cuahquick seed
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(db *gorm.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry. Call from init().
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order,
// stopping on the first error.
func RunAll(db *gorm.DB) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	for _, e := range current {
		if err := e.fn(db); err != nil {
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
	}
	return nil
}
