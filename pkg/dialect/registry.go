package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Profile registry
var (
	profilesMu sync.RWMutex
	profiles   = make(map[string]*Profile)
)

// ErrUnknownDialect is returned when no profile is registered for a name.
var ErrUnknownDialect = errors.New("unknown dialect")

// Get returns a profile by name (case-insensitive).
func Get(name string) (*Profile, error) {
	profilesMu.RLock()
	defer profilesMu.RUnlock()
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, name)
	}
	return p, nil
}

// Register registers a profile in the global registry.
// Called by profile implementations in their init() functions.
func Register(p *Profile) {
	profilesMu.Lock()
	defer profilesMu.Unlock()
	profiles[strings.ToLower(p.Name)] = p
}

// List returns all registered dialect names (sorted).
func List() []string {
	profilesMu.RLock()
	defer profilesMu.RUnlock()
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
