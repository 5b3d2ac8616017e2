// Package registry provides a global registry for difficulty advisor backends.
// Backends register themselves in init() functions, allowing the commands
// to pick one by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/game"
)

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	ID          string
	Description string
}

// Factory builds an advisor from settings.
// A nil advisor with a nil error means difficulty stays fixed.
type Factory func(s config.AdvisorSettings) (game.Advisor, error)

type entry struct {
	factory     Factory
	description string
}

var (
	backends = make(map[string]entry)
	mu       sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend's init() function.
// Panics if a backend with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backends[id]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", id))
	}
	backends[id] = entry{factory: f, description: description}
}

// List returns information about all registered backends, sorted by ID.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(backends))
	for id, e := range backends {
		result = append(result, BackendInfo{ID: id, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds the backend named by s.Backend.
// Returns an error if the backend is not registered.
func Create(s config.AdvisorSettings) (game.Advisor, error) {
	mu.RLock()
	e, ok := backends[s.Backend]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown advisor backend %q", s.Backend)
	}
	return e.factory(s)
}

// Exists checks if a backend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := backends[id]
	return ok
}
