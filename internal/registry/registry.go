// Package registry provides a global registry of heuristic controller policies.
// Policies register themselves in init() functions, allowing the CLI and the
// views to fly them by name next to evolved networks.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/neuroflap/internal/flappy"
)

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	ID          string
	Description string
}

// Factory creates a fresh controller. Controllers may keep per-agent state,
// so every agent gets its own instance.
type Factory func() flappy.Controller

type entry struct {
	factory     Factory
	description string
}

var (
	policies = make(map[string]entry)
	mu       sync.RWMutex
)

// Register adds a policy factory to the registry.
// Panics if a policy with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := policies[id]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", id))
	}

	policies[id] = entry{factory: f, description: description}
}

// List returns information about all registered policies, sorted by ID.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(policies))
	for id, e := range policies {
		result = append(result, PolicyInfo{ID: id, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a controller by policy ID.
// Returns an error if the policy ID is not registered.
func Create(id string) (flappy.Controller, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := policies[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown policy %q", id)
	}

	return e.factory(), nil
}

// Exists checks if a policy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := policies[id]
	return ok
}
