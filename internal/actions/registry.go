package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/pkg/logger"
)

// Registry maps action names to shared Action instances. Build it once at
// startup, before serving any dispatch; after that it is read-only and safe
// for concurrent dispatch.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
	order   []string
	log     *logger.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.NewDefault("actions")
	}
	return &Registry{
		actions: make(map[string]Action),
		log:     log,
	}
}

// Register inserts an action under its metadata name. Registering a name
// twice replaces the previous action (last registration wins); a warning is
// logged so accidental shadowing is visible.
func (r *Registry) Register(a Action) {
	name := a.Metadata().Name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[name]; exists {
		r.log.WithField("action", name).Warn("action re-registered, previous registration replaced")
	} else {
		r.order = append(r.order, name)
	}
	r.actions[name] = a
}

// Get returns the action registered under name.
func (r *Registry) Get(name string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[name]
	return a, ok
}

// Names returns registered names in insertion order. Callers must not depend
// on the order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// All returns every registered action in insertion order.
func (r *Registry) All() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Action, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.actions[name])
	}
	return out
}

// Catalogue returns metadata for every registered action, one entry per
// name. This is the external contract consumed by tool-calling systems.
func (r *Registry) Catalogue() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Metadata, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.actions[name].Metadata())
	}
	return out
}

// Len reports the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// Execute dispatches by name. An unregistered name fails with
// ErrUnknownAction; everything else follows the action's own failure policy.
func (r *Registry) Execute(ctx context.Context, name string, ag *agent.Agent, input json.RawMessage) (Result, error) {
	a, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return a.Execute(ctx, ag, input)
}
