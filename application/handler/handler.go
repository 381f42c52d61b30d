// Package handler provides the seeding steps and the registry that orders them.
package handler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/helixml/brokerseed/domain/progress"
)

// ErrNoHandler indicates no handler is registered for the step.
var ErrNoHandler = errors.New("no handler registered")

// Tracker provides progress tracking for step execution.
type Tracker interface {
	SetTotal(ctx context.Context, total int)
	SetCurrent(ctx context.Context, current int, message string)
	Skip(ctx context.Context, message string)
	Fail(ctx context.Context, message string)
	Complete(ctx context.Context)
}

// TrackerFactory creates trackers for progress reporting.
type TrackerFactory interface {
	ForStep(step progress.StepName) Tracker
}

// Handler generates the rows of one seeding step. It receives the step's
// persisted marker and returns the number of rows it inserted. Handlers
// write the marker themselves, inside the transaction of each batch.
type Handler interface {
	Execute(ctx context.Context, marker progress.Step) (int, error)
}

// Registry maps steps to their handlers and remembers registration order,
// which is the order the steps run in.
type Registry struct {
	handlers map[progress.StepName]Handler
	order    []progress.StepName
	mu       sync.RWMutex
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[progress.StepName]Handler),
	}
}

// Register adds a handler for a step.
// Registering the same step again replaces the handler but keeps its position.
func (r *Registry) Register(step progress.StepName, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[step]; !ok {
		r.order = append(r.order, step)
	}
	r.handlers[step] = handler
}

// Handler returns the handler for a step.
// Returns ErrNoHandler if no handler is registered.
func (r *Registry) Handler(step progress.StepName) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[step]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, step)
	}
	return handler, nil
}

// HasHandler checks if a handler is registered for the step.
func (r *Registry) HasHandler(step progress.StepName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[step]
	return ok
}

// Steps returns all registered steps in registration order.
func (r *Registry) Steps() []progress.StepName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]progress.StepName(nil), r.order...)
}

// Layer is a named group of consecutive steps.
type Layer struct {
	Name  string
	Steps []progress.StepName
}

// Layers groups the registered steps by layer, preserving order.
func (r *Registry) Layers() []Layer {
	var layers []Layer
	for _, step := range r.Steps() {
		name := step.Layer()
		if n := len(layers); n > 0 && layers[n-1].Name == name {
			layers[n-1].Steps = append(layers[n-1].Steps, step)
			continue
		}
		layers = append(layers, Layer{Name: name, Steps: []progress.StepName{step}})
	}
	return layers
}
