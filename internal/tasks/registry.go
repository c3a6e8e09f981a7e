package tasks

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"gymdesk/internal/models"
)

// TaskHandler executes a scheduled task. It receives the full task row so
// handlers can read arguments and retry bookkeeping, and returns a result
// map stored in the execution history.
type TaskHandler func(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error)

// Registry maps task names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]TaskHandler
}

// GlobalRegistry is the default registry the worker reads from.
var GlobalRegistry = &Registry{
	handlers: make(map[string]TaskHandler),
}

// Register adds a handler for a task name.
func (r *Registry) Register(name string, handler TaskHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Get retrieves the handler for a task name.
func (r *Registry) Get(name string) (TaskHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[name]
	return handler, ok
}

// RegisterHandler registers into the global registry.
func RegisterHandler(name string, handler TaskHandler) {
	GlobalRegistry.Register(name, handler)
}

// GetHandler looks up the global registry.
func GetHandler(name string) (TaskHandler, bool) {
	return GlobalRegistry.Get(name)
}
