package form

import "sync"

// View is the ordered set of variables exported to the rendering layer.
type View struct {
	mu   sync.RWMutex
	keys []string
	vars map[string]any
}

// NewView returns an empty view.
func NewView() *View {
	return &View{vars: make(map[string]any)}
}

// Set stores value under key, keeping the first insertion position.
func (v *View) Set(key string, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.vars == nil {
		v.vars = make(map[string]any)
	}
	if _, exists := v.vars[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.vars[key] = value
}

// Get returns the value stored under key.
func (v *View) Get(key string) (any, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	value, ok := v.vars[key]
	return value, ok
}

// Keys lists keys in insertion order.
func (v *View) Keys() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return append([]string(nil), v.keys...)
}

// Vars returns a shallow copy of the stored variables.
func (v *View) Vars() map[string]any {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make(map[string]any, len(v.vars))
	for key, value := range v.vars {
		out[key] = value
	}
	return out
}
