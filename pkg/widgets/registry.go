package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formgen-translations/pkg/metadata"
	"github.com/goliatone/go-formgen-translations/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText     = model.WidgetText
	WidgetTextarea = model.WidgetTextarea
)

// Matcher decides whether a widget should handle the supplied column.
type Matcher func(column metadata.Column) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widget kinds for columns based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers: string
// columns render as text inputs and every other storage type as a textarea.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget kind for a column. An explicit Widget on the
// column is honoured before matcher evaluation.
func (r *Registry) Resolve(column metadata.Column) (string, bool) {
	if explicit := strings.TrimSpace(column.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(column) {
			return entry.name, true
		}
	}
	return "", false
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetText, 90, func(column metadata.Column) bool {
		return column.Type == metadata.StorageString
	})

	r.Register(WidgetTextarea, 0, func(metadata.Column) bool {
		return true
	})
}
