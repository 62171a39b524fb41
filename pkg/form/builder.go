package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formgen-translations/pkg/model"
)

// Child is a sub-form registered on a Builder.
type Child struct {
	Name   string
	Kind   string
	Fields model.FieldConfigs
	// Data holds the values shown in (or submitted to) the child, keyed by
	// field name.
	Data map[string]any
}

// Builder collects children and subscribers for one form build. It is not
// safe for concurrent use; every request builds its own form.
type Builder struct {
	name        string
	dataClass   string
	children    []*Child
	index       map[string]int
	subscribers []Subscriber
	view        *View
}

// NewBuilder returns a builder for a form bound to dataClass.
func NewBuilder(name, dataClass string) *Builder {
	return &Builder{
		name:      name,
		dataClass: dataClass,
		index:     make(map[string]int),
		view:      NewView(),
	}
}

// Name returns the form name.
func (b *Builder) Name() string { return b.name }

// DataClass returns the class of the entity bound to the form.
func (b *Builder) DataClass() string { return b.dataClass }

// View returns the view context of the form.
func (b *Builder) View() *View { return b.view }

// Add registers a child. Adding a name twice replaces the earlier child in
// place.
func (b *Builder) Add(name, kind string, fields model.FieldConfigs) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("form: child name is required")
	}
	child := &Child{
		Name:   name,
		Kind:   kind,
		Fields: fields,
		Data:   make(map[string]any),
	}
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if idx, exists := b.index[name]; exists {
		b.children[idx] = child
		return nil
	}
	b.index[name] = len(b.children)
	b.children = append(b.children, child)
	return nil
}

// Child returns the child registered under name.
func (b *Builder) Child(name string) (*Child, bool) {
	idx, ok := b.index[name]
	if !ok {
		return nil, false
	}
	return b.children[idx], true
}

// Children returns the registered children in order.
func (b *Builder) Children() []*Child {
	return append([]*Child(nil), b.children...)
}

// AddEventSubscriber registers a lifecycle subscriber.
func (b *Builder) AddEventSubscriber(subscriber Subscriber) {
	if subscriber == nil {
		return
	}
	b.subscribers = append(b.subscribers, subscriber)
}

// Subscribers returns the registered subscribers in order.
func (b *Builder) Subscribers() []Subscriber {
	return append([]Subscriber(nil), b.subscribers...)
}

// SetData binds entity to the form and dispatches PreSetData.
func (b *Builder) SetData(ctx context.Context, entity any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	event := &Event{Form: b, Entity: entity}
	for _, subscriber := range b.subscribers {
		if err := subscriber.PreSetData(ctx, event); err != nil {
			return fmt.Errorf("form: pre set data: %w", err)
		}
	}
	return nil
}

// Submit binds values to the children and dispatches Bind. Values for
// unknown children or fields are dropped.
func (b *Builder) Submit(ctx context.Context, entity any, values Values) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bound := make(Values, len(b.children))
	for _, child := range b.children {
		submitted, ok := values[child.Name]
		if !ok {
			continue
		}
		data := make(map[string]any, len(child.Fields))
		for _, field := range child.Fields {
			if value, ok := submitted[field.Name]; ok {
				data[field.Name] = value
			}
		}
		child.Data = data
		bound[child.Name] = data
	}

	event := &Event{Form: b, Entity: entity, Values: bound}
	for _, subscriber := range b.subscribers {
		if err := subscriber.Bind(ctx, event); err != nil {
			return fmt.Errorf("form: bind: %w", err)
		}
	}
	return nil
}
