package metadata

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is an explicit descriptor table. It implements both Provider and
// AnnotationReader so a single value can back the assembler.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]entity
}

type entity struct {
	descriptor EntityDescriptor
	properties map[string]Property
	fields     []string
}

var (
	_ Provider         = (*Registry)(nil)
	_ AnnotationReader = (*Registry)(nil)
)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]entity)}
}

// Register validates and stores a descriptor. Translatable properties must
// carry a Column and a TranslationClass must be declared when any property is
// translatable.
func (r *Registry) Register(desc EntityDescriptor) error {
	class := strings.TrimSpace(desc.Class)
	if class == "" {
		return fmt.Errorf("metadata: entity class is required")
	}

	properties := make(map[string]Property, len(desc.Properties))
	var fields []string
	for idx, prop := range desc.Properties {
		name := strings.TrimSpace(prop.Name)
		if name == "" {
			return fmt.Errorf("metadata: %s: property %d has no name", class, idx)
		}
		if _, exists := properties[name]; exists {
			return fmt.Errorf("metadata: %s: duplicate property %q", class, name)
		}
		prop.Name = name
		prop.Annotations = append([]Annotation(nil), prop.Annotations...)
		if prop.Translatable() {
			if _, ok := prop.Column(); !ok {
				return fmt.Errorf("metadata: %s: translatable property %q has no column mapping", class, name)
			}
			fields = append(fields, name)
		}
		properties[name] = prop
	}

	if len(fields) > 0 && strings.TrimSpace(desc.TranslationClass) == "" {
		return fmt.Errorf("metadata: %s: translation class is required", class)
	}

	desc.Class = class
	desc.TranslationClass = strings.TrimSpace(desc.TranslationClass)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entities == nil {
		r.entities = make(map[string]entity)
	}
	if _, exists := r.entities[class]; exists {
		return fmt.Errorf("metadata: entity %q already registered", class)
	}
	r.entities[class] = entity{
		descriptor: desc,
		properties: properties,
		fields:     fields,
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(desc EntityDescriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Configuration implements Provider.
func (r *Registry) Configuration(ctx context.Context, entityClass string) (TranslatableConfig, error) {
	if err := ctx.Err(); err != nil {
		return TranslatableConfig{}, err
	}
	ent, ok := r.lookup(entityClass)
	if !ok {
		return TranslatableConfig{}, &LookupError{Class: entityClass, Reason: "entity is not registered"}
	}
	if len(ent.fields) == 0 {
		return TranslatableConfig{}, &LookupError{Class: entityClass, Reason: "entity has no translatable properties"}
	}
	return TranslatableConfig{
		Fields:           append([]string(nil), ent.fields...),
		UseObjectClass:   ent.descriptor.Class,
		TranslationClass: ent.descriptor.TranslationClass,
	}, nil
}

// PropertyAnnotations implements AnnotationReader.
func (r *Registry) PropertyAnnotations(ctx context.Context, class, property string) ([]Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ent, ok := r.lookup(class)
	if !ok {
		return nil, &LookupError{Class: class, Property: property, Reason: "entity is not registered"}
	}
	prop, ok := ent.properties[property]
	if !ok {
		return nil, &LookupError{Class: class, Property: property, Reason: "property does not exist"}
	}
	return append([]Annotation(nil), prop.Annotations...), nil
}

// Descriptor returns the registered descriptor for class.
func (r *Registry) Descriptor(class string) (EntityDescriptor, bool) {
	ent, ok := r.lookup(class)
	if !ok {
		return EntityDescriptor{}, false
	}
	return ent.descriptor, true
}

// Classes returns the registered entity classes sorted by name.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) lookup(class string) (entity, bool) {
	if r == nil {
		return entity{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ent, ok := r.entities[strings.TrimSpace(class)]
	return ent, ok
}
