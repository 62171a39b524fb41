package metadata

import "context"

// StorageType is the declared column type of a mapped property.
type StorageType string

const (
	StorageString   StorageType = "string"
	StorageText     StorageType = "text"
	StorageInteger  StorageType = "integer"
	StorageDecimal  StorageType = "decimal"
	StorageBoolean  StorageType = "boolean"
	StorageDateTime StorageType = "datetime"
	StorageJSON     StorageType = "json"
)

// Annotation is a mapping descriptor attached to an entity property.
type Annotation interface {
	annotation()
}

// Column is the column-mapping descriptor of a property.
type Column struct {
	Type     StorageType `json:"type" yaml:"type"`
	Length   int         `json:"length,omitempty" yaml:"length,omitempty"`
	Nullable bool        `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	// Widget pins the widget kind, bypassing type detection.
	Widget string `json:"widget,omitempty" yaml:"widget,omitempty"`
}

// Translatable marks a property as having per-locale variants.
type Translatable struct{}

// Locale marks the property holding the entity's active locale.
type Locale struct{}

func (Column) annotation()       {}
func (Translatable) annotation() {}
func (Locale) annotation()       {}

// Property declares one mapped entity property.
type Property struct {
	Name        string
	Annotations []Annotation
}

// Column returns the first column-mapping descriptor of the property.
func (p Property) Column() (Column, bool) {
	return FindColumn(p.Annotations)
}

// Translatable reports whether the property carries a Translatable marker.
func (p Property) Translatable() bool {
	for _, ann := range p.Annotations {
		if _, ok := ann.(Translatable); ok {
			return true
		}
	}
	return false
}

// EntityDescriptor declares a translatable entity.
type EntityDescriptor struct {
	// Class identifies the entity (for example "App\\Entity\\Article").
	Class string
	// TranslationClass identifies the record type holding translations.
	TranslationClass string
	Properties       []Property
}

// TranslatableConfig is what a Provider reports for an entity.
type TranslatableConfig struct {
	Fields           []string `json:"fields"`
	UseObjectClass   string   `json:"useObjectClass"`
	TranslationClass string   `json:"translationClass"`
}

// Provider resolves translation metadata for an entity class.
type Provider interface {
	Configuration(ctx context.Context, entityClass string) (TranslatableConfig, error)
}

// AnnotationReader returns the mapping annotations attached to a property.
type AnnotationReader interface {
	PropertyAnnotations(ctx context.Context, class, property string) ([]Annotation, error)
}

// FindColumn returns the first Column among annotations.
func FindColumn(annotations []Annotation) (Column, bool) {
	for _, ann := range annotations {
		switch col := ann.(type) {
		case Column:
			return col, true
		case *Column:
			if col != nil {
				return *col, true
			}
		}
	}
	return Column{}, false
}
