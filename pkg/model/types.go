package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Widget kinds emitted by type detection.
const (
	WidgetText     = "text"
	WidgetTextarea = "textarea"
)

// SubFormKind is the form kind registered for every per-locale sub-form.
const SubFormKind = "translationsLocale"

// View context keys exported by the assembler.
const (
	ViewDefaultLocale = "default_locale"
	ViewLocales       = "locales"
)

// FieldConfig describes one translatable field inside a locale sub-form.
// Options carries pass-through keys (max_length, trim, read_only, ...) that
// the hosting form layer interprets.
type FieldConfig struct {
	Name     string         `json:"name" yaml:"name"`
	Type     string         `json:"type" yaml:"type"`
	Label    string         `json:"label" yaml:"label"`
	Required bool           `json:"required" yaml:"required"`
	Options  map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Clone returns a deep copy of the config, including nested option values.
func (f FieldConfig) Clone() FieldConfig {
	out := f
	if f.Options != nil {
		out.Options = cloneOptions(f.Options)
	}
	return out
}

// FieldConfigs is an ordered collection of field configs. Order is the order
// in which the fields were resolved.
type FieldConfigs []FieldConfig

// Get returns the config registered under name.
func (c FieldConfigs) Get(name string) (FieldConfig, bool) {
	for _, cfg := range c {
		if cfg.Name == name {
			return cfg, true
		}
	}
	return FieldConfig{}, false
}

// Names lists field names in order.
func (c FieldConfigs) Names() []string {
	if len(c) == 0 {
		return nil
	}
	names := make([]string, len(c))
	for idx, cfg := range c {
		names[idx] = cfg.Name
	}
	return names
}

// Clone returns a deep copy so callers can hand the same configs to several
// sub-forms without aliasing.
func (c FieldConfigs) Clone() FieldConfigs {
	if c == nil {
		return nil
	}
	out := make(FieldConfigs, len(c))
	for idx, cfg := range c {
		out[idx] = cfg.Clone()
	}
	return out
}

// FieldOverride is the user supplied partial configuration for one field.
// An empty Type and nil pointers mean "not set". A non-nil empty Label is
// kept, which lets hosts suppress the label.
type FieldOverride struct {
	Display  *bool          `json:"display,omitempty" yaml:"display,omitempty"`
	Type     string         `json:"type,omitempty" yaml:"type,omitempty"`
	Label    *string        `json:"label,omitempty" yaml:"label,omitempty"`
	Required *bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Options  map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Hidden reports whether the override explicitly disables display.
func (o FieldOverride) Hidden() bool {
	return o.Display != nil && !*o.Display
}

// UnmarshalYAML accepts the flat option-bag form, folding any key that is not
// display/type/label/required into Options. Null values are treated as
// absent.
func (o *FieldOverride) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("model: decode field override: %w", err)
	}
	return o.fromMap(raw)
}

// UnmarshalJSON mirrors UnmarshalYAML for JSON payloads.
func (o *FieldOverride) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decode field override: %w", err)
	}
	return o.fromMap(raw)
}

func (o *FieldOverride) fromMap(raw map[string]any) error {
	*o = FieldOverride{}
	for key, value := range raw {
		if value == nil {
			continue
		}
		switch strings.TrimSpace(key) {
		case "display":
			flag, ok := value.(bool)
			if !ok {
				return fmt.Errorf("model: override key %q must be a boolean", key)
			}
			o.Display = &flag
		case "type":
			o.Type = fmt.Sprint(value)
		case "label":
			label := fmt.Sprint(value)
			o.Label = &label
		case "required":
			flag, ok := value.(bool)
			if !ok {
				return fmt.Errorf("model: override key %q must be a boolean", key)
			}
			o.Required = &flag
		case "options":
			nested, ok := value.(map[string]any)
			if !ok {
				return fmt.Errorf("model: override key %q must be a mapping", key)
			}
			for k, v := range nested {
				o.setOption(k, v)
			}
		default:
			o.setOption(key, value)
		}
	}
	return nil
}

func (o *FieldOverride) setOption(key string, value any) {
	if o.Options == nil {
		o.Options = make(map[string]any)
	}
	o.Options[key] = value
}

// StringList decodes either a scalar or a sequence of strings.
type StringList []string

// UnmarshalYAML coerces a scalar into a single element list.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var value string
		if err := node.Decode(&value); err != nil {
			return err
		}
		*l = StringList{value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*l = StringList(values)
		return nil
	default:
		return fmt.Errorf("model: expected string or list, got yaml kind %d", node.Kind)
	}
}

// UnmarshalJSON coerces a JSON string into a single element list.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err == nil {
		*l = StringList{value}
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("model: expected string or list: %w", err)
	}
	*l = StringList(values)
	return nil
}

// LocaleSet is the ordered list of locales a form is built for.
type LocaleSet []string

// Options are the per-build settings. Zero values fall back to the
// assembler defaults.
type Options struct {
	ByReference   *bool                    `json:"by_reference,omitempty" yaml:"by_reference,omitempty"`
	DefaultLocale StringList               `json:"default_locale,omitempty" yaml:"default_locale,omitempty"`
	Locales       LocaleSet                `json:"locales,omitempty" yaml:"locales,omitempty"`
	Fields        map[string]FieldOverride `json:"fields,omitempty" yaml:"fields,omitempty"`
	Required      *bool                    `json:"required,omitempty" yaml:"required,omitempty"`
}

func cloneOptions(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneOptions(typed)
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	default:
		return value
	}
}
