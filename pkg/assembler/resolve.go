package assembler

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formgen-translations/pkg/metadata"
	"github.com/goliatone/go-formgen-translations/pkg/model"
)

// ResolveFieldConfigs builds one config per translatable field, in metadata
// order. Overrides win for type, label and required; their remaining keys
// are copied into Options.
//
// Unless WithSkipHiddenFields is set, an override with `display: false`
// stops resolution and the result is empty.
func (a *Assembler) ResolveFieldConfigs(ctx context.Context, cfg metadata.TranslatableConfig, overrides map[string]model.FieldOverride, required bool) (model.FieldConfigs, error) {
	fields := make(model.FieldConfigs, 0, len(cfg.Fields))
	for _, name := range cfg.Fields {
		override, ok := overrides[name]
		if !ok {
			kind, err := a.DetectFieldType(ctx, cfg.UseObjectClass, name)
			if err != nil {
				return nil, err
			}
			fields = append(fields, model.FieldConfig{
				Name:     name,
				Type:     kind,
				Label:    a.labeler(name),
				Required: required,
			})
			continue
		}

		if override.Hidden() {
			if a.skipHidden {
				continue
			}
			a.logger.WarnContext(ctx, "hidden field stopped field resolution",
				"entity", cfg.UseObjectClass,
				"field", name,
			)
			return model.FieldConfigs{}, nil
		}

		field := model.FieldConfig{
			Name:     name,
			Type:     override.Type,
			Required: required,
		}
		if field.Type == "" {
			kind, err := a.DetectFieldType(ctx, cfg.UseObjectClass, name)
			if err != nil {
				return nil, err
			}
			field.Type = kind
		}
		if override.Label != nil {
			field.Label = *override.Label
		} else {
			field.Label = a.labeler(name)
		}
		if override.Required != nil {
			field.Required = *override.Required
		}
		field.Options = override.Options
		fields = append(fields, field.Clone())
	}
	return fields, nil
}

// DetectFieldType returns the widget kind for a property from its first
// column-mapping descriptor: "text" for string columns, "textarea"
// otherwise (unless the widget registry was extended).
func (a *Assembler) DetectFieldType(ctx context.Context, class, field string) (string, error) {
	annotations, err := a.reader.PropertyAnnotations(ctx, class, field)
	if err != nil {
		return "", fmt.Errorf("assembler: detect field type: %w", err)
	}
	column, ok := metadata.FindColumn(annotations)
	if !ok {
		return "", fmt.Errorf("assembler: detect field type: %w", &metadata.LookupError{
			Class:    class,
			Property: field,
			Reason:   "no column mapping",
		})
	}
	kind, ok := a.widgets.Resolve(column)
	if !ok {
		return "", fmt.Errorf("assembler: detect field type: %w", &metadata.LookupError{
			Class:    class,
			Property: field,
			Reason:   fmt.Sprintf("no widget for column type %q", column.Type),
		})
	}
	return kind, nil
}
