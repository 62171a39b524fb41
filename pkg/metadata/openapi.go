package metadata

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	translatableExtensionKey     = "x-translatable"
	translatableFieldsKey        = "x-translatable-fields"
	entityClassExtensionKey      = "x-entity-class"
	translationClassExtensionKey = "x-translation-class"
	columnTypeExtensionKey       = "x-column-type"
	widgetExtensionKey           = "x-widget"
)

// FromOpenAPI derives entity descriptors from the component schemas of an
// OpenAPI document. A component is considered translatable when it lists
// x-translatable-fields or when any property sets x-translatable: true.
// Components without translatable properties are skipped.
func FromOpenAPI(ctx context.Context, data []byte) ([]EntityDescriptor, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("metadata: openapi document is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("metadata: load openapi document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []EntityDescriptor
	for _, name := range names {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		desc, ok, err := descriptorFromSchema(name, ref.Value)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, desc)
		}
	}
	return out, nil
}

// RegisterOpenAPI registers every translatable component of the document.
func RegisterOpenAPI(ctx context.Context, reg *Registry, data []byte) error {
	if reg == nil {
		return fmt.Errorf("metadata: registry is nil")
	}
	descriptors, err := FromOpenAPI(ctx, data)
	if err != nil {
		return err
	}
	for _, desc := range descriptors {
		if err := reg.Register(desc); err != nil {
			return err
		}
	}
	return nil
}

func descriptorFromSchema(name string, schema *openapi3.Schema) (EntityDescriptor, bool, error) {
	translatable, err := translatableProperties(name, schema)
	if err != nil {
		return EntityDescriptor{}, false, err
	}
	if len(translatable) == 0 {
		return EntityDescriptor{}, false, nil
	}

	class := stringExtension(schema.Extensions, entityClassExtensionKey)
	if class == "" {
		class = name
	}
	translationClass := stringExtension(schema.Extensions, translationClassExtensionKey)
	if translationClass == "" {
		translationClass = class + "Translation"
	}

	desc := EntityDescriptor{
		Class:            class,
		TranslationClass: translationClass,
	}

	marked := make(map[string]struct{}, len(translatable))
	for _, prop := range translatable {
		marked[prop] = struct{}{}
	}

	// Translatable properties keep their declared order, the rest follow
	// sorted by name.
	ordered := append([]string(nil), translatable...)
	var rest []string
	for propName := range schema.Properties {
		if _, ok := marked[propName]; !ok {
			rest = append(rest, propName)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	for _, propName := range ordered {
		ref := schema.Properties[propName]
		if ref == nil || ref.Value == nil {
			return EntityDescriptor{}, false, fmt.Errorf("metadata: openapi schema %s: property %q is undefined", name, propName)
		}
		prop := Property{Name: propName, Annotations: []Annotation{columnFromSchema(ref.Value)}}
		if _, ok := marked[propName]; ok {
			prop.Annotations = append(prop.Annotations, Translatable{})
		}
		desc.Properties = append(desc.Properties, prop)
	}

	return desc, true, nil
}

func translatableProperties(name string, schema *openapi3.Schema) ([]string, error) {
	if raw, ok := schema.Extensions[translatableFieldsKey]; ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("metadata: openapi schema %s: %s must be a list", name, translatableFieldsKey)
		}
		fields := make([]string, 0, len(list))
		for _, item := range list {
			field, ok := item.(string)
			if !ok || strings.TrimSpace(field) == "" {
				return nil, fmt.Errorf("metadata: openapi schema %s: %s entries must be names", name, translatableFieldsKey)
			}
			if _, exists := schema.Properties[field]; !exists {
				return nil, fmt.Errorf("metadata: openapi schema %s: translatable field %q is not a property", name, field)
			}
			fields = append(fields, field)
		}
		return fields, nil
	}

	var fields []string
	for propName, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		if flag, ok := ref.Value.Extensions[translatableExtensionKey].(bool); ok && flag {
			fields = append(fields, propName)
		}
	}
	sort.Strings(fields)
	return fields, nil
}

func columnFromSchema(schema *openapi3.Schema) Column {
	col := Column{
		Type:     storageTypeFromSchema(schema),
		Nullable: schema.Nullable,
		Widget:   stringExtension(schema.Extensions, widgetExtensionKey),
	}
	if schema.MaxLength != nil {
		col.Length = int(*schema.MaxLength)
	}
	return col
}

func storageTypeFromSchema(schema *openapi3.Schema) StorageType {
	if explicit := stringExtension(schema.Extensions, columnTypeExtensionKey); explicit != "" {
		return StorageType(explicit)
	}

	var kind string
	if schema.Type != nil {
		if values := schema.Type.Slice(); len(values) > 0 {
			kind = values[0]
		}
	}

	switch kind {
	case "string":
		switch strings.ToLower(strings.TrimSpace(schema.Format)) {
		case "text", "textarea", "markdown", "html":
			return StorageText
		case "date-time", "date":
			return StorageDateTime
		default:
			return StorageString
		}
	case "integer":
		return StorageInteger
	case "number":
		return StorageDecimal
	case "boolean":
		return StorageBoolean
	case "object", "array":
		return StorageJSON
	default:
		return StorageText
	}
}

func stringExtension(ext map[string]any, key string) string {
	if len(ext) == 0 {
		return ""
	}
	value, ok := ext[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
