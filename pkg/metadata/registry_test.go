package metadata_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-translations/pkg/metadata"
)

func articleDescriptor() metadata.EntityDescriptor {
	return metadata.EntityDescriptor{
		Class:            "App\\Entity\\Article",
		TranslationClass: "App\\Entity\\ArticleTranslation",
		Properties: []metadata.Property{
			{Name: "id", Annotations: []metadata.Annotation{metadata.Column{Type: metadata.StorageInteger}}},
			{Name: "title", Annotations: []metadata.Annotation{metadata.Translatable{}, metadata.Column{Type: metadata.StorageString, Length: 255}}},
			{Name: "body", Annotations: []metadata.Annotation{metadata.Column{Type: metadata.StorageText}, metadata.Translatable{}}},
			{Name: "locale", Annotations: []metadata.Annotation{metadata.Locale{}}},
		},
	}
}

func TestRegistry_Configuration(t *testing.T) {
	reg := metadata.NewRegistry()
	reg.MustRegister(articleDescriptor())

	cfg, err := reg.Configuration(context.Background(), "App\\Entity\\Article")
	if err != nil {
		t.Fatalf("configuration: %v", err)
	}

	want := metadata.TranslatableConfig{
		Fields:           []string{"title", "body"},
		UseObjectClass:   "App\\Entity\\Article",
		TranslationClass: "App\\Entity\\ArticleTranslation",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("configuration mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_PropertyAnnotations(t *testing.T) {
	reg := metadata.NewRegistry()
	reg.MustRegister(articleDescriptor())
	ctx := context.Background()

	annotations, err := reg.PropertyAnnotations(ctx, "App\\Entity\\Article", "body")
	if err != nil {
		t.Fatalf("annotations: %v", err)
	}
	col, ok := metadata.FindColumn(annotations)
	if !ok || col.Type != metadata.StorageText {
		t.Fatalf("expected text column, got %+v (ok=%v)", col, ok)
	}

	_, err = reg.PropertyAnnotations(ctx, "App\\Entity\\Article", "missing")
	if !errors.Is(err, metadata.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var lookup *metadata.LookupError
	if !errors.As(err, &lookup) || lookup.Property != "missing" {
		t.Fatalf("expected LookupError for property, got %#v", err)
	}

	if _, err := reg.Configuration(ctx, "App\\Entity\\Unknown"); !errors.Is(err, metadata.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown entity, got %v", err)
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		desc metadata.EntityDescriptor
	}{
		{
			name: "missing class",
			desc: metadata.EntityDescriptor{},
		},
		{
			name: "duplicate property",
			desc: metadata.EntityDescriptor{
				Class:            "A",
				TranslationClass: "AT",
				Properties: []metadata.Property{
					{Name: "title", Annotations: []metadata.Annotation{metadata.Column{Type: metadata.StorageString}}},
					{Name: "title", Annotations: []metadata.Annotation{metadata.Column{Type: metadata.StorageString}}},
				},
			},
		},
		{
			name: "translatable without column",
			desc: metadata.EntityDescriptor{
				Class:            "A",
				TranslationClass: "AT",
				Properties: []metadata.Property{
					{Name: "title", Annotations: []metadata.Annotation{metadata.Translatable{}}},
				},
			},
		},
		{
			name: "translatable without translation class",
			desc: metadata.EntityDescriptor{
				Class: "A",
				Properties: []metadata.Property{
					{Name: "title", Annotations: []metadata.Annotation{metadata.Translatable{}, metadata.Column{Type: metadata.StorageString}}},
				},
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := metadata.NewRegistry().Register(tc.desc); err == nil {
				t.Fatalf("expected registration error")
			}
		})
	}

	reg := metadata.NewRegistry()
	reg.MustRegister(articleDescriptor())
	if err := reg.Register(articleDescriptor()); err == nil {
		t.Fatalf("expected duplicate entity error")
	}
}

func TestLoadFS(t *testing.T) {
	reg, err := metadata.LoadFS(os.DirFS("testdata/descriptors"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"App\\Entity\\Article", "App\\Entity\\Category"}, reg.Classes()); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}

	ctx := context.Background()
	cfg, err := reg.Configuration(ctx, "App\\Entity\\Article")
	if err != nil {
		t.Fatalf("configuration: %v", err)
	}
	if diff := cmp.Diff([]string{"title", "body", "slug"}, cfg.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	annotations, err := reg.PropertyAnnotations(ctx, "App\\Entity\\Category", "description")
	if err != nil {
		t.Fatalf("annotations: %v", err)
	}
	col, _ := metadata.FindColumn(annotations)
	if diff := cmp.Diff(metadata.Column{Type: metadata.StorageText, Nullable: true}, col); diff != "" {
		t.Fatalf("column mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPI(t *testing.T) {
	data, err := os.ReadFile("testdata/catalog.openapi.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	reg := metadata.NewRegistry()
	if err := metadata.RegisterOpenAPI(context.Background(), reg, data); err != nil {
		t.Fatalf("register openapi: %v", err)
	}

	if diff := cmp.Diff([]string{"App\\Entity\\Product", "Tag"}, reg.Classes()); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}

	ctx := context.Background()
	product, err := reg.Configuration(ctx, "App\\Entity\\Product")
	if err != nil {
		t.Fatalf("product configuration: %v", err)
	}
	wantProduct := metadata.TranslatableConfig{
		Fields:           []string{"name", "description"},
		UseObjectClass:   "App\\Entity\\Product",
		TranslationClass: "App\\Entity\\ProductTranslation",
	}
	if diff := cmp.Diff(wantProduct, product); diff != "" {
		t.Fatalf("product mismatch (-want +got):\n%s", diff)
	}

	tag, err := reg.Configuration(ctx, "Tag")
	if err != nil {
		t.Fatalf("tag configuration: %v", err)
	}
	if tag.TranslationClass != "TagTranslation" {
		t.Fatalf("expected derived translation class, got %q", tag.TranslationClass)
	}
	if diff := cmp.Diff([]string{"label", "notes"}, tag.Fields); diff != "" {
		t.Fatalf("tag fields mismatch (-want +got):\n%s", diff)
	}

	columns := map[string]metadata.Column{}
	for _, prop := range []struct{ class, name string }{
		{"App\\Entity\\Product", "name"},
		{"App\\Entity\\Product", "description"},
		{"App\\Entity\\Product", "price"},
		{"Tag", "notes"},
	} {
		annotations, err := reg.PropertyAnnotations(ctx, prop.class, prop.name)
		if err != nil {
			t.Fatalf("annotations %s.%s: %v", prop.class, prop.name, err)
		}
		col, _ := metadata.FindColumn(annotations)
		columns[prop.name] = col
	}

	want := map[string]metadata.Column{
		"name":        {Type: metadata.StorageString, Length: 120},
		"description": {Type: metadata.StorageText},
		"price":       {Type: metadata.StorageDecimal},
		"notes":       {Type: metadata.StorageText},
	}
	if diff := cmp.Diff(want, columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Descriptor(t *testing.T) {
	reg := metadata.NewRegistry()
	reg.MustRegister(articleDescriptor())

	desc, ok := reg.Descriptor(" App\\Entity\\Article ")
	if !ok {
		t.Fatalf("expected descriptor")
	}
	if desc.TranslationClass != "App\\Entity\\ArticleTranslation" {
		t.Fatalf("unexpected translation class %q", desc.TranslationClass)
	}
	if len(desc.Properties) != len(articleDescriptor().Properties) {
		t.Fatalf("expected %d properties, got %d", len(articleDescriptor().Properties), len(desc.Properties))
	}

	if _, ok := reg.Descriptor("App\\Entity\\Missing"); ok {
		t.Fatalf("expected miss for unregistered class")
	}
}
