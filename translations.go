package translations

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formgen-translations/pkg/assembler"
	"github.com/goliatone/go-formgen-translations/pkg/form"
	"github.com/goliatone/go-formgen-translations/pkg/metadata"
	"github.com/goliatone/go-formgen-translations/pkg/model"
)

// FieldConfig aliases model.FieldConfig for callers of the root package.
type FieldConfig = model.FieldConfig

// FieldOverride aliases model.FieldOverride.
type FieldOverride = model.FieldOverride

// Options aliases model.Options, the per-build settings.
type Options = model.Options

// Result aliases assembler.Result.
type Result = assembler.Result

// NewAssembler exposes the assembler constructor from the top-level module.
func NewAssembler(provider metadata.Provider, reader metadata.AnnotationReader, options ...assembler.Option) (*assembler.Assembler, error) {
	return assembler.New(provider, reader, options...)
}

// NewRegistryFromFS loads entity descriptors from YAML/JSON files.
func NewRegistryFromFS(fsys fs.FS) (*metadata.Registry, error) {
	return metadata.LoadFS(fsys)
}

// BuildForm is the simplest entry point: it builds a translations form for
// entityClass from a descriptor registry and returns the form together with
// the build result.
func BuildForm(ctx context.Context, registry *metadata.Registry, entityClass string, opts Options, options ...assembler.Option) (*form.Builder, *Result, error) {
	asm, err := assembler.New(registry, registry, options...)
	if err != nil {
		return nil, nil, err
	}
	builder := form.NewBuilder("translations", entityClass)
	result, err := asm.Build(ctx, assembler.Request{
		EntityClass: entityClass,
		Builder:     builder,
		View:        builder.View(),
		Options:     opts,
	})
	if err != nil {
		return nil, nil, err
	}
	return builder, result, nil
}
