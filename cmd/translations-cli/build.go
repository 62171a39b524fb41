package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-translations/pkg/assembler"
	"github.com/goliatone/go-formgen-translations/pkg/config"
	"github.com/goliatone/go-formgen-translations/pkg/form"
	"github.com/goliatone/go-formgen-translations/pkg/metadata"
	"github.com/goliatone/go-formgen-translations/pkg/model"
)

type buildFlags struct {
	entity         string
	descriptors    string
	openapi        string
	configPath     string
	optionsPath    string
	acceptLanguage string
	humanize       bool
	lenient        bool
	skipHidden     bool
}

// buildOutput is the JSON document printed by the build command.
type buildOutput struct {
	Result     *assembler.Result             `json:"result"`
	Negotiated string                        `json:"negotiatedLocale"`
	Forms      map[string]model.FieldConfigs `json:"forms"`
	View       map[string]any                `json:"view"`
}

func newBuildCommand(root *rootFlags) *cobra.Command {
	flags := &buildFlags{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the translations form for an entity and print it as JSON",
		Example: `  translations-cli build --entity 'App\Entity\Article' --descriptors ./descriptors \
    --config defaults.yaml --options article.yaml --accept-language fr`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd.ErrOrStderr(), root.verbose)
			return runBuild(cmd.Context(), cmd.OutOrStdout(), logger, flags)
		},
	}

	cmd.Flags().StringVar(&flags.entity, "entity", "", "entity class to build the form for")
	cmd.Flags().StringVar(&flags.descriptors, "descriptors", "", "directory with YAML/JSON entity descriptors")
	cmd.Flags().StringVar(&flags.openapi, "openapi", "", "OpenAPI document with x-translatable schemas")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "YAML file with default_locale, locales and required")
	cmd.Flags().StringVar(&flags.optionsPath, "options", "", "YAML/JSON file with per-build options")
	cmd.Flags().StringVar(&flags.acceptLanguage, "accept-language", "", "Accept-Language header used to pick the active locale")
	cmd.Flags().BoolVar(&flags.humanize, "humanize", false, "split field names into words for labels")
	cmd.Flags().BoolVar(&flags.lenient, "lenient", false, "ignore overrides for fields that are not translatable")
	cmd.Flags().BoolVar(&flags.skipHidden, "skip-hidden", false, "drop only fields marked display: false")
	_ = cmd.MarkFlagRequired("entity")
	return cmd
}

func runBuild(ctx context.Context, out io.Writer, logger *slog.Logger, flags *buildFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if flags.descriptors == "" && flags.openapi == "" {
		return errors.New("one of --descriptors or --openapi is required")
	}

	registry, err := loadRegistry(ctx, flags)
	if err != nil {
		return err
	}

	desc, ok := registry.Descriptor(flags.entity)
	if !ok {
		return fmt.Errorf("entity %q is not registered (known: %s)", flags.entity, strings.Join(registry.Classes(), ", "))
	}
	logger.DebugContext(ctx, "entity descriptor loaded",
		"entity", desc.Class,
		"translation_class", desc.TranslationClass,
		"properties", len(desc.Properties),
	)

	defaults, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	var opts model.Options
	if flags.optionsPath != "" {
		opts, err = config.LoadOptions(flags.optionsPath)
		if err != nil {
			return err
		}
	}

	asmOptions := []assembler.Option{
		assembler.WithConfig(defaults),
		assembler.WithLogger(logger),
	}
	if flags.humanize {
		asmOptions = append(asmOptions, assembler.WithHumanizedLabels())
	}
	if flags.lenient {
		asmOptions = append(asmOptions, assembler.WithLenientOverrides())
	}
	if flags.skipHidden {
		asmOptions = append(asmOptions, assembler.WithSkipHiddenFields())
	}

	asm, err := assembler.New(registry, registry, asmOptions...)
	if err != nil {
		return err
	}

	negotiated := asm.NegotiateLocale(flags.acceptLanguage)
	if len(opts.DefaultLocale) == 0 && strings.TrimSpace(flags.acceptLanguage) != "" {
		opts.DefaultLocale = model.StringList{negotiated}
	}

	builder := form.NewBuilder("translations", flags.entity)
	result, err := asm.Build(ctx, assembler.Request{
		EntityClass: flags.entity,
		Builder:     builder,
		View:        builder.View(),
		Options:     opts,
	})
	if err != nil {
		return err
	}

	payload := buildOutput{
		Result:     result,
		Negotiated: negotiated,
		Forms:      make(map[string]model.FieldConfigs),
		View:       builder.View().Vars(),
	}
	for _, child := range builder.Children() {
		payload.Forms[child.Name] = child.Fields
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func loadRegistry(ctx context.Context, flags *buildFlags) (*metadata.Registry, error) {
	registry := metadata.NewRegistry()
	if flags.descriptors != "" {
		if err := metadata.LoadInto(registry, os.DirFS(flags.descriptors)); err != nil {
			return nil, err
		}
	}
	if flags.openapi != "" {
		data, err := os.ReadFile(flags.openapi)
		if err != nil {
			return nil, fmt.Errorf("read openapi document: %w", err)
		}
		if err := metadata.RegisterOpenAPI(ctx, registry, data); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
