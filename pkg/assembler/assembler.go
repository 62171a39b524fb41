package assembler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	internalmodel "github.com/goliatone/go-formgen-translations/internal/model"
	"github.com/goliatone/go-formgen-translations/pkg/form"
	"github.com/goliatone/go-formgen-translations/pkg/metadata"
	"github.com/goliatone/go-formgen-translations/pkg/model"
	"github.com/goliatone/go-formgen-translations/pkg/widgets"
)

// FormBuilder is the part of the hosting form layer the assembler writes to.
type FormBuilder interface {
	Add(name, kind string, fields model.FieldConfigs) error
	AddEventSubscriber(subscriber form.Subscriber)
}

// ViewContext receives the variables exported for rendering.
type ViewContext interface {
	Set(key string, value any)
}

var (
	_ FormBuilder = (*form.Builder)(nil)
	_ ViewContext = (*form.View)(nil)
)

// Assembler builds translation forms. Construct it with New.
type Assembler struct {
	provider          metadata.Provider
	reader            metadata.AnnotationReader
	widgets           *widgets.Registry
	labeler           func(string) string
	subscriberFactory SubscriberFactory
	decorators        []model.Decorator
	logger            *slog.Logger

	defaultLocale    string
	locales          []string
	required         bool
	lenientOverrides bool
	skipHidden       bool

	matcher language.Matcher
}

// New constructs an Assembler. The provider lists translatable fields and
// the reader supplies the column mapping used for widget detection.
func New(provider metadata.Provider, reader metadata.AnnotationReader, options ...Option) (*Assembler, error) {
	if provider == nil {
		return nil, errors.New("assembler: metadata provider is required")
	}
	if reader == nil {
		return nil, errors.New("assembler: annotation reader is required")
	}

	a := &Assembler{
		provider:      provider,
		reader:        reader,
		defaultLocale: defaultLocale,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	a.applyDefaults()

	if err := validateLocale("default_locale", a.defaultLocale); err != nil {
		return nil, err
	}
	if err := validateLocales("locales", a.locales); err != nil {
		return nil, err
	}
	if len(a.locales) > 0 {
		a.matcher = language.NewMatcher(mustTags(a.locales))
	}
	return a, nil
}

func (a *Assembler) applyDefaults() {
	a.defaultLocale = strings.TrimSpace(a.defaultLocale)
	if a.widgets == nil {
		a.widgets = widgets.NewRegistry()
	}
	if a.labeler == nil {
		a.labeler = internalmodel.Capitalize
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	if a.subscriberFactory == nil {
		a.subscriberFactory = defaultSubscriberFactory(a.logger)
	}
}

// DefaultLocale returns the configured active locale.
func (a *Assembler) DefaultLocale() string { return a.defaultLocale }

// Locales returns the configured locale set.
func (a *Assembler) Locales() []string { return append([]string(nil), a.locales...) }

// Request describes one form build.
type Request struct {
	// EntityClass identifies the entity bound to the parent form.
	EntityClass string

	// Builder receives the per-locale sub-forms and the change subscriber.
	Builder FormBuilder

	// View receives default_locale and locales. Optional.
	View ViewContext

	// Options carries per-build overrides of the assembler defaults.
	Options model.Options
}

// Result summarises a completed build.
type Result struct {
	EntityClass      string             `json:"entityClass"`
	TranslationClass string             `json:"translationClass"`
	Fields           model.FieldConfigs `json:"fields"`
	Locales          []string           `json:"locales"`
	DefaultLocales   []string           `json:"defaultLocale"`
	ByReference      bool               `json:"byReference"`
	Subscriber       form.Subscriber    `json:"-"`
}

// Build resolves field configs for the entity, registers one sub-form per
// locale, attaches the change subscriber and exports the view context. Any
// metadata or configuration failure aborts the build.
func (a *Assembler) Build(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("assembler: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.EntityClass) == "" {
		return nil, errors.New("assembler: entity class is required")
	}
	if req.Builder == nil {
		return nil, errors.New("assembler: form builder is required")
	}

	settings, err := a.resolveOptions(req.Options)
	if err != nil {
		return nil, err
	}

	cfg, err := a.provider.Configuration(ctx, req.EntityClass)
	if err != nil {
		return nil, fmt.Errorf("assembler: translatable configuration: %w", err)
	}

	if err := a.checkOverrides(cfg, settings.overrides); err != nil {
		return nil, err
	}

	fields, err := a.ResolveFieldConfigs(ctx, cfg, settings.overrides, settings.required)
	if err != nil {
		return nil, err
	}
	fields, err = a.applyDecorators(fields)
	if err != nil {
		return nil, err
	}

	if err := a.BuildLocalizedSubForms(req.Builder, fields, settings.locales); err != nil {
		return nil, err
	}
	sub := a.AttachChangeSubscriber(req.Builder, cfg.TranslationClass)
	if req.View != nil {
		a.ExportViewContext(req.View, settings.defaultLocales, settings.locales)
	}

	a.logger.DebugContext(ctx, "translation form assembled",
		"entity", cfg.UseObjectClass,
		"translation_class", cfg.TranslationClass,
		"fields", fields.Names(),
		"locales", settings.locales,
	)

	return &Result{
		EntityClass:      cfg.UseObjectClass,
		TranslationClass: cfg.TranslationClass,
		Fields:           fields,
		Locales:          append([]string(nil), settings.locales...),
		DefaultLocales:   append([]string(nil), settings.defaultLocales...),
		Subscriber:       sub,
	}, nil
}

type buildSettings struct {
	defaultLocales []string
	locales        []string
	required       bool
	overrides      map[string]model.FieldOverride
}

func (a *Assembler) resolveOptions(opts model.Options) (buildSettings, error) {
	if opts.ByReference != nil && *opts.ByReference {
		return buildSettings{}, configError("by_reference", "translation forms never bind by reference")
	}

	settings := buildSettings{
		defaultLocales: []string{a.defaultLocale},
		locales:        a.locales,
		required:       a.required,
		overrides:      opts.Fields,
	}
	if len(opts.DefaultLocale) > 0 {
		settings.defaultLocales = append([]string(nil), opts.DefaultLocale...)
		if err := validateLocales("default_locale", settings.defaultLocales); err != nil {
			return buildSettings{}, err
		}
	}
	if opts.Locales != nil {
		settings.locales = append([]string(nil), opts.Locales...)
		if err := validateLocales("locales", settings.locales); err != nil {
			return buildSettings{}, err
		}
	}
	if opts.Required != nil {
		settings.required = *opts.Required
	}
	return settings, nil
}

func (a *Assembler) checkOverrides(cfg metadata.TranslatableConfig, overrides map[string]model.FieldOverride) error {
	if len(overrides) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(cfg.Fields))
	for _, name := range cfg.Fields {
		known[name] = struct{}{}
	}
	for name := range overrides {
		if _, ok := known[name]; ok {
			continue
		}
		if a.lenientOverrides {
			a.logger.Warn("override ignored: field is not translatable",
				"entity", cfg.UseObjectClass,
				"field", name,
			)
			continue
		}
		return configError("fields", "%q is not a translatable field of %s", name, cfg.UseObjectClass)
	}
	return nil
}

func (a *Assembler) applyDecorators(fields model.FieldConfigs) (model.FieldConfigs, error) {
	for _, decorator := range a.decorators {
		if decorator == nil {
			continue
		}
		decorated, err := decorator.Decorate(fields)
		if err != nil {
			return nil, fmt.Errorf("assembler: decorate fields: %w", err)
		}
		fields = decorated
	}
	return fields, nil
}

// BuildLocalizedSubForms registers one sub-form per locale, in order, each
// with its own copy of fields.
func (a *Assembler) BuildLocalizedSubForms(builder FormBuilder, fields model.FieldConfigs, locales []string) error {
	for _, locale := range locales {
		if err := builder.Add(locale, model.SubFormKind, fields.Clone()); err != nil {
			return fmt.Errorf("assembler: register %s sub-form: %w", locale, err)
		}
	}
	return nil
}

// AttachChangeSubscriber creates the change subscriber for translationClass
// and registers it on builder.
func (a *Assembler) AttachChangeSubscriber(builder FormBuilder, translationClass string) form.Subscriber {
	sub := a.subscriberFactory(translationClass)
	builder.AddEventSubscriber(sub)
	return sub
}

// ExportViewContext publishes the active locale(s) and the locale set.
func (a *Assembler) ExportViewContext(view ViewContext, active, locales []string) {
	view.Set(model.ViewDefaultLocale, append([]string(nil), active...))
	view.Set(model.ViewLocales, append([]string(nil), locales...))
}
