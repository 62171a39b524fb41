package assembler

import (
	"log/slog"

	internalmodel "github.com/goliatone/go-formgen-translations/internal/model"
	"github.com/goliatone/go-formgen-translations/pkg/config"
	"github.com/goliatone/go-formgen-translations/pkg/form"
	"github.com/goliatone/go-formgen-translations/pkg/model"
	"github.com/goliatone/go-formgen-translations/pkg/subscriber"
	"github.com/goliatone/go-formgen-translations/pkg/widgets"
)

const defaultLocale = "en"

// SubscriberFactory creates the change subscriber attached to every build.
type SubscriberFactory func(translationClass string) form.Subscriber

// Option customises the Assembler.
type Option func(*Assembler)

// WithDefaultLocale sets the process-wide active locale.
func WithDefaultLocale(locale string) Option {
	return func(a *Assembler) {
		a.defaultLocale = locale
	}
}

// WithLocales sets the process-wide ordered locale set.
func WithLocales(locales ...string) Option {
	return func(a *Assembler) {
		a.locales = append([]string(nil), locales...)
	}
}

// WithRequired sets the default required flag of generated fields.
func WithRequired(required bool) Option {
	return func(a *Assembler) {
		a.required = required
	}
}

// WithConfig applies process-wide defaults loaded by the config package.
// Empty values keep the current settings.
func WithConfig(defaults config.Defaults) Option {
	return func(a *Assembler) {
		if defaults.DefaultLocale != "" {
			a.defaultLocale = defaults.DefaultLocale
		}
		if len(defaults.Locales) > 0 {
			a.locales = append([]string(nil), defaults.Locales...)
		}
		a.required = defaults.Required
	}
}

// WithWidgetRegistry replaces the registry used for type detection.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(a *Assembler) {
		a.widgets = registry
	}
}

// WithLabeler overrides the label generation function. The default upper
// cases the first letter of the field name.
func WithLabeler(labeler func(string) string) Option {
	return func(a *Assembler) {
		a.labeler = labeler
	}
}

// WithHumanizedLabels splits camelCase and snake_case names into words.
func WithHumanizedLabels() Option {
	return WithLabeler(internalmodel.Humanize)
}

// WithSubscriberFactory replaces the factory creating the change subscriber.
func WithSubscriberFactory(factory SubscriberFactory) Option {
	return func(a *Assembler) {
		a.subscriberFactory = factory
	}
}

// WithDecorators registers decorators that run against the resolved field
// configs before sub-forms are registered.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(a *Assembler) {
		a.decorators = append(a.decorators, decorators...)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// WithLenientOverrides accepts overrides naming fields that are not
// translatable; they are ignored with a warning instead of failing the
// build. Without it Build returns a ConfigurationError for such keys, which
// is stricter than the historical behaviour of leaving them inert.
func WithLenientOverrides() Option {
	return func(a *Assembler) {
		a.lenientOverrides = true
	}
}

// WithSkipHiddenFields makes `display: false` drop only the field it is set
// on. Without it the first hidden field stops field resolution and the
// build produces no fields at all.
func WithSkipHiddenFields() Option {
	return func(a *Assembler) {
		a.skipHidden = true
	}
}

func defaultSubscriberFactory(logger *slog.Logger) SubscriberFactory {
	return func(translationClass string) form.Subscriber {
		return subscriber.New(translationClass, subscriber.WithLogger(logger))
	}
}
