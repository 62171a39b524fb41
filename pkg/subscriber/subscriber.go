package subscriber

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formgen-translations/pkg/form"
)

// Option configures a Subscriber.
type Option func(*Subscriber)

// WithSanitizer replaces the default bluemonday based sanitizer.
func WithSanitizer(s Sanitizer) Option {
	return func(sub *Subscriber) {
		if s != nil {
			sub.sanitizer = s
		}
	}
}

// WithoutSanitizer stores submitted content verbatim.
func WithoutSanitizer() Option {
	return func(sub *Subscriber) {
		sub.sanitizer = passthrough{}
	}
}

// WithLogger sets the logger used for bind diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(sub *Subscriber) {
		if logger != nil {
			sub.logger = logger
		}
	}
}

// Subscriber keeps per-locale sub-forms and entity translations in sync.
// Children of the form are expected to be named after their locale.
type Subscriber struct {
	translationClass string
	sanitizer        Sanitizer
	logger           *slog.Logger
}

var _ form.Subscriber = (*Subscriber)(nil)

// New returns a subscriber creating translation records of translationClass.
func New(translationClass string, options ...Option) *Subscriber {
	sub := &Subscriber{
		translationClass: translationClass,
		sanitizer:        NewPolicySanitizer(),
		logger:           slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(sub)
		}
	}
	return sub
}

// TranslationClass returns the class assigned to created records.
func (s *Subscriber) TranslationClass() string {
	return s.translationClass
}

// PreSetData copies stored translations into the matching locale children.
func (s *Subscriber) PreSetData(ctx context.Context, event *form.Event) error {
	if event == nil || event.Form == nil || event.Entity == nil {
		return nil
	}
	entity, err := translatable(event.Entity)
	if err != nil {
		return err
	}

	for _, t := range entity.Translations() {
		if t == nil {
			continue
		}
		child, ok := event.Form.Child(t.Locale)
		if !ok {
			continue
		}
		if _, known := child.Fields.Get(t.Field); !known {
			continue
		}
		if child.Data == nil {
			child.Data = make(map[string]any)
		}
		child.Data[t.Field] = t.Content
	}
	return nil
}

// Bind writes submitted values back into the entity's translations,
// updating existing records and creating new ones for non-empty content.
func (s *Subscriber) Bind(ctx context.Context, event *form.Event) error {
	if event == nil || event.Form == nil || event.Entity == nil {
		return nil
	}
	entity, err := translatable(event.Entity)
	if err != nil {
		return err
	}

	for _, child := range event.Form.Children() {
		submitted, ok := event.Values[child.Name]
		if !ok {
			continue
		}
		for _, field := range child.Fields {
			value, ok := submitted[field.Name]
			if !ok {
				continue
			}
			content := s.sanitizer.Sanitize(field.Type, stringify(value))

			if existing, found := Find(entity, child.Name, field.Name); found {
				existing.Content = content
				continue
			}
			if strings.TrimSpace(content) == "" {
				continue
			}
			entity.AddTranslation(&Translation{
				Class:   s.translationClass,
				Locale:  child.Name,
				Field:   field.Name,
				Content: content,
			})
			s.logger.DebugContext(ctx, "translation created",
				"class", s.translationClass,
				"locale", child.Name,
				"field", field.Name,
			)
		}
	}
	return nil
}

func translatable(entity any) (Translatable, error) {
	t, ok := entity.(Translatable)
	if !ok {
		return nil, fmt.Errorf("subscriber: %T does not implement Translatable", entity)
	}
	return t, nil
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
