package assembler

import (
	"strings"

	"golang.org/x/text/language"
)

// NegotiateLocale picks the configured locale that best matches an
// Accept-Language header. It falls back to the default locale when nothing
// matches or no locales are configured.
func (a *Assembler) NegotiateLocale(acceptLanguage string) string {
	if a.matcher == nil || strings.TrimSpace(acceptLanguage) == "" {
		return a.defaultLocale
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return a.defaultLocale
	}
	_, idx, confidence := a.matcher.Match(desired...)
	if confidence == language.No || idx < 0 || idx >= len(a.locales) {
		return a.defaultLocale
	}
	return a.locales[idx]
}

func validateLocales(option string, locales []string) error {
	seen := make(map[string]struct{}, len(locales))
	for _, locale := range locales {
		if err := validateLocale(option, locale); err != nil {
			return err
		}
		if _, dup := seen[locale]; dup {
			return configError(option, "duplicate locale %q", locale)
		}
		seen[locale] = struct{}{}
	}
	return nil
}

func validateLocale(option, locale string) error {
	if strings.TrimSpace(locale) == "" {
		return configError(option, "locale is empty")
	}
	if _, err := language.Parse(locale); err != nil {
		return configError(option, "invalid locale %q: %v", locale, err)
	}
	return nil
}

// mustTags parses locales already checked by validateLocales.
func mustTags(locales []string) []language.Tag {
	tags := make([]language.Tag, len(locales))
	for idx, locale := range locales {
		tags[idx] = language.Make(locale)
	}
	return tags
}
