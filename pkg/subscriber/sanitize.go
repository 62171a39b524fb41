package subscriber

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formgen-translations/pkg/model"
)

// Sanitizer cleans submitted content before it is stored. widget is the
// field's resolved widget kind.
type Sanitizer interface {
	Sanitize(widget, content string) string
}

// SanitizerFunc adapts a function into a Sanitizer.
type SanitizerFunc func(widget, content string) string

// Sanitize calls the underlying function.
func (fn SanitizerFunc) Sanitize(widget, content string) string {
	return fn(widget, content)
}

// PolicySanitizer strips all markup from single line text inputs and keeps
// user generated content markup for everything else.
type PolicySanitizer struct {
	text  *bluemonday.Policy
	block *bluemonday.Policy
}

// NewPolicySanitizer returns the default sanitizer.
func NewPolicySanitizer() *PolicySanitizer {
	return &PolicySanitizer{
		text:  bluemonday.StrictPolicy(),
		block: bluemonday.UGCPolicy(),
	}
}

// Sanitize implements Sanitizer.
func (p *PolicySanitizer) Sanitize(widget, content string) string {
	if content == "" {
		return ""
	}
	if widget == model.WidgetText {
		return p.text.Sanitize(content)
	}
	return p.block.Sanitize(content)
}

type passthrough struct{}

func (passthrough) Sanitize(_ string, content string) string { return content }
