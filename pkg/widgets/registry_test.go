package widgets

import (
	"testing"

	"github.com/goliatone/go-formgen-translations/pkg/metadata"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	column := metadata.Column{
		Type:   metadata.StorageString,
		Widget: "wysiwyg",
	}

	if got, ok := reg.Resolve(column); !ok || got != "wysiwyg" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name    string
		storage metadata.StorageType
		expect  string
	}{
		{name: "string", storage: metadata.StorageString, expect: WidgetText},
		{name: "text", storage: metadata.StorageText, expect: WidgetTextarea},
		{name: "integer", storage: metadata.StorageInteger, expect: WidgetTextarea},
		{name: "json", storage: metadata.StorageJSON, expect: WidgetTextarea},
		{name: "unknown", storage: metadata.StorageType("citext"), expect: WidgetTextarea},
		{name: "empty", storage: "", expect: WidgetTextarea},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(metadata.Column{Type: tc.storage})
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("datetime", 95, func(column metadata.Column) bool {
		return column.Type == metadata.StorageDateTime
	})

	got, ok := reg.Resolve(metadata.Column{Type: metadata.StorageDateTime})
	if !ok || got != "datetime" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
	if got, _ := reg.Resolve(metadata.Column{Type: metadata.StorageString}); got != WidgetText {
		t.Fatalf("string columns should still resolve to text, got %q", got)
	}
}

func TestResolve_EmptyRegistry(t *testing.T) {
	reg := &Registry{}
	if got, ok := reg.Resolve(metadata.Column{Type: metadata.StorageString}); ok {
		t.Fatalf("empty registry should not resolve, got %q", got)
	}
}
