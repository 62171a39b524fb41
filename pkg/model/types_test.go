package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgen-translations/pkg/model"
)

func TestOptions_DecodeYAMLOptionBag(t *testing.T) {
	payload := `
default_locale: en
locales: [en, fr, de]
required: true
fields:
  title:
    label: Headline
    max_length: 80
  body:
    display: false
  summary:
    type: textarea
    required: false
    options:
      attr:
        rows: 4
`
	var opts model.Options
	if err := yaml.Unmarshal([]byte(payload), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if diff := cmp.Diff(model.StringList{"en"}, opts.DefaultLocale); diff != "" {
		t.Fatalf("default locale mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.LocaleSet{"en", "fr", "de"}, opts.Locales); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if opts.Required == nil || !*opts.Required {
		t.Fatalf("expected required=true, got %v", opts.Required)
	}

	title := opts.Fields["title"]
	if title.Label == nil || *title.Label != "Headline" || title.Type != "" || title.Required != nil {
		t.Fatalf("unexpected title override: %+v", title)
	}
	if diff := cmp.Diff(map[string]any{"max_length": 80}, title.Options); diff != "" {
		t.Fatalf("title options mismatch (-want +got):\n%s", diff)
	}

	if !opts.Fields["body"].Hidden() {
		t.Fatalf("expected body override to be hidden")
	}

	summary := opts.Fields["summary"]
	if summary.Type != "textarea" || summary.Required == nil || *summary.Required {
		t.Fatalf("unexpected summary override: %+v", summary)
	}
	wantSummary := map[string]any{"attr": map[string]any{"rows": 4}}
	if diff := cmp.Diff(wantSummary, summary.Options); diff != "" {
		t.Fatalf("summary options mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_DecodeJSONDefaultLocaleList(t *testing.T) {
	var opts model.Options
	payload := `{"default_locale": ["en", "fr"], "fields": {"title": {"trim": true}}}`
	if err := json.Unmarshal([]byte(payload), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(model.StringList{"en", "fr"}, opts.DefaultLocale); diff != "" {
		t.Fatalf("default locale mismatch (-want +got):\n%s", diff)
	}
	if got := opts.Fields["title"].Options["trim"]; got != true {
		t.Fatalf("expected trim pass-through, got %v", got)
	}
}

func TestFieldOverride_RejectsNonBooleanDisplay(t *testing.T) {
	var override model.FieldOverride
	if err := yaml.Unmarshal([]byte("display: nope"), &override); err == nil {
		t.Fatalf("expected error for non boolean display")
	}
}

func TestFieldConfigs_CloneDoesNotAlias(t *testing.T) {
	original := model.FieldConfigs{
		{Name: "title", Type: model.WidgetText, Label: "Title", Options: map[string]any{
			"attr": map[string]any{"class": "wide"},
		}},
	}

	clone := original.Clone()
	clone[0].Label = "Changed"
	clone[0].Options["attr"].(map[string]any)["class"] = "narrow"

	if original[0].Label != "Title" {
		t.Fatalf("label aliased: %q", original[0].Label)
	}
	if got := original[0].Options["attr"].(map[string]any)["class"]; got != "wide" {
		t.Fatalf("nested options aliased: %v", got)
	}

	if diff := cmp.Diff([]string{"title"}, original.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, ok := original.Get("missing"); ok {
		t.Fatalf("expected lookup miss")
	}
}

func TestFieldOverride_NullValuesAreAbsent(t *testing.T) {
	payload := `
label:
type: ~
required: ~
display: ~
max_length: 40
`
	var override model.FieldOverride
	if err := yaml.Unmarshal([]byte(payload), &override); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	want := model.FieldOverride{Options: map[string]any{"max_length": 40}}
	if diff := cmp.Diff(want, override); diff != "" {
		t.Fatalf("yaml override mismatch (-want +got):\n%s", diff)
	}
	if override.Hidden() {
		t.Fatalf("null display must not hide the field")
	}

	var fromJSON model.FieldOverride
	if err := json.Unmarshal([]byte(`{"label": null, "type": null, "required": null, "display": null, "trim": true}`), &fromJSON); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	wantJSON := model.FieldOverride{Options: map[string]any{"trim": true}}
	if diff := cmp.Diff(wantJSON, fromJSON); diff != "" {
		t.Fatalf("json override mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldOverride_EmptyLabelIsKept(t *testing.T) {
	var override model.FieldOverride
	if err := yaml.Unmarshal([]byte(`label: ""`), &override); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if override.Label == nil || *override.Label != "" {
		t.Fatalf("expected explicit empty label, got %v", override.Label)
	}
}
