package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type decodedOutput struct {
	Negotiated string `json:"negotiatedLocale"`
	Result     struct {
		EntityClass      string   `json:"entityClass"`
		TranslationClass string   `json:"translationClass"`
		Locales          []string `json:"locales"`
		DefaultLocales   []string `json:"defaultLocale"`
	} `json:"result"`
	Forms map[string][]struct {
		Name  string `json:"name"`
		Type  string `json:"type"`
		Label string `json:"label"`
	} `json:"forms"`
	View map[string][]string `json:"view"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunBuild_OpenAPIWithNegotiatedLocale(t *testing.T) {
	var out bytes.Buffer
	flags := &buildFlags{
		entity:         `App\Entity\Product`,
		openapi:        filepath.Join("..", "..", "pkg", "metadata", "testdata", "catalog.openapi.yaml"),
		configPath:     filepath.Join("..", "..", "pkg", "config", "testdata", "defaults.yaml"),
		acceptLanguage: "de-CH, fr;q=0.8",
	}

	if err := runBuild(context.Background(), &out, discardLogger(), flags); err != nil {
		t.Fatalf("run build: %v", err)
	}

	var got decodedOutput
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}

	if got.Negotiated != "de" {
		t.Fatalf("expected negotiated locale de, got %q", got.Negotiated)
	}
	if got.Result.TranslationClass != `App\Entity\ProductTranslation` {
		t.Fatalf("unexpected translation class %q", got.Result.TranslationClass)
	}
	if diff := cmp.Diff([]string{"fr", "en", "de"}, got.Result.Locales); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string][]string{
		"default_locale": {"de"},
		"locales":        {"fr", "en", "de"},
	}, got.View); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}

	if len(got.Forms) != 3 {
		t.Fatalf("expected 3 locale forms, got %d", len(got.Forms))
	}
	fields := got.Forms["fr"]
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %+v", fields)
	}
	if fields[0].Name != "name" || fields[0].Type != "text" || fields[0].Label != "Name" {
		t.Fatalf("unexpected name field %+v", fields[0])
	}
	if fields[1].Name != "description" || fields[1].Type != "textarea" {
		t.Fatalf("unexpected description field %+v", fields[1])
	}
}

func TestRunBuild_RequiresSource(t *testing.T) {
	err := runBuild(context.Background(), io.Discard, discardLogger(), &buildFlags{entity: "App\\Entity\\Article"})
	if err == nil {
		t.Fatalf("expected error without descriptors or openapi")
	}
}

func TestRunBuild_UnknownEntity(t *testing.T) {
	flags := &buildFlags{
		entity:      `App\Entity\Missing`,
		descriptors: filepath.Join("..", "..", "pkg", "metadata", "testdata", "descriptors"),
	}
	err := runBuild(context.Background(), io.Discard, discardLogger(), flags)
	if err == nil {
		t.Fatalf("expected error for unknown entity")
	}
	if !strings.Contains(err.Error(), `App\Entity\Article`) {
		t.Fatalf("expected error to list registered entities, got %v", err)
	}
}
