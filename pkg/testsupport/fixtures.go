package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-translations/pkg/form"
	"github.com/goliatone/go-formgen-translations/pkg/metadata"
	pkgmodel "github.com/goliatone/go-formgen-translations/pkg/model"
)

// Snapshot is the JSON shape of a built translations form used by golden
// files: the sub-forms in registration order plus the exported view vars.
type Snapshot struct {
	Children []SnapshotChild `json:"children"`
	View     map[string]any  `json:"view"`
}

// SnapshotChild is one registered sub-form.
type SnapshotChild struct {
	Name   string                `json:"name"`
	Kind   string                `json:"kind"`
	Fields pkgmodel.FieldConfigs `json:"fields"`
}

// MustLoadRegistry loads descriptor files under dir into a registry.
func MustLoadRegistry(t *testing.T, dir string) *metadata.Registry {
	t.Helper()

	reg, err := metadata.LoadFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	return reg
}

// TakeSnapshot captures a form builder as a Snapshot. The value is passed
// through JSON so it compares equal to snapshots read from golden files.
func TakeSnapshot(t *testing.T, builder *form.Builder) Snapshot {
	t.Helper()

	snap := Snapshot{View: builder.View().Vars()}
	for _, child := range builder.Children() {
		snap.Children = append(snap.Children, SnapshotChild{
			Name:   child.Name,
			Kind:   child.Kind,
			Fields: child.Fields,
		})
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var out Snapshot
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	return out
}

// MustLoadSnapshot loads a JSON golden file into a Snapshot.
func MustLoadSnapshot(t *testing.T, path string) Snapshot {
	t.Helper()

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	return snap
}

// LoadSnapshot reads a JSON fixture into a Snapshot, returning an error for
// callers managing setup outside of *testing.T.
func LoadSnapshot(path string) (Snapshot, error) {
	if path == "" {
		return Snapshot{}, errors.New("testsupport: snapshot path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("testsupport: read snapshot: %w", err)
	}
	var out Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return Snapshot{}, fmt.Errorf("testsupport: unmarshal snapshot: %w", err)
	}
	return out, nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
