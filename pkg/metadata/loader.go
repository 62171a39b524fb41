package metadata

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Entities []entityFile `json:"entities" yaml:"entities"`
}

type entityFile struct {
	Class            string         `json:"class" yaml:"class"`
	TranslationClass string         `json:"translationClass" yaml:"translationClass"`
	Properties       []propertyFile `json:"properties" yaml:"properties"`
}

type propertyFile struct {
	Name         string  `json:"name" yaml:"name"`
	Translatable bool    `json:"translatable" yaml:"translatable"`
	Locale       bool    `json:"locale" yaml:"locale"`
	Column       *Column `json:"column" yaml:"column"`
}

// LoadFS walks fsys and registers every entity declared in JSON/YAML
// descriptor files. A nil fsys yields an empty registry.
func LoadFS(fsys fs.FS) (*Registry, error) {
	reg := NewRegistry()
	if err := LoadInto(reg, fsys); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadInto registers the descriptors found in fsys into reg.
func LoadInto(reg *Registry, fsys fs.FS) error {
	if reg == nil {
		return fmt.Errorf("metadata: registry is nil")
	}
	if fsys == nil {
		return nil
	}

	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDescriptorFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("metadata: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for _, raw := range doc.Entities {
			if err := reg.Register(raw.descriptor()); err != nil {
				return fmt.Errorf("metadata: file %s: %w", path, err)
			}
		}
		return nil
	})
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("metadata: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("metadata: parse %s: invalid JSON or YAML", source)
}

func (e entityFile) descriptor() EntityDescriptor {
	desc := EntityDescriptor{
		Class:            e.Class,
		TranslationClass: e.TranslationClass,
		Properties:       make([]Property, 0, len(e.Properties)),
	}
	for _, raw := range e.Properties {
		prop := Property{Name: raw.Name}
		if raw.Column != nil {
			prop.Annotations = append(prop.Annotations, *raw.Column)
		}
		if raw.Translatable {
			prop.Annotations = append(prop.Annotations, Translatable{})
		}
		if raw.Locale {
			prop.Annotations = append(prop.Annotations, Locale{})
		}
		desc.Properties = append(desc.Properties, prop)
	}
	return desc
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
