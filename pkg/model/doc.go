// Package model defines the typed configuration exchanged between the
// translation form assembler and the hosting form layer. FieldConfigs keep
// resolution order so per-locale sub-forms render fields in the order the
// metadata provider lists them. FieldOverride and StringList accept the loose
// option-bag shapes found in YAML/JSON form configuration (scalar or list
// default locales, flat pass-through keys such as `max_length`) and normalise
// them into typed values.
package model
