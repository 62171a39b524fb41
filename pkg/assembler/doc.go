// Package assembler builds translation forms: for a translatable entity it
// resolves one field config per translatable property (detected widget kind,
// label, required flag, merged with caller overrides), registers a sub-form
// per locale carrying those configs, attaches the subscriber that writes
// submitted values back into translation records and exports the active and
// available locales to the view context.
//
// An Assembler is immutable once constructed and can be shared between
// concurrent form builds; each Build works on its own Request.
package assembler
