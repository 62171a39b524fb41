// Package form is a small host form layer: it records child sub-forms and
// their field configs, dispatches lifecycle events to subscribers and holds
// the view context exported for rendering. It stands in for the hosting web
// framework's form builder.
package form
