package form

import "context"

// Values holds submitted data keyed by child name, then field name.
type Values map[string]map[string]any

// Event is passed to subscribers. Entity is the object bound to the form;
// Values is only populated for Bind.
type Event struct {
	Form   *Builder
	Entity any
	Values Values
}

// Subscriber reacts to form lifecycle events.
type Subscriber interface {
	// PreSetData runs before entity data is shown in the form.
	PreSetData(ctx context.Context, event *Event) error
	// Bind runs after submitted values were bound to the children.
	Bind(ctx context.Context, event *Event) error
}
