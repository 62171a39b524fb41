package model

// Decorator adjusts resolved field configs before they are handed to the
// per-locale sub-forms.
type Decorator interface {
	Decorate(FieldConfigs) (FieldConfigs, error)
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(FieldConfigs) (FieldConfigs, error)

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(configs FieldConfigs) (FieldConfigs, error) {
	return fn(configs)
}
