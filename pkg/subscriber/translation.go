package subscriber

import "sync"

// Translation is one stored per-locale value of an entity property.
type Translation struct {
	Class   string `json:"class"`
	Locale  string `json:"locale"`
	Field   string `json:"field"`
	Content string `json:"content"`
}

// Translatable is implemented by entities whose translations the
// subscriber reads and writes.
type Translatable interface {
	Translations() []*Translation
	AddTranslation(*Translation)
}

// Collection is an embeddable Translatable implementation.
type Collection struct {
	mu    sync.Mutex
	items []*Translation
}

// Translations returns the stored translations in insertion order.
func (c *Collection) Translations() []*Translation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Translation(nil), c.items...)
}

// AddTranslation appends a translation.
func (c *Collection) AddTranslation(t *Translation) {
	if t == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, t)
}

// Find returns the translation stored for locale and field.
func Find(entity Translatable, locale, field string) (*Translation, bool) {
	if entity == nil {
		return nil, false
	}
	for _, t := range entity.Translations() {
		if t != nil && t.Locale == locale && t.Field == field {
			return t, true
		}
	}
	return nil, false
}
