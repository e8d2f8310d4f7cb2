package model

import (
	"encoding/json"
	"fmt"
)

// FallbackTag is the reserved intent tag used when classification is below
// the confidence threshold or no intent scored above zero.
const FallbackTag = "fallback"

// ResponseSet holds an intent's response templates, either as a flat list or
// grouped under sub-tags. Exactly one of the two fields is populated.
type ResponseSet struct {
	Grouped map[string][]string
	Flat    []string
}

// All returns every template in the set regardless of grouping.
func (r ResponseSet) All() []string {
	if len(r.Flat) > 0 {
		return r.Flat
	}
	var out []string
	for _, group := range r.Grouped {
		out = append(out, group...)
	}
	return out
}

// MarshalJSON encodes the flat form as an array and the grouped form as an
// object, matching the catalog file format.
func (r ResponseSet) MarshalJSON() ([]byte, error) {
	if r.Grouped != nil {
		return json.Marshal(r.Grouped)
	}
	return json.Marshal(r.Flat)
}

// UnmarshalJSON accepts either an array of strings or an object mapping
// sub-tags to arrays of strings.
func (r *ResponseSet) UnmarshalJSON(data []byte) error {
	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		r.Flat = flat
		r.Grouped = nil
		return nil
	}
	var grouped map[string][]string
	if err := json.Unmarshal(data, &grouped); err == nil {
		r.Grouped = grouped
		r.Flat = nil
		return nil
	}
	return fmt.Errorf("responses must be an array or an object of arrays")
}

// Intent is one entry of the intent catalog: a tag, example phrases used for
// bag-of-words scoring, and response templates.
type Intent struct {
	Responses ResponseSet `json:"responses"`
	Tag       string      `json:"tag"`
	Patterns  []string    `json:"patterns"`
}

// Catalog is the full set of intents loaded at startup. It is treated as
// immutable for the life of a session.
type Catalog struct {
	Intents []Intent `json:"intents"`
}

// Tags returns the tags of all intents in catalog order.
func (c *Catalog) Tags() []string {
	tags := make([]string, 0, len(c.Intents))
	for _, in := range c.Intents {
		tags = append(tags, in.Tag)
	}
	return tags
}

// Find returns the intent with the given tag, or nil.
func (c *Catalog) Find(tag string) *Intent {
	for i := range c.Intents {
		if c.Intents[i].Tag == tag {
			return &c.Intents[i]
		}
	}
	return nil
}
