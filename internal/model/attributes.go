package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	AttrTitle       = "title"
	AttrDescription = "description"
	AttrStatus      = "status"
	AttrPrivacy     = "privacy"
	AttrLanguage    = "language"
	AttrLocation    = "location"
)

var permittedAttributes = map[string]struct{}{ //nolint:gochecknoglobals
	AttrTitle:       {},
	AttrDescription: {},
	AttrStatus:      {},
	AttrPrivacy:     {},
	AttrLanguage:    {},
	AttrLocation:    {},
}

// Attributes is the key-value mapping submitted for a hunch.
type Attributes map[string]string

// Permitted returns a copy holding only the keys a hunch accepts.
func (a Attributes) Permitted() Attributes {
	permitted := make(Attributes, len(a))
	for key, value := range a {
		if _, ok := permittedAttributes[key]; ok {
			permitted[key] = value
		}
	}
	return permitted
}

// UnmarshalJSON accepts any JSON scalar as a value, so {"status": 1} works as well as {"status": "1"}.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	attrs := make(Attributes, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			attrs[key] = ""
		case string:
			attrs[key] = v
		case float64, bool:
			attrs[key] = fmt.Sprint(v)
		default:
			return fmt.Errorf("attribute %q: unsupported value %T", key, value)
		}
	}
	*a = attrs

	return nil
}

// ValidationErrors maps an attribute name to its error messages.
type ValidationErrors map[string][]string

// Add appends a message for the field.
func (e ValidationErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether there is at least one message.
func (e ValidationErrors) Any() bool {
	for _, messages := range e {
		if len(messages) > 0 {
			return true
		}
	}
	return false
}

// On returns the messages for a field.
func (e ValidationErrors) On(field string) []string {
	return e[field]
}

// FullMessages returns "Title can't be blank" style messages sorted by field.
func (e ValidationErrors) FullMessages() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var messages []string
	for _, field := range fields {
		name := strings.ToUpper(field[:1]) + field[1:]
		for _, message := range e[field] {
			messages = append(messages, name+" "+message)
		}
	}
	return messages
}
