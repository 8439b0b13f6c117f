// Package forms models HTML forms: parsing from a document selection,
// filling fields, and serializing into a transport payload.
package forms

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Form is a fillable HTML form. Field order is preserved from the markup.
type Form struct {
	method  string
	action  string
	enctype string
	fields  []*Field
}

// Parse builds a Form from a selection wrapping a <form> element.
func Parse(sel *goquery.Selection) (*Form, error) {
	if sel == nil || sel.Length() == 0 {
		return nil, fmt.Errorf("forms: empty selection")
	}
	if !sel.Is("form") {
		return nil, fmt.Errorf("forms: selection is not a form element")
	}

	f := &Form{
		method:  strings.ToUpper(sel.AttrOr("method", http.MethodGet)),
		action:  sel.AttrOr("action", ""),
		enctype: sel.AttrOr("enctype", "application/x-www-form-urlencoded"),
	}

	sel.Find("input, textarea, select, button").Each(func(i int, s *goquery.Selection) {
		if field := parseField(s); field != nil {
			f.fields = append(f.fields, field)
		}
	})
	return f, nil
}

// Method returns the uppercased HTTP method, defaulting to GET.
func (f *Form) Method() string { return f.method }

// Action returns the raw action URL; empty means "submit to current page".
func (f *Form) Action() string { return f.action }

// Enctype returns the declared encoding type.
func (f *Form) Enctype() string { return f.enctype }

// Fields returns the form's fields in document order.
func (f *Form) Fields() []*Field { return f.fields }

// Field returns the first field with the given name, or nil.
func (f *Form) Field(name string) *Field {
	for _, field := range f.fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// Set replaces the value(s) of a named field. Checkable fields become
// checked. Unknown names are an error.
func (f *Form) Set(name string, values ...string) error {
	field := f.Field(name)
	if field == nil {
		return fmt.Errorf("forms: no field named %q", name)
	}
	if len(values) > 1 && !field.Multiple {
		return fmt.Errorf("forms: field %q does not accept multiple values", name)
	}
	field.values = values
	if field.checkable() {
		field.Checked = true
	}
	return nil
}

// Add appends a value to a named field. Only multi-valued fields accept
// more than one value.
func (f *Form) Add(name, value string) error {
	field := f.Field(name)
	if field == nil {
		return fmt.Errorf("forms: no field named %q", name)
	}
	if len(field.values) > 0 && !field.Multiple {
		return fmt.Errorf("forms: field %q does not accept multiple values", name)
	}
	field.values = append(field.values, value)
	if field.checkable() {
		field.Checked = true
	}
	return nil
}

// Value returns the first value of a named field, or "".
func (f *Form) Value(name string) string {
	field := f.Field(name)
	if field == nil || len(field.values) == 0 {
		return ""
	}
	return field.values[0]
}

// SerializeOption adjusts serialization.
type SerializeOption func(*serializeConfig)

type serializeConfig struct {
	submit string
}

// WithSubmit selects which submit control to include when the form has
// several. Without it the first submit control is used.
func WithSubmit(name string) SerializeOption {
	return func(c *serializeConfig) { c.submit = name }
}

// Serialize renders the form into URL-encodable values: named, enabled
// fields only; checkable fields only when checked; at most one submit
// control.
func (f *Form) Serialize(opts ...SerializeOption) url.Values {
	var cfg serializeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	payload := url.Values{}
	submitDone := false
	for _, field := range f.fields {
		switch {
		case field.Name == "" || field.Disabled:
			continue
		case field.checkable() && !field.Checked:
			continue
		case field.submit():
			if submitDone {
				continue
			}
			if cfg.submit != "" && field.Name != cfg.submit {
				continue
			}
			submitDone = true
		}
		for _, v := range field.values {
			payload.Add(field.Name, v)
		}
	}
	return payload
}
