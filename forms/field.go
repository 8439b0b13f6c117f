package forms

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field is one form control. Name and metadata come from the markup;
// values can be replaced through Form.Set.
type Field struct {
	Name     string
	Type     string
	Options  []string // select option values, in document order
	Multiple bool
	Checked  bool
	Disabled bool

	values []string
}

// Values returns the field's current values.
func (f *Field) Values() []string { return f.values }

func (f *Field) checkable() bool {
	return f.Type == "checkbox" || f.Type == "radio"
}

func (f *Field) submit() bool {
	return f.Type == "submit" || f.Type == "image"
}

// parseField maps one control element to a Field; nil means the control
// does not participate in serialization (e.g. a reset button).
func parseField(s *goquery.Selection) *Field {
	field := &Field{
		Name:     s.AttrOr("name", ""),
		Disabled: exists(s, "disabled"),
	}

	switch {
	case s.Is("input"):
		field.Type = strings.ToLower(s.AttrOr("type", "text"))
		if field.Type == "reset" {
			return nil
		}
		if v := s.AttrOr("value", ""); v != "" || !field.checkable() {
			field.values = []string{v}
		}
		if field.checkable() {
			field.Checked = exists(s, "checked")
			if len(field.values) == 0 {
				// Checkable controls submit "on" when no value is given.
				field.values = []string{"on"}
			}
		}
	case s.Is("textarea"):
		field.Type = "textarea"
		field.values = []string{s.Text()}
	case s.Is("select"):
		field.Type = "select"
		field.Multiple = exists(s, "multiple")
		var selected []string
		s.Find("option").Each(func(i int, opt *goquery.Selection) {
			value := opt.AttrOr("value", strings.TrimSpace(opt.Text()))
			field.Options = append(field.Options, value)
			if exists(opt, "selected") {
				selected = append(selected, value)
			}
		})
		switch {
		case len(selected) > 0:
			field.values = selected
		case len(field.Options) > 0 && !field.Multiple:
			// A single select with no explicit selection submits its
			// first option.
			field.values = field.Options[:1]
		}
	case s.Is("button"):
		field.Type = strings.ToLower(s.AttrOr("type", "submit"))
		if field.Type != "submit" {
			return nil
		}
		field.values = []string{s.AttrOr("value", "")}
	default:
		return nil
	}
	return field
}

func exists(s *goquery.Selection, attr string) bool {
	_, ok := s.Attr(attr)
	return ok
}
