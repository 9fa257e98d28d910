package client

import "errors"

// ErrUnknownOption is returned when selecting a value the dropdown does not offer.
var ErrUnknownOption = errors.New("unknown option")

// Dropdown is a single select widget. Each instance owns its selected
// value; nothing is shared between dropdowns. Open and closed state is left
// to the native control rendering it.
type Dropdown struct {
	options  []string
	selected string
}

// NewDropdown creates a dropdown. An unknown initial value selects
// the first option.
func NewDropdown(options []string, selected string) *Dropdown {
	d := &Dropdown{options: append([]string(nil), options...)}
	if d.has(selected) {
		d.selected = selected
	} else if len(d.options) > 0 {
		d.selected = d.options[0]
	}
	return d
}

// Select picks value. An unknown value leaves the selection unchanged.
func (d *Dropdown) Select(value string) error {
	if !d.has(value) {
		return ErrUnknownOption
	}
	d.selected = value
	return nil
}

// Selected returns the current value.
func (d *Dropdown) Selected() string {
	return d.selected
}

// Options returns a copy of the offered values.
func (d *Dropdown) Options() []string {
	return append([]string(nil), d.options...)
}

func (d *Dropdown) has(value string) bool {
	for _, o := range d.options {
		if o == value {
			return true
		}
	}
	return false
}
