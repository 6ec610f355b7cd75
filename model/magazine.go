package model

import "unicode/utf8"

const (
	magazineNameMin = 2
	magazineNameMax = 16
)

// Magazine is a row of the magazines table.
type Magazine struct {
	ID       int64
	name     string
	category string
}

// NewMagazine builds a Magazine after checking both attributes, so an
// invalid magazine never reaches the database.
func NewMagazine(id int64, name, category string) (*Magazine, error) {
	m := &Magazine{ID: id}
	if err := m.SetName(name); err != nil {
		return nil, err
	}
	if err := m.SetCategory(category); err != nil {
		return nil, err
	}
	return m, nil
}

// Name returns the magazine's name.
func (m *Magazine) Name() string { return m.name }

// Category returns the magazine's category.
func (m *Magazine) Category() string { return m.category }

// SetName requires 2 to 16 characters.
func (m *Magazine) SetName(name string) error {
	if n := utf8.RuneCountInString(name); n < magazineNameMin || n > magazineNameMax {
		return invalid("name", "must be a string of %d to %d characters in length", magazineNameMin, magazineNameMax)
	}
	m.name = name
	return nil
}

// SetCategory requires a non-empty string.
func (m *Magazine) SetCategory(category string) error {
	if category == "" {
		return invalid("category", "must be a non-empty string")
	}
	m.category = category
	return nil
}
