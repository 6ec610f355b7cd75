package model

import "fmt"

// Author is a row of the authors table.
// The name is write-once: it is fixed by NewAuthor (or the first SetName on a
// zero Author) and rejected afterwards.
type Author struct {
	ID    int64
	name  string
	named bool
}

// NewAuthor builds an Author. Use id 0 for an author that has not been
// inserted yet.
func NewAuthor(id int64, name string) (*Author, error) {
	a := &Author{ID: id}
	if err := a.SetName(name); err != nil {
		return nil, err
	}
	return a, nil
}

// Name returns the author's name.
func (a *Author) Name() string { return a.name }

// SetName assigns the name. It fails with ErrImmutable once a name is set,
// leaving the original in place.
func (a *Author) SetName(name string) error {
	if a.named {
		return fmt.Errorf("author %d name: %w", a.ID, ErrImmutable)
	}
	if name == "" {
		return invalid("name", "the name cannot be empty")
	}
	a.name = name
	a.named = true
	return nil
}
