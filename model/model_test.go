package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mickamy/pressroom/model"
)

func TestNewArticleTitleLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"too short", "Four", true},
		{"empty", "", true},
		{"min length", "Five!", false},
		{"max length", strings.Repeat("x", 50), false},
		{"too long", strings.Repeat("x", 51), true},
		{"multibyte counted as characters", strings.Repeat("é", 50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := model.NewArticle(tt.title, "body", 1, 2)
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalid) {
					t.Fatalf("NewArticle(%q) error = %v, want ErrInvalid", tt.title, err)
				}
				if a != nil {
					t.Errorf("NewArticle(%q) returned %+v alongside an error", tt.title, a)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewArticle(%q): %v", tt.title, err)
			}
			if a.ID != 0 {
				t.Errorf("ID = %d, want 0 for an unsaved article", a.ID)
			}
			if a.Title() != tt.title || a.AuthorID != 1 || a.MagazineID != 2 {
				t.Errorf("NewArticle = %+v", a)
			}
		})
	}
}

func TestArticleSetTitleKeepsPreviousOnFailure(t *testing.T) {
	t.Parallel()

	a, err := model.NewArticle("Original title", "", 1, 1)
	if err != nil {
		t.Fatalf("NewArticle: %v", err)
	}
	err = a.SetTitle("bad")
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("SetTitle error = %v, want *ValidationError", err)
	}
	if verr.Field != "title" {
		t.Errorf("Field = %q, want %q", verr.Field, "title")
	}
	if a.Title() != "Original title" {
		t.Errorf("Title = %q, want unchanged", a.Title())
	}
}

func TestNewAuthor(t *testing.T) {
	t.Parallel()

	a, err := model.NewAuthor(3, "Ada")
	if err != nil {
		t.Fatalf("NewAuthor: %v", err)
	}
	if a.ID != 3 || a.Name() != "Ada" {
		t.Errorf("NewAuthor = %+v", a)
	}

	if _, err := model.NewAuthor(1, ""); !errors.Is(err, model.ErrInvalid) {
		t.Errorf("NewAuthor with empty name error = %v, want ErrInvalid", err)
	}
}

func TestAuthorNameIsImmutable(t *testing.T) {
	t.Parallel()

	a, err := model.NewAuthor(1, "Grace")
	if err != nil {
		t.Fatalf("NewAuthor: %v", err)
	}
	if err := a.SetName("Margaret"); !errors.Is(err, model.ErrImmutable) {
		t.Fatalf("SetName error = %v, want ErrImmutable", err)
	}
	if a.Name() != "Grace" {
		t.Errorf("Name = %q, want %q", a.Name(), "Grace")
	}
}

func TestZeroAuthorAcceptsFirstName(t *testing.T) {
	t.Parallel()

	var a model.Author
	if err := a.SetName(""); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("SetName(\"\") error = %v, want ErrInvalid", err)
	}
	if err := a.SetName("Linus"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := a.SetName("Linus"); !errors.Is(err, model.ErrImmutable) {
		t.Errorf("second SetName error = %v, want ErrImmutable", err)
	}
}

func TestNewMagazine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		magName  string
		category string
		field    string
	}{
		{"valid", "Wired", "Tech", ""},
		{"name min", "AB", "Tech", ""},
		{"name max", strings.Repeat("m", 16), "Tech", ""},
		{"name too short", "A", "Tech", "name"},
		{"name too long", strings.Repeat("m", 17), "Tech", "name"},
		{"empty category", "Wired", "", "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := model.NewMagazine(0, tt.magName, tt.category)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("NewMagazine: %v", err)
				}
				if m.Name() != tt.magName || m.Category() != tt.category {
					t.Errorf("NewMagazine = %+v", m)
				}
				return
			}
			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("NewMagazine error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestMagazineSettersKeepValueOnFailure(t *testing.T) {
	t.Parallel()

	m, err := model.NewMagazine(1, "Wired", "Tech")
	if err != nil {
		t.Fatalf("NewMagazine: %v", err)
	}
	if err := m.SetName("W"); err == nil {
		t.Error("SetName(\"W\") succeeded, want error")
	}
	if err := m.SetCategory(""); err == nil {
		t.Error("SetCategory(\"\") succeeded, want error")
	}
	if m.Name() != "Wired" || m.Category() != "Tech" {
		t.Errorf("magazine changed after failed assignment: %+v", m)
	}
	if err := m.SetName("Wired UK"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if m.Name() != "Wired UK" {
		t.Errorf("Name = %q, want %q", m.Name(), "Wired UK")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &model.ValidationError{Field: "title", Message: "too short"}
	want := "validation error on field title: too short"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
