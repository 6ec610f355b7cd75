package model

import "unicode/utf8"

const (
	articleTitleMin = 5
	articleTitleMax = 50
)

// Article is a row of the articles table. It references exactly one author
// and one magazine.
type Article struct {
	ID         int64
	title      string
	Content    string
	AuthorID   int64
	MagazineID int64
}

// NewArticle builds an unsaved Article (ID 0). Building never writes to the
// database; insert it with repo.ArticleRepository.Create.
func NewArticle(title, content string, authorID, magazineID int64) (*Article, error) {
	a := &Article{Content: content, AuthorID: authorID, MagazineID: magazineID}
	if err := a.SetTitle(title); err != nil {
		return nil, err
	}
	return a, nil
}

// Title returns the article title.
func (a *Article) Title() string { return a.title }

// SetTitle requires 5 to 50 characters.
func (a *Article) SetTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < articleTitleMin || n > articleTitleMax {
		return invalid("title", "must be a string between %d and %d characters", articleTitleMin, articleTitleMax)
	}
	a.title = title
	return nil
}
