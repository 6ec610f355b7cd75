package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
)

// ArticleRepository inserts articles and resolves the author and magazine
// an article points at.
type ArticleRepository struct {
	db orm.Querier
}

func NewArticleRepository(db orm.Querier) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Create inserts a new row for a and sets a.ID to the generated key.
// An article that already has an ID is rejected.
func (r *ArticleRepository) Create(ctx context.Context, a *model.Article) error {
	if err := model.Articles(r.db).Create(ctx, a); err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

// Publish validates the arguments and inserts the resulting article in one
// step. Nothing is written when validation fails.
func (r *ArticleRepository) Publish(ctx context.Context, title, content string, authorID, magazineID int64) (*model.Article, error) {
	a, err := model.NewArticle(title, content, authorID, magazineID)
	if err != nil {
		return nil, err
	}
	if err := r.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update writes every column of a back to its row.
func (r *ArticleRepository) Update(ctx context.Context, a *model.Article) error {
	if err := model.Articles(r.db).Update(ctx, a); err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	return nil
}

// FindByID returns nil, nil when no article has the given id.
func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*model.Article, error) {
	a, err := model.Articles(r.db).Where("id = ?", id).First(ctx)
	if errors.Is(err, orm.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &a, nil
}

// Delete removes the article with the given id. It reports false when no
// such article exists.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	q := model.Articles(r.db).Where("id = ?", id)
	exists, err := q.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to look up article: %w", err)
	}
	if !exists {
		return false, nil
	}
	if err := q.Delete(ctx); err != nil {
		return false, fmt.Errorf("failed to delete article: %w", err)
	}
	return true, nil
}

// Author returns the article's author, or nil when the referenced row does
// not exist.
func (r *ArticleRepository) Author(ctx context.Context, a model.Article) (*model.Author, error) {
	return findAuthor(ctx, r.db, a.AuthorID)
}

// Magazine returns the article's magazine, or nil when the referenced row
// does not exist.
func (r *ArticleRepository) Magazine(ctx context.Context, a model.Article) (*model.Magazine, error) {
	return findMagazine(ctx, r.db, a.MagazineID)
}

// Describe renders a one-line summary of the article with its author and
// magazine names.
func (r *ArticleRepository) Describe(ctx context.Context, a model.Article) (string, error) {
	magazineName := "No magazine"
	m, err := r.Magazine(ctx, a)
	if err != nil {
		return "", err
	}
	if m != nil {
		magazineName = m.Name()
	}

	authorName := "No author"
	au, err := r.Author(ctx, a)
	if err != nil {
		return "", err
	}
	if au != nil {
		authorName = au.Name()
	}

	return fmt.Sprintf("Article: %s | Author: %s | Magazine: %s", a.Title(), authorName, magazineName), nil
}
