package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
	"github.com/mickamy/pressroom/scope"
)

// AuthorRepository wraps the authors query with the views derived from an
// author's articles.
type AuthorRepository struct {
	db orm.Querier
}

func NewAuthorRepository(db orm.Querier) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// Create inserts a new author and sets a.ID.
func (r *AuthorRepository) Create(ctx context.Context, a *model.Author) error {
	if err := model.Authors(r.db).Create(ctx, a); err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}
	return nil
}

// FindByID returns nil, nil when no author has the given id.
func (r *AuthorRepository) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	return findAuthor(ctx, r.db, id)
}

// Articles returns the author's articles ordered by id. An author without
// articles yields an empty slice.
func (r *AuthorRepository) Articles(ctx context.Context, a model.Author) ([]model.Article, error) {
	articles, err := model.Articles(r.db).
		Scopes(scope.Eq("author_id", a.ID), scope.OrderBy("id")).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles of author %d: %w", a.ID, err)
	}
	return articles, nil
}

// Magazines returns each magazine the author has written for once, ordered
// by id. An author without articles yields an empty slice.
func (r *AuthorRepository) Magazines(ctx context.Context, a model.Author) ([]model.Magazine, error) {
	q := model.Magazines(r.db)
	magazines, err := q.Distinct().
		Join("Articles").
		Where(model.ArticlesTable()+".author_id = ?", a.ID).
		OrderBy(q.Table() + ".id").
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list magazines of author %d: %w", a.ID, err)
	}
	return magazines, nil
}

// Describe renders the author with the names of their magazines and the
// titles of their articles.
func (r *AuthorRepository) Describe(ctx context.Context, a model.Author) (string, error) {
	articles, err := r.Articles(ctx, a)
	if err != nil {
		return "", err
	}
	magazines, err := r.Magazines(ctx, a)
	if err != nil {
		return "", err
	}

	titles := "No articles"
	if len(articles) > 0 {
		titles = joinTitles(articles)
	}
	names := "No magazines"
	if len(magazines) > 0 {
		names = joinMagazineNames(magazines)
	}
	return fmt.Sprintf("AUTHOR: %s || ID: %d || MAGAZINES: %s || ARTICLES: %s", a.Name(), a.ID, names, titles), nil
}

func findAuthor(ctx context.Context, db orm.Querier, id int64) (*model.Author, error) {
	a, err := model.Authors(db).Where("id = ?", id).First(ctx)
	if errors.Is(err, orm.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return &a, nil
}

func joinTitles(articles []model.Article) string {
	titles := make([]string, len(articles))
	for i := range articles {
		titles[i] = articles[i].Title()
	}
	return strings.Join(titles, "; ")
}

func joinAuthorNames(authors []model.Author) string {
	names := make([]string, len(authors))
	for i := range authors {
		names[i] = authors[i].Name()
	}
	return strings.Join(names, "; ")
}

func joinMagazineNames(magazines []model.Magazine) string {
	names := make([]string, len(magazines))
	for i := range magazines {
		names[i] = magazines[i].Name()
	}
	return strings.Join(names, "; ")
}
