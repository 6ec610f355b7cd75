package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/mickamy/pressroom/internal/naming"
	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
	"github.com/mickamy/pressroom/scope"
)

// keyContributorMinArticles is the smallest article count that makes a
// contributor a key contributor (strictly more than two).
const keyContributorMinArticles = 3

// MagazineRepository wraps the magazines query with the views derived from a
// magazine's articles.
type MagazineRepository struct {
	db orm.Querier
}

func NewMagazineRepository(db orm.Querier) *MagazineRepository {
	return &MagazineRepository{db: db}
}

// Create inserts a new magazine and sets m.ID.
func (r *MagazineRepository) Create(ctx context.Context, m *model.Magazine) error {
	if err := model.Magazines(r.db).Create(ctx, m); err != nil {
		return fmt.Errorf("failed to create magazine: %w", err)
	}
	return nil
}

// Update writes the name and category of m back to its row.
func (r *MagazineRepository) Update(ctx context.Context, m *model.Magazine) error {
	if err := model.Magazines(r.db).Update(ctx, m); err != nil {
		return fmt.Errorf("failed to update magazine: %w", err)
	}
	return nil
}

// FindByID returns nil, nil when no magazine has the given id.
func (r *MagazineRepository) FindByID(ctx context.Context, id int64) (*model.Magazine, error) {
	return findMagazine(ctx, r.db, id)
}

// Articles returns the magazine's articles ordered by id, or an empty slice.
func (r *MagazineRepository) Articles(ctx context.Context, m model.Magazine) ([]model.Article, error) {
	articles, err := model.Articles(r.db).Scopes(magazineArticles(m)...).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles of magazine %d: %w", m.ID, err)
	}
	return articles, nil
}

// ArticleTitles returns the titles of the magazine's articles, ordered like
// Articles.
func (r *MagazineRepository) ArticleTitles(ctx context.Context, m model.Magazine) ([]string, error) {
	articles, err := model.Articles(r.db).
		Scopes(magazineArticles(m).Append(scope.Select("id", "title"))...).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list article titles of magazine %d: %w", m.ID, err)
	}
	titles := make([]string, len(articles))
	for i := range articles {
		titles[i] = articles[i].Title()
	}
	return titles, nil
}

// Contributors returns every author with at least one article in the
// magazine, once each, ordered by id. No articles yields an empty slice.
func (r *MagazineRepository) Contributors(ctx context.Context, m model.Magazine) ([]model.Author, error) {
	q := model.Authors(r.db)
	authors, err := q.Distinct().
		Join("Articles").
		Where(model.ArticlesTable()+".magazine_id = ?", m.ID).
		OrderBy(q.Table() + ".id").
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors of magazine %d: %w", m.ID, err)
	}
	return authors, nil
}

// ContributingAuthors returns the contributors with more than two articles
// in the magazine. Unlike the other list views it returns nil, not an empty
// slice, when nobody qualifies.
func (r *MagazineRepository) ContributingAuthors(ctx context.Context, m model.Magazine) ([]model.Author, error) {
	pairs, err := orm.QueryJoinTable[int64, int64](
		ctx, r.db, model.ArticlesTable(), naming.ForeignKey("Magazine"), naming.ForeignKey("Author"), []int64{m.ID},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles of magazine %d: %w", m.ID, err)
	}

	var ids []int64
	for authorID, n := range orm.CountTargets(pairs) {
		if n >= keyContributorMinArticles {
			ids = append(ids, authorID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	key, err := model.Authors(r.db).
		Scopes(scope.In("id", ids), scope.OrderBy("id")).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list key contributors of magazine %d: %w", m.ID, err)
	}
	// Articles may point at authors that no longer exist.
	if len(key) == 0 {
		return nil, nil
	}
	return key, nil
}

// Describe renders the magazine with its article titles, contributors and
// key contributors; each empty list prints as "None".
func (r *MagazineRepository) Describe(ctx context.Context, m model.Magazine) (string, error) {
	contributors, err := r.Contributors(ctx, m)
	if err != nil {
		return "", err
	}
	key, err := r.ContributingAuthors(ctx, m)
	if err != nil {
		return "", err
	}
	articles, err := r.Articles(ctx, m)
	if err != nil {
		return "", err
	}

	contributorNames, keyNames, titles := "None", "None", "None"
	if len(contributors) > 0 {
		contributorNames = joinAuthorNames(contributors)
	}
	if key != nil {
		keyNames = joinAuthorNames(key)
	}
	if len(articles) > 0 {
		titles = joinTitles(articles)
	}
	return fmt.Sprintf("MAGAZINE: %s | ID: %d | ARTICLES: %s | CONTRIBUTORS: %s | KEY CONTRIBUTORS: %s",
		m.Name(), m.ID, titles, contributorNames, keyNames), nil
}

func magazineArticles(m model.Magazine) scope.Scopes {
	return scope.Combine(scope.Eq("magazine_id", m.ID), scope.OrderBy("id"))
}

func findMagazine(ctx context.Context, db orm.Querier, id int64) (*model.Magazine, error) {
	m, err := model.Magazines(db).Where("id = ?", id).First(ctx)
	if errors.Is(err, orm.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get magazine: %w", err)
	}
	return &m, nil
}
