package model

import (
	"database/sql"

	"github.com/mickamy/pressroom/internal/naming"
	"github.com/mickamy/pressroom/orm"
)

// Articles returns a new Query for the articles table.
func Articles(db orm.Querier) *orm.Query[Article] {
	q := orm.NewQuery[Article](
		db, articlesTable, articlesColumns, "id",
		scanArticle, articleColumnValuePairs, setArticlePK,
	)
	q.RegisterJoin("Author", orm.JoinConfig{
		TargetTable: authorsTable, TargetColumn: "id",
		SourceTable: articlesTable, SourceColumn: naming.ForeignKey("Author"),
	})
	q.RegisterJoin("Magazine", orm.JoinConfig{
		TargetTable: magazinesTable, TargetColumn: "id",
		SourceTable: articlesTable, SourceColumn: naming.ForeignKey("Magazine"),
	})
	return q
}

var (
	articlesTable   = orm.ResolveTableName[Article](naming.TableName("Article"))
	articlesColumns = []string{"id", "title", "content", "author_id", "magazine_id"}
)

// ArticlesTable is the resolved table name of Article rows.
func ArticlesTable() string { return articlesTable }

func scanArticle(rows *sql.Rows) (Article, error) {
	cols, _ := rows.Columns()
	var v Article
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &v.ID
		case "title":
			dest[i] = &v.title
		case "content":
			dest[i] = &v.Content
		case "author_id":
			dest[i] = &v.AuthorID
		case "magazine_id":
			dest[i] = &v.MagazineID
		default:
			dest[i] = new(any)
		}
	}
	err := rows.Scan(dest...)
	return v, err
}

func articleColumnValuePairs(v *Article, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "title", "content", "author_id", "magazine_id"},
			[]any{v.ID, v.title, v.Content, v.AuthorID, v.MagazineID}
	}
	return []string{"title", "content", "author_id", "magazine_id"},
		[]any{v.title, v.Content, v.AuthorID, v.MagazineID}
}

func setArticlePK(v *Article, id int64) {
	v.ID = id
}
