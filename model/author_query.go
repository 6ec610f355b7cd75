package model

import (
	"database/sql"

	"github.com/mickamy/pressroom/internal/naming"
	"github.com/mickamy/pressroom/orm"
)

// Authors returns a new Query for the authors table. The "Articles" join
// links each author to the articles they wrote.
func Authors(db orm.Querier) *orm.Query[Author] {
	q := orm.NewQuery[Author](
		db, authorsTable, authorsColumns, "id",
		scanAuthor, authorColumnValuePairs, setAuthorPK,
	)
	q.RegisterJoin("Articles", orm.JoinConfig{
		TargetTable: articlesTable, TargetColumn: naming.ForeignKey("Author"),
		SourceTable: authorsTable, SourceColumn: "id",
	})
	return q
}

var (
	authorsTable   = orm.ResolveTableName[Author](naming.TableName("Author"))
	authorsColumns = []string{"id", "name"}
)

func scanAuthor(rows *sql.Rows) (Author, error) {
	cols, _ := rows.Columns()
	var v Author
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &v.ID
		case "name":
			dest[i] = &v.name
			v.named = true
		default:
			dest[i] = new(any)
		}
	}
	err := rows.Scan(dest...)
	return v, err
}

func authorColumnValuePairs(v *Author, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "name"},
			[]any{v.ID, v.name}
	}
	return []string{"name"},
		[]any{v.name}
}

func setAuthorPK(v *Author, id int64) {
	v.ID = id
}
