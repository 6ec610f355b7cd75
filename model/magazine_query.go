package model

import (
	"database/sql"

	"github.com/mickamy/pressroom/internal/naming"
	"github.com/mickamy/pressroom/orm"
)

// Magazines returns a new Query for the magazines table. The "Articles" join
// links each magazine to the articles it published.
func Magazines(db orm.Querier) *orm.Query[Magazine] {
	q := orm.NewQuery[Magazine](
		db, magazinesTable, magazinesColumns, "id",
		scanMagazine, magazineColumnValuePairs, setMagazinePK,
	)
	q.RegisterJoin("Articles", orm.JoinConfig{
		TargetTable: articlesTable, TargetColumn: naming.ForeignKey("Magazine"),
		SourceTable: magazinesTable, SourceColumn: "id",
	})
	return q
}

var (
	magazinesTable   = orm.ResolveTableName[Magazine](naming.TableName("Magazine"))
	magazinesColumns = []string{"id", "name", "category"}
)

func scanMagazine(rows *sql.Rows) (Magazine, error) {
	cols, _ := rows.Columns()
	var v Magazine
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &v.ID
		case "name":
			dest[i] = &v.name
		case "category":
			dest[i] = &v.category
		default:
			dest[i] = new(any)
		}
	}
	err := rows.Scan(dest...)
	return v, err
}

func magazineColumnValuePairs(v *Magazine, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "name", "category"},
			[]any{v.ID, v.name, v.category}
	}
	return []string{"name", "category"},
		[]any{v.name, v.category}
}

func setMagazinePK(v *Magazine, id int64) {
	v.ID = id
}
