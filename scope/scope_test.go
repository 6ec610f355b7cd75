package scope_test

import (
	"testing"

	"github.com/mickamy/pressroom/scope"
)

// recorder captures what Scope.Apply hands to an Applier.
type recorder struct {
	wheres   []where
	orderBys []string
	selects  []string
	limit    *int
}

type where struct {
	clause string
	args   []any
}

func (r *recorder) ApplyWhere(clause string, args []any) {
	r.wheres = append(r.wheres, where{clause, args})
}
func (r *recorder) ApplyOrderBy(clause string) { r.orderBys = append(r.orderBys, clause) }
func (r *recorder) ApplyLimit(n int)           { r.limit = &n }
func (r *recorder) ApplySelect(columns string) { r.selects = append(r.selects, columns) }

func apply(ss ...scope.Scope) *recorder {
	r := &recorder{}
	for _, s := range ss {
		s.Apply(r)
	}
	return r
}

func TestWhere(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scope  scope.Scope
		clause string
		args   []any
	}{
		{"single arg", scope.Where("author_id = ?", int64(7)), "author_id = ?", []any{int64(7)}},
		{"two args", scope.Where("name = ? AND category = ?", "Wired", "Tech"), "name = ? AND category = ?", []any{"Wired", "Tech"}},
		{"eq", scope.Eq("articles.magazine_id", int64(3)), "articles.magazine_id = ?", []any{int64(3)}},
		{"in", scope.In("id", []int64{1, 2, 3}), "id IN (?, ?, ?)", []any{int64(1), int64(2), int64(3)}},
		{"in strings", scope.In("category", []string{"Tech", "Art"}), "category IN (?, ?)", []any{"Tech", "Art"}},
		{"in empty", scope.In("id", []int64{}), "1 = 0", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := apply(tt.scope)
			if len(r.wheres) != 1 {
				t.Fatalf("expected 1 where, got %d", len(r.wheres))
			}
			if got := r.wheres[0].clause; got != tt.clause {
				t.Errorf("clause = %q, want %q", got, tt.clause)
			}
			args := r.wheres[0].args
			if len(args) != len(tt.args) {
				t.Fatalf("args = %v, want %v", args, tt.args)
			}
			for i := range args {
				if args[i] != tt.args[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tt.args[i])
				}
			}
		})
	}
}

func TestOrderByLimitSelect(t *testing.T) {
	t.Parallel()

	r := apply(scope.OrderBy("id DESC"), scope.Limit(10), scope.Select("id", "title"))

	if len(r.orderBys) != 1 || r.orderBys[0] != "id DESC" {
		t.Errorf("orderBys = %v, want [id DESC]", r.orderBys)
	}
	if r.limit == nil || *r.limit != 10 {
		t.Errorf("limit = %v, want 10", r.limit)
	}
	if len(r.selects) != 1 || r.selects[0] != "id, title" {
		t.Errorf("selects = %v, want [id, title]", r.selects)
	}
	if len(r.wheres) != 0 {
		t.Errorf("wheres = %v, want none", r.wheres)
	}
}

func TestScopesAppendDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := scope.Combine(scope.Eq("magazine_id", 1))
	more := base.Append(scope.Eq("author_id", 2), scope.Limit(10))

	if len(base) != 1 {
		t.Fatalf("original mutated: len = %d", len(base))
	}
	if len(more) != 3 {
		t.Fatalf("appended len = %d, want 3", len(more))
	}

	r := apply(more...)
	if len(r.wheres) != 2 || r.limit == nil {
		t.Errorf("applied = %+v", r)
	}
}
