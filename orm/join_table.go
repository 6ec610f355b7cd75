package orm

import (
	"context"
	"fmt"
	"strings"
)

// JoinPair holds a source–target pair read from a join table.
type JoinPair[S, T comparable] struct {
	Source S
	Target T
}

// QueryJoinTable reads (sourceCol, targetCol) rows from the given join table
// where sourceCol IN (sourceIDs). One pair is returned per row, so a target
// linked to the same source several times appears several times.
func QueryJoinTable[S, T comparable](
	ctx context.Context, db Querier, table, sourceCol, targetCol string, sourceIDs []S,
) ([]JoinPair[S, T], error) {
	if len(sourceIDs) == 0 {
		return nil, nil
	}

	d := db.dialect()
	qi := d.QuoteIdent

	placeholders := make([]string, len(sourceIDs))
	args := make([]any, len(sourceIDs))
	for i, id := range sourceIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(
		"SELECT %s, %s FROM %s WHERE %s IN (%s)",
		qi(sourceCol), qi(targetCol), qi(table), qi(sourceCol),
		strings.Join(placeholders, ", "),
	)
	query = rewritePlaceholders(d, query)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err //nolint:wrapcheck // pass through
	}
	defer func() { _ = rows.Close() }()

	var pairs []JoinPair[S, T]
	for rows.Next() {
		var p JoinPair[S, T]
		if err := rows.Scan(&p.Source, &p.Target); err != nil {
			return nil, err //nolint:wrapcheck // pass through
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err() //nolint:wrapcheck // pass through
}

// CountTargets tallies how many pairs reference each target.
func CountTargets[S, T comparable](pairs []JoinPair[S, T]) map[T]int {
	counts := make(map[T]int, len(pairs))
	for _, p := range pairs {
		counts[p.Target]++
	}
	return counts
}
