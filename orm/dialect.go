package orm

import "fmt"

// Dialect abstracts SQL differences between database engines.
type Dialect interface {
	// Name identifies the engine: "mysql", "postgres" or "sqlite".
	Name() string

	// Placeholder returns the bind parameter placeholder for the given
	// 1-based index. MySQL and SQLite return "?" regardless of index;
	// PostgreSQL returns "$1", "$2", etc.
	Placeholder(index int) string

	// QuoteIdent quotes an identifier (table name, column name) to safely
	// handle SQL reserved words. MySQL uses backticks; PostgreSQL and
	// SQLite use double quotes.
	QuoteIdent(name string) string

	// UseReturning reports whether INSERT should use a RETURNING clause
	// to retrieve the auto-generated primary key rather than relying on
	// LastInsertId.
	UseReturning() bool

	// ReturningClause returns the RETURNING clause appended to INSERT
	// statements, or an empty string when UseReturning is false.
	ReturningClause(pk string) string
}

// MySQL is the Dialect for MySQL / MariaDB.
var MySQL Dialect = mysqlDialect{}

// PostgreSQL is the Dialect for PostgreSQL.
var PostgreSQL Dialect = postgresDialect{}

// SQLite is the Dialect for SQLite. The generated key is read through
// LastInsertId, which every SQLite driver supports.
var SQLite Dialect = sqliteDialect{}

// DialectByName returns the Dialect registered under name.
func DialectByName(name string) (Dialect, error) {
	switch name {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return PostgreSQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return nil, fmt.Errorf("orm: unknown dialect %q", name)
	}
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string                    { return "mysql" }
func (mysqlDialect) Placeholder(_ int) string        { return "?" }
func (mysqlDialect) QuoteIdent(name string) string   { return "`" + name + "`" }
func (mysqlDialect) UseReturning() bool              { return false }
func (mysqlDialect) ReturningClause(_ string) string { return "" }

type postgresDialect struct{}

func (postgresDialect) Name() string                     { return "postgres" }
func (postgresDialect) Placeholder(index int) string     { return fmt.Sprintf("$%d", index) }
func (postgresDialect) QuoteIdent(name string) string    { return `"` + name + `"` }
func (postgresDialect) UseReturning() bool               { return true }
func (postgresDialect) ReturningClause(pk string) string { return ` RETURNING "` + pk + `"` }

type sqliteDialect struct{}

func (sqliteDialect) Name() string                    { return "sqlite" }
func (sqliteDialect) Placeholder(_ int) string        { return "?" }
func (sqliteDialect) QuoteIdent(name string) string   { return `"` + name + `"` }
func (sqliteDialect) UseReturning() bool              { return false }
func (sqliteDialect) ReturningClause(_ string) string { return "" }

// positional reports whether d binds parameters by position with a bare "?",
// in which case queries need no placeholder rewriting.
func positional(d Dialect) bool {
	return d.Placeholder(1) == "?"
}

// Rebind rewrites "?" placeholders in a hand-written statement to the
// placeholder style of db's dialect.
func Rebind(db Querier, query string) string {
	return rewritePlaceholders(db.dialect(), query)
}
