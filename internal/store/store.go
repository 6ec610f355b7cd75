package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/mickamy/pressroom/internal/config"
	"github.com/mickamy/pressroom/internal/logging"
	"github.com/mickamy/pressroom/orm"
)

// Open creates the shared connection pool described by cfg and verifies it
// with a ping. The caller owns the returned DB and must Close it.
func Open(ctx context.Context, cfg config.Config) (*orm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d, err := orm.DialectByName(strings.ToLower(cfg.Database.Dialect))
	if err != nil {
		return nil, err
	}

	raw, err := openRaw(d, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := raw.PingContext(ctx); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	raw.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	raw.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	log.Debug().Str("dialect", d.Name()).Msg("Database connection established")

	db := orm.New(raw, d)
	if cfg.Log.Queries {
		db = db.Debug(logging.NewQueryLogger())
	}
	return db, nil
}

func openRaw(d orm.Dialect, dsn string) (*sql.DB, error) {
	switch d {
	case orm.SQLite:
		return sql.Open("sqlite", sqliteDSN(dsn))
	case orm.MySQL:
		mcfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
		mcfg.ParseTime = true
		mcfg.MultiStatements = false
		return sql.Open("mysql", mcfg.FormatDSN())
	case orm.PostgreSQL:
		pcfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid postgres dsn: %w", err)
		}
		return stdlib.OpenDB(*pcfg), nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", d.Name())
	}
}

// sqliteDSN adds the busy timeout and WAL journal pragmas to a plain file
// path. DSNs that already carry a query string are used unchanged.
// Foreign keys are left unenforced, matching SQLite's default.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	v := url.Values{}
	v.Add("_pragma", "busy_timeout(5000)")
	v.Add("_pragma", "journal_mode(WAL)")
	return path + "?" + v.Encode()
}
