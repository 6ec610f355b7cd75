package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mickamy/pressroom/orm"
)

type migration struct {
	Version int
	Name    string
	// Statements per dialect name; each entry is executed on its own.
	Statements map[string][]string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Statements: map[string][]string{
			"sqlite": {
				`CREATE TABLE authors (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL
				)`,
				`CREATE TABLE magazines (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					category TEXT NOT NULL
				)`,
				`CREATE TABLE articles (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					title TEXT NOT NULL,
					content TEXT NOT NULL,
					author_id INTEGER REFERENCES authors(id),
					magazine_id INTEGER REFERENCES magazines(id)
				)`,
			},
			"mysql": {
				`CREATE TABLE authors (
					id BIGINT AUTO_INCREMENT PRIMARY KEY,
					name VARCHAR(255) NOT NULL
				)`,
				`CREATE TABLE magazines (
					id BIGINT AUTO_INCREMENT PRIMARY KEY,
					name VARCHAR(16) NOT NULL,
					category VARCHAR(255) NOT NULL
				)`,
				`CREATE TABLE articles (
					id BIGINT AUTO_INCREMENT PRIMARY KEY,
					title VARCHAR(50) NOT NULL,
					content TEXT NOT NULL,
					author_id BIGINT NOT NULL,
					magazine_id BIGINT NOT NULL,
					FOREIGN KEY (author_id) REFERENCES authors(id),
					FOREIGN KEY (magazine_id) REFERENCES magazines(id)
				)`,
			},
			"postgres": {
				`CREATE TABLE authors (
					id BIGSERIAL PRIMARY KEY,
					name TEXT NOT NULL
				)`,
				`CREATE TABLE magazines (
					id BIGSERIAL PRIMARY KEY,
					name TEXT NOT NULL,
					category TEXT NOT NULL
				)`,
				`CREATE TABLE articles (
					id BIGSERIAL PRIMARY KEY,
					title TEXT NOT NULL,
					content TEXT NOT NULL,
					author_id BIGINT NOT NULL REFERENCES authors(id),
					magazine_id BIGINT NOT NULL REFERENCES magazines(id)
				)`,
			},
		},
	},
	{
		Version: 2,
		Name:    "article_foreign_key_indexes",
		Statements: map[string][]string{
			"sqlite": {
				`CREATE INDEX idx_articles_author_id ON articles(author_id)`,
				`CREATE INDEX idx_articles_magazine_id ON articles(magazine_id)`,
			},
			// InnoDB already indexes every FOREIGN KEY column.
			"mysql": {},
			"postgres": {
				`CREATE INDEX idx_articles_author_id ON articles(author_id)`,
				`CREATE INDEX idx_articles_magazine_id ON articles(magazine_id)`,
			},
		},
	},
}

// Migrate applies every migration newer than the recorded schema version.
// Each migration runs in its own transaction.
func Migrate(ctx context.Context, db *orm.DB) error {
	log.Info().Msg("Running database migrations")

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := SchemaVersion(ctx, db)
	if err != nil {
		return err
	}

	log.Debug().Int("current_version", currentVersion).Msg("Current schema version")

	dialect := db.Dialect().Name()
	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}
		statements, ok := m.Statements[dialect]
		if !ok {
			return fmt.Errorf("migration %d has no statements for dialect %s", m.Version, dialect)
		}

		log.Info().Int("version", m.Version).Str("name", m.Name).Msg("Applying migration")

		if err := db.Transaction(ctx, func(tx *orm.Tx) error {
			for i, stmt := range statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("migration %d statement %d failed: %w", m.Version, i+1, err)
				}
			}
			if _, err := tx.ExecContext(ctx, orm.Rebind(tx, "INSERT INTO schema_migrations (version) VALUES (?)"), m.Version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		}); err != nil {
			return err
		}
	}

	log.Info().Msg("Database migrations complete")
	return nil
}

// SchemaVersion returns the highest applied migration version, or 0 for a
// database that has never been migrated.
func SchemaVersion(ctx context.Context, db orm.Querier) (int, error) {
	rows, err := db.QueryContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err != nil {
		return 0, fmt.Errorf("failed to get current migration version: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("failed to get current migration version: %w", err)
		}
		return 0, errors.New("failed to get current migration version: no rows")
	}
	var version sql.NullInt64
	if err := rows.Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to scan migration version: %w", err)
	}
	return int(version.Int64), rows.Err()
}
