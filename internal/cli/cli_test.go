package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mickamy/pressroom/internal/cli"
	"github.com/mickamy/pressroom/internal/config"
	"github.com/mickamy/pressroom/model"
)

var build = cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-02"}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, env := range []string{config.EnvDialect, config.EnvDSN, config.EnvLogLevel} {
		t.Setenv(env, "")
	}

	var out, errOut bytes.Buffer
	root := cli.NewRootCommand(build)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return strings.TrimSpace(out.String()), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("pressroom %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestVersion(t *testing.T) {
	out := mustRun(t, "version", "--config", "/does/not/exist.yaml")
	if want := "pressroom 1.2.3 (commit: abc123, built: 2026-01-02)"; out != want {
		t.Errorf("version = %q, want %q", out, want)
	}
}

func TestMigrate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cli.db")

	out := mustRun(t, "migrate", "--dsn", dsn)
	if out != "schema at version 2" {
		t.Errorf("migrate = %q", out)
	}
	if _, err := os.Stat(dsn); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestPublishingWorkflow(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cli.db")
	db := []string{"--dsn", dsn, "--dialect", "sqlite"}
	with := func(args ...string) []string { return append(args, db...) }

	if out := mustRun(t, with("author", "add", "Nellie Bly")...); out != "author 1 created" {
		t.Fatalf("author add = %q", out)
	}
	if out := mustRun(t, with("magazine", "add", "The World", "News")...); out != "magazine 1 created" {
		t.Fatalf("magazine add = %q", out)
	}
	for i, title := range []string{"Ten Days in a Mad-House", "Around the World", "Among the Mad"} {
		out := mustRun(t, with("article", "add", "--author", "1", "--magazine", "1", "--title", title, "--content", "...")...)
		if want := "article " + string(rune('1'+i)) + " created"; out != want {
			t.Fatalf("article add = %q, want %q", out, want)
		}
	}

	out := mustRun(t, with("article", "show", "2")...)
	if want := "Article: Around the World | Author: Nellie Bly | Magazine: The World"; out != want {
		t.Errorf("article show = %q, want %q", out, want)
	}

	out = mustRun(t, with("author", "show", "1")...)
	want := "AUTHOR: Nellie Bly || ID: 1 || MAGAZINES: The World || ARTICLES: Ten Days in a Mad-House; Around the World; Among the Mad"
	if out != want {
		t.Errorf("author show = %q, want %q", out, want)
	}

	out = mustRun(t, with("magazine", "show", "1")...)
	want = "MAGAZINE: The World | ID: 1 | ARTICLES: Ten Days in a Mad-House; Around the World; Among the Mad | " +
		"CONTRIBUTORS: Nellie Bly | KEY CONTRIBUTORS: Nellie Bly"
	if out != want {
		t.Errorf("magazine show = %q, want %q", out, want)
	}

	if out := mustRun(t, with("article", "delete", "3")...); out != "article 3 deleted" {
		t.Errorf("article delete = %q", out)
	}
	if _, err := run(t, with("article", "delete", "3")...); err == nil || !strings.Contains(err.Error(), "article 3 not found") {
		t.Errorf("second article delete error = %v", err)
	}

	out = mustRun(t, with("magazine", "show", "1")...)
	want = "MAGAZINE: The World | ID: 1 | ARTICLES: Ten Days in a Mad-House; Around the World | " +
		"CONTRIBUTORS: Nellie Bly | KEY CONTRIBUTORS: None"
	if out != want {
		t.Errorf("magazine show after delete = %q, want %q", out, want)
	}
}

func TestValidationErrorsSurface(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cli.db")

	_, err := run(t, "magazine", "add", "X", "News", "--dsn", dsn)
	if !errors.Is(err, model.ErrInvalid) {
		t.Errorf("magazine add with short name error = %v, want ErrInvalid", err)
	}

	_, err = run(t, "article", "add", "--author", "1", "--magazine", "1", "--title", "Hi", "--dsn", dsn)
	if !errors.Is(err, model.ErrInvalid) {
		t.Errorf("article add with short title error = %v, want ErrInvalid", err)
	}

	_, err = run(t, "author", "show", "7", "--dsn", dsn)
	if err == nil || !strings.Contains(err.Error(), "author 7 not found") {
		t.Errorf("author show missing error = %v", err)
	}

	_, err = run(t, "article", "show", "abc", "--dsn", dsn)
	if err == nil || !strings.Contains(err.Error(), "invalid article id") {
		t.Errorf("article show abc error = %v", err)
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pressroom.yaml")
	yaml := "database:\n  dialect: oracle\n  dsn: " + filepath.Join(dir, "from-file.db") + "\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := run(t, "migrate", "--config", path); err == nil || !strings.Contains(err.Error(), "oracle") {
		t.Fatalf("expected unsupported dialect error, got %v", err)
	}

	// The flag wins over the file.
	mustRun(t, "migrate", "--config", path, "--dialect", "sqlite", "-v")
	if _, err := os.Stat(filepath.Join(dir, "from-file.db")); err != nil {
		t.Errorf("expected DSN from config file to be used: %v", err)
	}
}
