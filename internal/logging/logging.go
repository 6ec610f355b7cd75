package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mickamy/pressroom/internal/config"
	"github.com/mickamy/pressroom/orm"
)

// Apply sets the global log level and output writers: console on stderr,
// plus a rotating file when cfg.File is set.
func Apply(cfg config.Log) {
	applyLevel(cfg.Level)
	applyOutputs(cfg, os.Stderr)
}

func applyLevel(level string) {
	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func applyOutputs(cfg config.Log, console io.Writer) {
	consoleOutput := zerolog.ConsoleWriter{Out: console, TimeFormat: "2006-01-02 15:04:05"}
	log.Logger = zerolog.New(consoleOutput).With().Timestamp().Logger()

	if cfg.File == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		log.Error().Err(err).Str("path", cfg.File).Msg("Failed to prepare log directory; logging to console only")
		return
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	fileConsole := zerolog.ConsoleWriter{
		Out:        fileWriter,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}

	multi := zerolog.MultiLevelWriter(consoleOutput, fileConsole)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
}

// QueryLogger writes every SQL statement issued through an orm.DB at debug
// level.
type QueryLogger struct {
	Logger zerolog.Logger
}

// NewQueryLogger returns a QueryLogger writing to the global logger.
func NewQueryLogger() QueryLogger {
	return QueryLogger{Logger: log.Logger.With().Str("component", "sql").Logger()}
}

func (l QueryLogger) Log(_ context.Context, query string, args ...any) {
	l.Logger.Debug().Str("query", query).Interface("args", args).Msg("Executing query")
}

var _ orm.Logger = QueryLogger{}
