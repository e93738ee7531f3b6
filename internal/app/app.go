package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/WilliamC07/graphics-mdl/internal/mdl"
	"github.com/WilliamC07/graphics-mdl/internal/publish"
)

// Parser is the parsing collaborator. It returns a nil Result with a
// non-nil error when the file yields no result.
type Parser interface {
	ParseFile(ctx context.Context, filename string) (*mdl.Result, error)
}

// publishFunc sends the encoded wrapper to a remote listener.
type publishFunc func(ctx context.Context, opts publish.Options, payload []byte) error

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	parser  Parser
	publish publishFunc
}

// NewApp is the constructor for the main application. outW receives the
// JSON result; logW receives log output and must not be the same stream
// when the result is consumed by another program.
func NewApp(outW, logW io.Writer, config *Config, parser Parser) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		config:  config,
		parser:  parser,
		publish: publish.Emit,
	}
}
