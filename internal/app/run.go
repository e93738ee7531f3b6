package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/WilliamC07/graphics-mdl/internal/ctxlog"
	"github.com/WilliamC07/graphics-mdl/internal/wrapper"
)

// FailedToParse is printed to stdout when the parser yields no result.
const FailedToParse = "Failed to parse"

// ParseError reports that the model file produced no result.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Run parses the configured file and writes the wrapper object to the
// output writer as a single line of JSON.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "path", a.config.MDLPath)

	res, err := a.parser.ParseFile(ctx, a.config.MDLPath)
	if err == nil && res == nil {
		err = errors.New("parser returned no result")
	}
	if err != nil {
		fmt.Fprintln(a.outW, FailedToParse)
		a.logger.Error("Parsing failed.", "path", a.config.MDLPath, "error", err)
		return &ParseError{Path: a.config.MDLPath, Err: err}
	}

	for _, diag := range res.Diagnostics {
		a.logger.Warn("Skipped malformed input.", "error", diag)
	}
	a.logger.Info("Model file parsed.",
		"path", a.config.MDLPath,
		"commands", len(res.Commands),
		"symbols", len(res.Symbols),
		"skipped", len(res.Diagnostics),
	)
	a.logger.Debug("Symbols defined.", "names", res.SymbolNames())

	payload, err := wrapper.Marshal(res)
	if err != nil {
		return err
	}
	if _, err := a.outW.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if a.config.Publish != nil {
		a.logger.Debug("Publishing result.", "url", a.config.Publish.URL)
		if err := a.publish(ctx, *a.config.Publish, payload); err != nil {
			return fmt.Errorf("failed to publish result: %w", err)
		}
		a.logger.Info("Result published.", "url", a.config.Publish.URL, "event", a.config.Publish.Event)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
