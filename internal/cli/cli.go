package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/WilliamC07/graphics-mdl/internal/app"
	"github.com/WilliamC07/graphics-mdl/internal/hclconfig"
	"github.com/WilliamC07/graphics-mdl/internal/publish"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("mdl2json", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mdl2json - parse a model description (MDL) file and print it as JSON.

Usage:
  mdl2json [options] FILE

Arguments:
  FILE
    Path to the .mdl file to parse. The result is written to stdout as
    {"symbols": ..., "commands": ...}.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL settings file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	strictFlag := flagSet.Bool("strict", false, "Fail on the first syntax error instead of skipping the line.")
	publishFlag := flagSet.String("publish", "", "socket.io URL to also send the result to.")
	publishEventFlag := flagSet.String("publish-event", publish.DefaultEvent, "Event name used when publishing.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	switch flagSet.NArg() {
	case 0:
		flagSet.Usage()
		return nil, false, usageError("missing model file argument")
	case 1:
	default:
		return nil, false, usageError("expected exactly one model file, got %d", flagSet.NArg())
	}

	cfg := app.DefaultConfig()
	cfg.MDLPath = flagSet.Arg(0)
	slog.Debug("Model path determined.", "path", cfg.MDLPath)

	if *configFlag != "" {
		file, err := hclconfig.Load(*configFlag)
		if err != nil {
			return nil, false, usageError("%s", err.Error())
		}
		if err := applySettings(&cfg, file); err != nil {
			return nil, false, usageError("%s", err.Error())
		}
		slog.Debug("Settings file applied.", "path", *configFlag)
	}

	// Only flags given on the command line override the settings file.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-format":
			cfg.LogFormat = strings.ToLower(*logFormatFlag)
		case "log-level":
			cfg.LogLevel = strings.ToLower(*logLevelFlag)
		case "strict":
			cfg.Strict = *strictFlag
		case "publish":
			if cfg.Publish == nil {
				cfg.Publish = &publish.Options{}
			}
			cfg.Publish.URL = *publishFlag
		case "publish-event":
			if cfg.Publish == nil {
				cfg.Publish = &publish.Options{}
			}
			cfg.Publish.Event = *publishEventFlag
		}
	})

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// applySettings copies every value present in the settings file onto cfg.
func applySettings(cfg *app.Config, file *hclconfig.File) error {
	if file.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(*file.LogLevel)
	}
	if file.LogFormat != nil {
		cfg.LogFormat = strings.ToLower(*file.LogFormat)
	}
	if file.Strict != nil {
		cfg.Strict = *file.Strict
	}
	if s := file.Screen; s != nil {
		if s.Width != nil {
			cfg.ScreenWidth = *s.Width
		}
		if s.Height != nil {
			cfg.ScreenHeight = *s.Height
		}
	}
	if p := file.Publish; p != nil {
		opts := &publish.Options{URL: p.URL}
		if p.Namespace != nil {
			opts.Namespace = *p.Namespace
		}
		if p.Event != nil {
			opts.Event = *p.Event
		}
		if p.ReplyEvent != nil {
			opts.ReplyEvent = *p.ReplyEvent
		}
		if p.Timeout != nil {
			d, err := time.ParseDuration(*p.Timeout)
			if err != nil {
				return fmt.Errorf("invalid publish timeout %q: %w", *p.Timeout, err)
			}
			opts.Timeout = d
		}
		if p.InsecureSkipVerify != nil {
			opts.InsecureSkipVerify = *p.InsecureSkipVerify
		}
		cfg.Publish = opts
	}
	return nil
}
