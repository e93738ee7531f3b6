package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/WilliamC07/graphics-mdl/internal/app"
	"github.com/WilliamC07/graphics-mdl/internal/cli"
	"github.com/WilliamC07/graphics-mdl/internal/mdl"
)

// main is the entrypoint for the mdl2json application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		// The app has already printed and logged parse failures.
		var parseErr *app.ParseError
		if !errors.As(err, &parseErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	parser := mdl.NewParser(appConfig.ParserOptions())
	mdlApp := app.NewApp(outW, errW, appConfig, parser)

	return mdlApp.Run(context.Background())
}
