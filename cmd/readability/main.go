package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Furafrafrfr/readability/config"
)

func main() {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("readability"),
		kong.Description("Extract readable article content from HTML."),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kongCtx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg := config.Load()
	if kongCtx.Command() == "serve" && cli.Serve.ConfigFile != "" {
		cfg, err = config.LoadFile(cli.Serve.ConfigFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	initLogger(cfg.Log)

	deps := &Dependencies{Stdout: os.Stdout, Stderr: os.Stderr, Config: cfg}

	if err := kongCtx.Run(deps); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
