package main

import (
	"io"
	"time"

	"github.com/Furafrafrfr/readability/cache"
	"github.com/Furafrafrfr/readability/config"
)

// Dependencies holds shared state handed to every subcommand's Run method.
type Dependencies struct {
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *config.Config
	Cache     *cache.Cache
	StartTime time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract readable content from an HTML file or stdin"`
	Batch   BatchCmd   `cmd:"" help:"Extract readable content from multiple HTML files"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API server"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File         string `arg:"" optional:"" help:"HTML file to extract from; reads stdin if omitted"`
	URL          string `help:"Document URL, used to resolve relative links"`
	Format       string `default:"html" enum:"html,markdown,text" help:"Output format"`
	KeepClasses  bool   `help:"Disable class-attribute stripping"`
	CSSSelector  string `help:"Narrow to elements matching this CSS selector before extraction"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Files  []string `arg:"" help:"HTML files to extract from"`
	Format string   `default:"html" enum:"html,markdown,text" help:"Output format"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	ConfigFile string `help:"Path to a YAML config file"`
}
