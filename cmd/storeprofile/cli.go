package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/storeprofile"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *Config
	Extractor storeprofile.ProfileExtractor
	Converter storeprofile.Converter

	// Profiles is nil unless the command needs storage.
	Profiles storeprofile.ProfileService

	// Exporter is set when extract writes files.
	Exporter storeprofile.ProfileExporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log extraction steps to stderr"`
	Config  string `type:"path" help:"Path to a config file (default: ./storeprofile.yaml or ~/.storeprofile/storeprofile.yaml)"`
	DB      string `type:"path" help:"Database path (overrides STOREPROFILE_DB)"`

	Extract ExtractCmd `cmd:"" help:"Extract storefront profiles"`
	Serve   ServeCmd   `cmd:"" help:"Serve the extraction API"`
	List    ListCmd    `cmd:"" help:"List stored profiles"`
	Show    ShowCmd    `cmd:"" help:"Show a stored profile"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored profile"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Storefront URLs"`
	Save        bool          `short:"s" help:"Store extracted profiles"`
	Format      string        `short:"f" enum:"json,markdown" default:"json" help:"Output format (json, markdown)"`
	Concurrency int           `short:"c" default:"4" help:"Storefronts extracted at once"`
	Timeout     time.Duration `short:"t" help:"Per-request timeout (overrides config)"`
	Out         string        `short:"o" type:"path" help:"Also write JSON and Markdown files to this directory"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
	Save bool   `short:"s" help:"Store extracted profiles and enable the /profiles routes"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Website string `help:"Only list profiles of this website"`
	Limit   int    `short:"n" default:"20" help:"Maximum number of profiles"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Profile ID"`
	Format string `short:"f" enum:"json,markdown" default:"markdown" help:"Output format (json, markdown)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Profile ID"`
}
