// Package main provides the CLI entry point for video-digest.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/lepinkainen/video-digest/internal/config"
	"github.com/lepinkainen/video-digest/pkg/logging"
)

// CLI structure
var CLI struct {
	Config      string        `help:"Configuration file path" default:"config.yaml"`
	Debug       bool          `help:"Enable debug logging" default:"false"`
	Channels    string        `help:"Channel list YAML file (defaults to the built-in list)" type:"path"`
	OutputDir   string        `help:"Directory for the Markdown reports (overrides OUTPUT_DIR)" short:"o"`
	APIBaseURL  string        `name:"api-base-url" help:"Workflow API root URL"`
	FeedBaseURL string        `name:"feed-base-url" help:"Host serving channel feeds"`
	Timeout     time.Duration `help:"Timeout for each outbound request, 0 disables it" default:"0s"`

	Run struct {
		DigestFeed string `help:"Also write an Atom feed of the reports written in this run" type:"path"`
	} `cmd:"" default:"1" help:"Summarize today's videos from every channel."`

	Preview struct {
		Index int `help:"Print the video at this index (0-based) to stdout instead of opening the TUI" default:"-1"`
	} `cmd:"" help:"List today's videos without summarizing them."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("video-digest"),
		kong.Description("Summarize the videos channels published today."),
		kong.Configuration(kongyaml.Loader, "config.yaml", filepath.Join(xdg.ConfigHome, "video-digest", "config.yaml")),
	)

	level := slog.LevelInfo
	if CLI.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(logging.New(os.Stderr, level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	switch kctx.Command() {
	case "run":
		if err := cfg.Validate(); err != nil {
			var cfgErr *config.ConfigurationError
			if errors.As(err, &cfgErr) {
				slog.Error("Configuration error", "missing", cfgErr.Missing)
			} else {
				slog.Error("Configuration error", "error", err)
			}
			os.Exit(1)
		}
		if err := runDigest(ctx, cfg, CLI.Run.DigestFeed); err != nil {
			slog.Error("Run aborted", "error", err)
		}

	case "preview":
		if err := previewVideos(ctx, cfg, CLI.Preview.Index); err != nil {
			slog.Error("Preview failed", "error", err)
			os.Exit(1)
		}

	default:
		panic(kctx.Command())
	}
}

// loadConfig merges the config file and environment with the command line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(CLI.Config)
	if err != nil {
		return nil, err
	}

	if CLI.OutputDir != "" {
		cfg.OutputDir = CLI.OutputDir
	}
	if CLI.APIBaseURL != "" {
		cfg.APIBaseURL = CLI.APIBaseURL
	}
	if CLI.FeedBaseURL != "" {
		cfg.FeedBaseURL = CLI.FeedBaseURL
	}

	slog.Debug("Configuration loaded", "output_dir", cfg.OutputDir, "api", cfg.APIBaseURL, "feeds", cfg.FeedBaseURL)
	return cfg, nil
}
