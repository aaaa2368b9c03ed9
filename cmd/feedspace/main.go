package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/raihara3/feedspace/pkg/config"
	"github.com/raihara3/feedspace/pkg/feed"
	"github.com/raihara3/feedspace/pkg/ingest"
	"github.com/raihara3/feedspace/pkg/ogp"
	"github.com/raihara3/feedspace/pkg/repository"
	"github.com/raihara3/feedspace/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	log.Printf("[INFO] starting feedspace version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()

	log.Print("[INFO] shutdown complete")
}

// run loads configuration, wires the components and serves until the
// context is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		Limits: repository.Limits{
			MaxFeeds:         cfg.Limits.MaxFeeds,
			MaxKeywords:      cfg.Limits.MaxKeywords,
			KeywordMaxLength: cfg.Limits.KeywordMaxLength,
			MaxReadLater:     cfg.Limits.MaxReadLater,
		},
	})
	if err != nil {
		return fmt.Errorf("init repositories: %w", err)
	}
	defer func() {
		if closeErr := repos.Close(); closeErr != nil {
			log.Printf("[WARN] failed to close database: %v", closeErr)
		}
	}()

	fetcher := feed.NewFetcher(cfg.Schedule.FetchTimeout, "Feedspace/"+revision)
	reconciler := ingest.NewReconciler(repos.Item, cfg.Schedule.RetentionCap)
	orchestrator := ingest.NewOrchestrator(fetcher, repos.Feed, reconciler, repos.Item, ingest.Config{
		MaxWorkers: cfg.Schedule.MaxWorkers,
		SweepAge:   cfg.Schedule.SweepAge,
	})
	images := ogp.NewExtractor(ogp.Params{
		Timeout:     cfg.OGP.Timeout,
		UserAgent:   cfg.OGP.UserAgent,
		MaxBodySize: cfg.OGP.MaxBodySize,
		CacheSize:   cfg.OGP.CacheSize,
		CacheTTL:    cfg.OGP.CacheTTL,
	})

	srv := server.New(server.Params{
		Feeds:     repos.Feed,
		Items:     repos.Item,
		ReadLater: repos.ReadLater,
		Keywords:  repos.Keyword,
		Fetcher:   fetcher,
		Ingester:  reconciler,
		Refresher: orchestrator,
		Images:    images,
		Listen:    cfg.Server.Listen,
		Timeout:   cfg.Server.Timeout,
		Staleness: cfg.Schedule.Staleness,
		Version:   revision,
		Debug:     opts.Debug,
	})

	return srv.Run(ctx)
}

// loadConfig reads the config file, falling back to defaults when the
// file is absent
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[WARN] config file %s not found, using defaults", path)
		return config.Default(), nil
	}
	return config.Load(path)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
