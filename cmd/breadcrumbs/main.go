// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/ocms-breadcrumbs/internal/cache"
	"github.com/olegiv/ocms-breadcrumbs/internal/config"
	"github.com/olegiv/ocms-breadcrumbs/internal/logging"
	"github.com/olegiv/ocms-breadcrumbs/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "breadcrumbs - breadcrumb trail rendering service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BREADCRUMBS_SERVER_PORT    Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BREADCRUMBS_ENV            Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BREADCRUMBS_CLASSES        CSS classes of the trail (default: breadcrumbs)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BREADCRUMBS_DIVIDER        Divider markup (default: /)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BREADCRUMBS_LIST_ELEMENT   Wrapping element (default: ul)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BREADCRUMBS_BASE_URL       Absolute site URL for JSON-LD (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BREADCRUMBS_REDIS_URL      Redis URL for the fragment cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	fragments := cache.NewCache(cacheConfig(cfg))
	defer func() {
		if err := fragments.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("fragment cache ready", "type", cache.Type(fragments))

	r, err := newRouter(cfg, fragments, versionInfo)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// cacheConfig maps the service configuration onto the fragment cache.
// Unset values keep the cache package defaults.
func cacheConfig(cfg *config.Config) cache.Config {
	cc := cache.DefaultConfig()
	if cfg.UseRedisCache() {
		cc.RedisURL = cfg.RedisURL
	}
	if cfg.CachePrefix != "" {
		cc.Prefix = cfg.CachePrefix
	}
	if cfg.CacheTTL > 0 {
		cc.DefaultTTL = cfg.CacheTTLDuration()
	}
	if cfg.CacheMaxSize > 0 {
		cc.MaxSize = cfg.CacheMaxSize
	}
	return cc
}
