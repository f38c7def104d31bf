// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/ocms-breadcrumbs/internal/cache"
	"github.com/olegiv/ocms-breadcrumbs/internal/config"
	"github.com/olegiv/ocms-breadcrumbs/internal/handler"
	"github.com/olegiv/ocms-breadcrumbs/internal/middleware"
	"github.com/olegiv/ocms-breadcrumbs/internal/version"
	"github.com/olegiv/ocms-breadcrumbs/web"
)

// Route paths
const (
	routeRender = "/api/v1/breadcrumbs/render"
	routeStatic = "/static/*"
)

// newRouter wires the handlers and middleware of the service.
func newRouter(cfg *config.Config, fragments cache.Cache, versionInfo version.Info) (http.Handler, error) {
	factory, err := middleware.Factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("building trail factory: %w", err)
	}

	guidesFS, err := fs.Sub(web.Guides, "guides")
	if err != nil {
		return nil, fmt.Errorf("opening guides: %w", err)
	}
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("opening templates: %w", err)
	}

	guidesHandler, err := handler.NewGuidesHandler(guidesFS, templatesFS, handler.GuidesOptions{
		HomeLabel: cfg.HomeLabel,
		BaseURL:   cfg.BaseURL,
		Version:   versionInfo.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading guides: %w", err)
	}
	slog.Info("guides loaded", "count", len(guidesHandler.Guides()))
	renderHandler := handler.NewRenderHandler(fragments, factory, cfg.BaseURL)
	healthHandler := handler.NewHealthHandler(fragments, versionInfo)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.Breadcrumbs(factory))

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)

	limiter := middleware.NewGlobalRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware())
		r.Post(routeRender, renderHandler.Render)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
		r.Use(limiter.HTMLMiddleware())

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, handler.GuidesPath, http.StatusFound)
		})
		r.Get(handler.GuidesPath, guidesHandler.Index)
		r.Get(handler.GuidesPath+"/{slug}", guidesHandler.Guide)

		staticHandler := middleware.StaticCache(86400)(http.FileServer(http.FS(web.Static)))
		r.Handle(routeStatic, staticHandler)
	})

	return r, nil
}
