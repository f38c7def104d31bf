// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/ocms-breadcrumbs/internal/cache"
	"github.com/olegiv/ocms-breadcrumbs/internal/version"
)

// pinger is implemented by caches with a remote backend.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	cache     cache.Cache
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(c cache.Cache, info version.Info) *HealthHandler {
	return &HealthHandler{
		cache:     c,
		version:   info,
		startTime: time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Uptime    string      `json:"uptime"`
	Version   string      `json:"version"`
	GoVersion string      `json:"go_version"`
	Cache     CacheHealth `json:"cache"`
}

// CacheHealth reports the fragment cache backend.
type CacheHealth struct {
	Type    string       `json:"type"`
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
	Stats   *cache.Stats `json:"stats,omitempty"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	cacheHealth := h.checkCache(r.Context())

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Version,
		GoVersion: runtime.Version(),
		Cache:     cacheHealth,
	}
	if status.Version == "" {
		status.Version = "dev"
	}

	code := http.StatusOK
	if cacheHealth.Status != "healthy" {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *HealthHandler) checkCache(ctx context.Context) CacheHealth {
	if h.cache == nil {
		return CacheHealth{Type: "none", Status: "healthy", Message: "Fragment cache disabled"}
	}

	check := CacheHealth{Type: cache.Type(h.cache), Status: "healthy"}

	if p, ok := h.cache.(pinger); ok {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		start := time.Now()
		err := p.Ping(ctx)
		check.Latency = time.Since(start).String()
		if err != nil {
			check.Status = "unhealthy"
			check.Message = err.Error()
			return check
		}
	}

	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		check.Stats = &stats
	}
	return check
}
