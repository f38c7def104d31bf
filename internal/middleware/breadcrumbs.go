// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the breadcrumbs service.
package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/ocms-breadcrumbs/internal/breadcrumbs"
	"github.com/olegiv/ocms-breadcrumbs/internal/config"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyBreadcrumbs is the context key for the request-scoped trail.
const ContextKeyBreadcrumbs ContextKey = "breadcrumbs"

// TrailFactory builds a fresh trail for each request.
type TrailFactory func() *breadcrumbs.Trail

// Factory returns a TrailFactory that clones a trail built from the
// configured defaults.
func Factory(cfg *config.Config) (TrailFactory, error) {
	proto, err := breadcrumbs.NewWithOptions(cfg.TrailOptions())
	if err != nil {
		return nil, err
	}
	return proto.Clone, nil
}

// Breadcrumbs stores a new trail from factory in the request context.
// Handlers fill it with GetBreadcrumbs and render it in their templates.
func Breadcrumbs(factory TrailFactory) func(http.Handler) http.Handler {
	if factory == nil {
		factory = breadcrumbs.New
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithBreadcrumbs(r.Context(), factory())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithBreadcrumbs returns a copy of ctx carrying t.
func WithBreadcrumbs(ctx context.Context, t *breadcrumbs.Trail) context.Context {
	return context.WithValue(ctx, ContextKeyBreadcrumbs, t)
}

// GetBreadcrumbs returns the request-scoped trail. Outside the middleware it
// returns a new default trail, never nil.
func GetBreadcrumbs(r *http.Request) *breadcrumbs.Trail {
	if t, ok := r.Context().Value(ContextKeyBreadcrumbs).(*breadcrumbs.Trail); ok && t != nil {
		return t
	}
	return breadcrumbs.New()
}
