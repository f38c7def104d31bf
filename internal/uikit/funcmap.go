// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit provides the template helpers and view models used to put
// breadcrumb trails on pages.
package uikit

import (
	"html/template"
	"log/slog"
	"unicode/utf8"

	"github.com/olegiv/ocms-breadcrumbs/internal/breadcrumbs"
)

// TemplateFuncs returns a template.FuncMap with the breadcrumb helpers and
// truncate.
//
// Callers can merge project-specific functions on top:
//
//	funcs := uikit.TemplateFuncs()
//	funcs["myFunc"] = myProjectFunc
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Breadcrumbs
		"breadcrumbs": func(t *breadcrumbs.Trail) template.HTML {
			if t == nil {
				return ""
			}
			return t.HTML()
		},
		"breadcrumbItems": FromTrail,
		"breadcrumbJSONLD": func(t *breadcrumbs.Trail, baseURL string) template.JS {
			if t == nil {
				return ""
			}
			js, err := t.JSONLD(baseURL)
			if err != nil {
				slog.Error("failed to build breadcrumb JSON-LD", "error", err)
				return ""
			}
			return js
		},

		// String functions
		"truncate": truncate,
	}
}

// truncate shortens s to at most length runes, appending "..." when cut.
func truncate(s string, length int) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	if length < 0 {
		length = 0
	}
	return string([]rune(s)[:length]) + "..."
}
