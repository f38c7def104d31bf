// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides helpers that turn URL paths and slugs into
// breadcrumb trails and human readable labels.
package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/olegiv/ocms-breadcrumbs/internal/breadcrumbs"
)

// Humanize turns a URL segment into a label:
// "organization-chart" becomes "Organization Chart".
func Humanize(segment string) string {
	s := norm.NFC.String(segment)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	// Casers are stateful, so each call gets its own.
	return cases.Title(language.English).String(s)
}

// TrailFromPath adds a home crumb linking to "/" and one crumb per segment
// of path, each labelled with Humanize. Segments accumulate, so the crumb
// for "/guides/install" links to "/guides/install".
func TrailFromPath(t *breadcrumbs.Trail, home, path string) *breadcrumbs.Trail {
	t.AddCrumb(home, "/")
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if segment == "" {
			continue
		}
		t.AddCrumb(Humanize(segment), segment)
	}
	return t
}
