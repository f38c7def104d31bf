// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import "github.com/olegiv/ocms-breadcrumbs/internal/breadcrumbs"

// Breadcrumb represents a single breadcrumb item.
type Breadcrumb struct {
	Label    string
	URL      string
	Active   bool
	Position int
}

// FromTrail converts a trail into view models for templates that lay out
// breadcrumbs themselves. The last item is active and has no URL.
func FromTrail(t *breadcrumbs.Trail) []Breadcrumb {
	if t == nil || t.IsEmpty() {
		return nil
	}

	crumbs := t.Crumbs()
	hrefs := t.Hrefs()
	items := make([]Breadcrumb, len(crumbs))
	for i, c := range crumbs {
		items[i] = Breadcrumb{
			Label:    c.Name,
			URL:      hrefs[i],
			Position: i + 1,
		}
	}

	last := &items[len(items)-1]
	last.Active = true
	last.URL = ""
	return items
}
