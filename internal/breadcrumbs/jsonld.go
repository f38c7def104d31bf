// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package breadcrumbs

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
)

// ListSchema represents JSON-LD BreadcrumbList structured data.
type ListSchema struct {
	Context  string           `json:"@context"`
	Type     string           `json:"@type"`
	ItemList []ListItemSchema `json:"itemListElement"`
}

// ListItemSchema represents a single breadcrumb item.
type ListItemSchema struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// Schema returns the trail as BreadcrumbList structured data. Relative hrefs
// are made absolute against baseURL when it is set. The last item has no
// item URL, like the rendered markup.
func (t *Trail) Schema(baseURL string) ListSchema {
	schema := ListSchema{
		Context:  "https://schema.org",
		Type:     "BreadcrumbList",
		ItemList: make([]ListItemSchema, 0, len(t.crumbs)),
	}

	last := len(t.crumbs) - 1
	for i, href := range t.Hrefs() {
		item := ListItemSchema{
			Type:     "ListItem",
			Position: i + 1,
			Name:     t.crumbs[i].Name,
		}
		if i != last {
			item.Item = makeAbsoluteURL(href, baseURL)
		}
		schema.ItemList = append(schema.ItemList, item)
	}

	return schema
}

// JSONLD marshals Schema for a <script type="application/ld+json"> tag.
// An empty trail yields "".
func (t *Trail) JSONLD(baseURL string) (template.JS, error) {
	if t.IsEmpty() {
		return "", nil
	}
	data, err := json.MarshalIndent(t.Schema(baseURL), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling breadcrumb schema: %w", err)
	}
	return template.JS(data), nil //nolint:gosec // encoding/json escapes <, > and &
}

// makeAbsoluteURL prefixes a site-relative href with baseURL.
func makeAbsoluteURL(href, baseURL string) string {
	if baseURL == "" || hasScheme(href) {
		return href
	}
	return strings.TrimSuffix(baseURL, "/") + href
}
