// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package breadcrumbs

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// crumbSets mirrors the trails used throughout the tests.
var crumbSets = map[string][]Record{
	"home and products": {
		{"name": "Home", "href": "/"},
		{"name": "Products", "href": "/products"},
	},
	"nested segments": {
		{"name": "Home", "href": "/"},
		{"name": "About", "href": "about"},
		{"name": "Organization chart", "href": "organization-chart"},
	},
	"full urls": {
		{"name": "Admin home", "href": "/admin"},
		{"name": "Stores", "href": "stores"},
		{"name": "Store Foo", "href": "http://website.com/admin/stores/store-foo"},
		{"name": "Secure product creation", "href": "https://website.com/admin/stores/store-foo/add-product"},
	},
}

// parseFragment parses rendered markup into a node tree.
func parseFragment(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

// findAll returns every node under n matching the given tag and, when set,
// carrying the given class.
func findAll(n *html.Node, tag, class string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			if class == "" || slices.Contains(strings.Fields(attr(n, "class")), class) {
				found = append(found, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// mustTrail builds a trail from records and fails the test on error.
func mustTrail(t *testing.T, records []Record, classes any) *Trail {
	t.Helper()
	trail, err := NewFromRecords(records, classes)
	require.NoError(t, err)
	return trail
}
