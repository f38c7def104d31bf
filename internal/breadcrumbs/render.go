// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package breadcrumbs

import (
	"html"
	"html/template"
	"strconv"
	"strings"
)

const (
	listItemAttrs = `itemprop="itemListElement" itemscope itemtype="http://schema.org/ListItem"`
	listAttrs     = `itemscope itemtype="http://schema.org/BreadcrumbList"`
)

// Hrefs returns the resolved link target of every crumb.
//
// Segments accumulate from crumb to crumb and are joined with "/". A full
// URL crumb starts a new accumulation. Results that are not http(s) URLs
// get a leading slash.
func (t *Trail) Hrefs() []string {
	hrefs := make([]string, 0, len(t.crumbs))
	var segments []string

	for _, c := range t.crumbs {
		if c.HrefIsFullURL {
			segments = nil
		}
		if c.Href != "" {
			segments = append(segments, c.Href)
		}

		href := strings.Join(segments, "/")
		if !hasScheme(href) {
			href = "/" + href
		}
		hrefs = append(hrefs, href)
	}

	return hrefs
}

// Render returns the trail as an HTML fragment, or "" for an empty trail.
// Names and hrefs are escaped; the divider is written as is.
func (t *Trail) Render() string {
	if t.IsEmpty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(t.listElement)
	b.WriteString(" " + listAttrs + ` class="`)
	b.WriteString(html.EscapeString(strings.Join(t.classes, " ")))
	b.WriteString(`">`)

	last := len(t.crumbs) - 1
	for i, href := range t.Hrefs() {
		t.renderCrumb(&b, t.crumbs[i].Name, href, i+1, i == last)
	}

	b.WriteString("</")
	b.WriteString(t.listElement)
	b.WriteString(">")
	return b.String()
}

// renderCrumb writes one list item. The last item is plain text marked
// active; the others are links followed by the divider.
func (t *Trail) renderCrumb(b *strings.Builder, name, href string, position int, isLast bool) {
	name = html.EscapeString(name)
	positionMeta := `<meta itemprop="position" content="` + strconv.Itoa(position) + `" />`

	if isLast {
		b.WriteString(`<li ` + listItemAttrs + ` class="active"><span itemprop="name">`)
		b.WriteString(name)
		b.WriteString("</span>")
		b.WriteString(positionMeta)
		b.WriteString("</li>")
		return
	}

	b.WriteString(`<li ` + listItemAttrs + `><a itemprop="item" href="`)
	b.WriteString(html.EscapeString(href))
	b.WriteString(`"><span itemprop="name">`)
	b.WriteString(name)
	b.WriteString("</span></a>")
	b.WriteString(positionMeta)
	if divider, ok := t.Divider(); ok {
		b.WriteString(` <span class="divider">`)
		b.WriteString(divider)
		b.WriteString("</span>")
	}
	b.WriteString("</li>")
}

// HTML returns the rendered trail for use in html/template.
func (t *Trail) HTML() template.HTML {
	return template.HTML(t.Render()) //nolint:gosec // names and hrefs are escaped in Render
}

// String implements fmt.Stringer by rendering the trail.
func (t *Trail) String() string {
	return t.Render()
}
