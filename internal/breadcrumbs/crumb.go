// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package breadcrumbs

import (
	"strconv"
	"strings"
)

// Crumb is a single navigation entry of a trail.
type Crumb struct {
	Name string `json:"name"`
	Href string `json:"href"`
	// HrefIsFullURL marks Href as absolute. Otherwise Href is a segment
	// appended to the hrefs of the preceding crumbs.
	HrefIsFullURL bool `json:"hrefIsFullUrl"`
}

// Valid reports whether both Name and Href are set.
func (c Crumb) Valid() bool {
	return c.Name != "" && c.Href != ""
}

// Record is an untyped crumb as decoded from JSON or form input.
// Recognized keys are "name", "href" and "hrefIsFullUrl".
type Record map[string]any

// Record keys.
const (
	KeyName          = "name"
	KeyHref          = "href"
	KeyHrefIsFullURL = "hrefIsFullUrl"
)

// IsValidCrumb reports whether v can be added to a trail: a Crumb or a
// string-keyed map whose name and href are non-empty strings.
func IsValidCrumb(v any) bool {
	c, ok := toCrumb(v)
	return ok && c.Valid()
}

// toCrumb extracts crumb fields from any supported record shape.
func toCrumb(v any) (Crumb, bool) {
	switch r := v.(type) {
	case Crumb:
		return r, true
	case *Crumb:
		if r == nil {
			return Crumb{}, false
		}
		return *r, true
	case Record:
		return crumbFromMap(r)
	case map[string]any:
		return crumbFromMap(r)
	case map[string]string:
		name, okName := r[KeyName]
		href, okHref := r[KeyHref]
		if !okName || !okHref {
			return Crumb{}, false
		}
		return Crumb{Name: name, Href: href, HrefIsFullURL: truthy(r[KeyHrefIsFullURL])}, true
	default:
		return Crumb{}, false
	}
}

func crumbFromMap(m map[string]any) (Crumb, bool) {
	name, ok := m[KeyName].(string)
	if !ok {
		return Crumb{}, false
	}
	href, ok := m[KeyHref].(string)
	if !ok {
		return Crumb{}, false
	}
	return Crumb{Name: name, Href: href, HrefIsFullURL: truthy(m[KeyHrefIsFullURL])}, true
}

// truthy reads a loosely typed flag: true, a non-zero number, or a string
// that parses as one of those ("true", "1").
func truthy(v any) bool {
	switch f := v.(type) {
	case bool:
		return f
	case float64:
		return f != 0
	case int:
		return f != 0
	case int64:
		return f != 0
	case string:
		if b, err := strconv.ParseBool(f); err == nil {
			return b
		}
		n, err := strconv.ParseFloat(f, 64)
		return err == nil && n != 0
	default:
		return false
	}
}

// normalizeCrumb applies the href rules: a leading slash is stripped and
// forces a full URL; an http(s) href is always a full URL.
func normalizeCrumb(name, href string, full bool) Crumb {
	switch {
	case strings.HasPrefix(href, "/"):
		return normalizeCrumb(name, href[1:], true)
	case !full && hasScheme(href):
		return normalizeCrumb(name, href, true)
	}
	return Crumb{Name: name, Href: href, HrefIsFullURL: full}
}

func hasScheme(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}
