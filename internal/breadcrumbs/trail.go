// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package breadcrumbs builds breadcrumb trails and renders them as HTML
// lists with schema.org BreadcrumbList microdata.
//
// A Trail is not safe for concurrent use. Give every request its own trail,
// see middleware.Breadcrumbs.
package breadcrumbs

import (
	"regexp"
	"slices"
)

// Defaults applied by New.
const (
	DefaultClass       = "breadcrumbs"
	DefaultDivider     = "/"
	DefaultListElement = "ul"
)

// NoDivider passed to SetDivider disables the divider, like nil.
const NoDivider = "none"

var tagNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// Trail is an ordered list of crumbs plus the settings used to render it.
type Trail struct {
	crumbs      []Crumb
	classes     []string
	divider     *string
	listElement string
}

// Options configures NewWithOptions. Zero fields take the package defaults.
type Options struct {
	Crumbs      []Crumb
	Classes     []string
	Divider     string
	NoDivider   bool
	ListElement string
}

// New returns an empty trail with the default class, divider and list element.
func New() *Trail {
	divider := DefaultDivider
	return &Trail{
		classes:     []string{DefaultClass},
		divider:     &divider,
		listElement: DefaultListElement,
	}
}

// NewWithOptions returns a trail configured from opts.
func NewWithOptions(opts Options) (*Trail, error) {
	t := New()

	if len(opts.Classes) > 0 {
		t.SetCSSClasses(opts.Classes...)
		if len(t.classes) == 0 {
			t.classes = []string{DefaultClass}
		}
	}

	switch {
	case opts.NoDivider || opts.Divider == NoDivider:
		t.divider = nil
	case opts.Divider != "":
		divider := opts.Divider
		t.divider = &divider
	}

	if opts.ListElement != "" {
		if err := t.SetListElement(opts.ListElement); err != nil {
			return nil, err
		}
	}

	for _, c := range opts.Crumbs {
		t.AddCrumb(c.Name, c.Href, c.HrefIsFullURL)
	}

	return t, nil
}

// NewFromRecords builds a trail from untyped input, for example a decoded
// JSON body. A nil or empty classes value keeps the default class.
func NewFromRecords(records any, classes any) (*Trail, error) {
	t := New()

	if records != nil {
		if _, err := t.SetBreadcrumbs(records); err != nil {
			return nil, err
		}
	}

	if !isEmptyClassInput(classes) {
		if err := t.SetClasses(classes); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// AddCrumb appends a crumb and returns the trail for chaining.
//
// An href starting with "/" has the slash removed and is treated as a full
// URL. An href starting with "http://" or "https://" is always a full URL.
// Any other href is a segment joined to the preceding ones when rendering.
func (t *Trail) AddCrumb(name, href string, hrefIsFullURL ...bool) *Trail {
	full := len(hrefIsFullURL) > 0 && hrefIsFullURL[0]
	t.crumbs = append(t.crumbs, normalizeCrumb(name, href, full))
	return t
}

// Add is an alias of AddCrumb.
func (t *Trail) Add(name, href string, hrefIsFullURL ...bool) *Trail {
	return t.AddCrumb(name, href, hrefIsFullURL...)
}

// SetBreadcrumbs appends every record in records. It accepts []Crumb,
// []Record, []map[string]any, []map[string]string and []any. Nothing is
// appended unless every record passes IsValidCrumb.
func (t *Trail) SetBreadcrumbs(records any) (*Trail, error) {
	items, ok := recordsToSlice(records)
	if !ok {
		return t, invalidInput("SetBreadcrumbs", "only accepts slices of crumb records, %s given", typeName(records))
	}

	parsed := make([]Crumb, 0, len(items))
	for i, item := range items {
		c, ok := toCrumb(item)
		if !ok || !c.Valid() {
			return t, invalidInput("SetBreadcrumbs", "record %d is malformed: %#v", i, item)
		}
		parsed = append(parsed, c)
	}

	for _, c := range parsed {
		t.AddCrumb(c.Name, c.Href, c.HrefIsFullURL)
	}
	return t, nil
}

func recordsToSlice(records any) ([]any, bool) {
	switch r := records.(type) {
	case []any:
		return r, true
	case []Crumb:
		return toAnySlice(r), true
	case []Record:
		return toAnySlice(r), true
	case []map[string]any:
		return toAnySlice(r), true
	case []map[string]string:
		return toAnySlice(r), true
	default:
		return nil, false
	}
}

func toAnySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// Crumbs returns a copy of the crumbs in display order.
func (t *Trail) Crumbs() []Crumb {
	return slices.Clone(t.crumbs)
}

// Count returns the number of crumbs.
func (t *Trail) Count() int {
	return len(t.crumbs)
}

// IsEmpty reports whether the trail has no crumbs.
func (t *Trail) IsEmpty() bool {
	return t.Count() == 0
}

// RemoveAll drops every crumb. Classes, divider and list element are kept.
func (t *Trail) RemoveAll() *Trail {
	t.crumbs = nil
	return t
}

// SetDivider sets the markup printed between crumbs. A nil value, an empty
// string or NoDivider disables it.
func (t *Trail) SetDivider(v any) error {
	switch d := v.(type) {
	case nil:
		t.divider = nil
	case string:
		if d == "" || d == NoDivider {
			t.divider = nil
			return nil
		}
		t.divider = &d
	default:
		return invalidInput("SetDivider", "only accepts strings or nil, %s given", typeName(v))
	}
	return nil
}

// Divider returns the divider and whether one is rendered.
func (t *Trail) Divider() (string, bool) {
	if t.divider == nil {
		return "", false
	}
	return *t.divider, true
}

// SetListElement sets the tag of the element wrapping the crumbs.
func (t *Trail) SetListElement(v any) error {
	tag, ok := v.(string)
	if !ok {
		return invalidInput("SetListElement", "only accepts strings, %s given", typeName(v))
	}
	if !tagNameRegex.MatchString(tag) {
		return invalidInput("SetListElement", "%q is not a valid element name", tag)
	}
	t.listElement = tag
	return nil
}

// ListElement returns the tag of the wrapping element.
func (t *Trail) ListElement() string {
	return t.listElement
}

// Clone returns an independent copy of the trail.
func (t *Trail) Clone() *Trail {
	c := &Trail{
		crumbs:      slices.Clone(t.crumbs),
		classes:     slices.Clone(t.classes),
		listElement: t.listElement,
	}
	if t.divider != nil {
		divider := *t.divider
		c.divider = &divider
	}
	return c
}
