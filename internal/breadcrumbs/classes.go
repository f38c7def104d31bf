// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package breadcrumbs

import (
	"slices"
	"strings"
)

// SetClasses replaces the CSS classes of the wrapping element. v is either a
// space separated string or a list of strings.
func (t *Trail) SetClasses(v any) error {
	classes, err := parseClasses("SetClasses", v)
	if err != nil {
		return err
	}
	t.classes = uniqueClasses(classes)
	return nil
}

// AddClasses adds CSS classes, keeping existing ones.
func (t *Trail) AddClasses(v any) error {
	classes, err := parseClasses("AddClasses", v)
	if err != nil {
		return err
	}
	t.classes = uniqueClasses(append(t.classes, classes...))
	return nil
}

// RemoveClasses removes CSS classes. Classes that are not set are ignored.
func (t *Trail) RemoveClasses(v any) error {
	classes, err := parseClasses("RemoveClasses", v)
	if err != nil {
		return err
	}
	t.classes = slices.DeleteFunc(t.classes, func(c string) bool {
		return slices.Contains(classes, c)
	})
	return nil
}

// SetCSSClasses is the typed form of SetClasses.
func (t *Trail) SetCSSClasses(classes ...string) *Trail {
	t.classes = uniqueClasses(splitClasses(classes))
	return t
}

// AddCSSClasses is the typed form of AddClasses.
func (t *Trail) AddCSSClasses(classes ...string) *Trail {
	t.classes = uniqueClasses(append(t.classes, splitClasses(classes)...))
	return t
}

// RemoveCSSClasses is the typed form of RemoveClasses.
func (t *Trail) RemoveCSSClasses(classes ...string) *Trail {
	remove := splitClasses(classes)
	t.classes = slices.DeleteFunc(t.classes, func(c string) bool {
		return slices.Contains(remove, c)
	})
	return t
}

// Classes returns the CSS classes in insertion order.
func (t *Trail) Classes() []string {
	return slices.Clone(t.classes)
}

func parseClasses(op string, v any) ([]string, error) {
	switch c := v.(type) {
	case string:
		return strings.Fields(c), nil
	case []string:
		return splitClasses(c), nil
	case []any:
		classes := make([]string, 0, len(c))
		for i, item := range c {
			s, ok := item.(string)
			if !ok {
				return nil, invalidInput(op, "class %d is %s, not a string", i, typeName(item))
			}
			classes = append(classes, strings.Fields(s)...)
		}
		return classes, nil
	default:
		return nil, invalidInput(op, "only accepts strings or lists of strings, %s given", typeName(v))
	}
}

func splitClasses(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.Fields(s)...)
	}
	return out
}

// uniqueClasses drops duplicates, keeping the first occurrence.
func uniqueClasses(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func isEmptyClassInput(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(c) == ""
	case []string:
		return len(c) == 0
	case []any:
		return len(c) == 0
	default:
		return false
	}
}
