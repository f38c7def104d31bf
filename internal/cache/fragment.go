// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/olegiv/ocms-breadcrumbs/internal/breadcrumbs"
)

const fragmentKeyPrefix = "fragment:"

// fingerprint is everything that changes the rendered markup.
type fingerprint struct {
	Crumbs      []breadcrumbs.Crumb `json:"c"`
	Classes     []string            `json:"k"`
	Divider     string              `json:"d"`
	HasDivider  bool                `json:"h"`
	ListElement string              `json:"l"`
}

// Key returns a stable cache key for the markup of t.
// Two trails with the same key render identical HTML.
func Key(t *breadcrumbs.Trail) string {
	divider, ok := t.Divider()
	fp := fingerprint{
		Crumbs:      t.Crumbs(),
		Classes:     t.Classes(),
		Divider:     divider,
		HasDivider:  ok,
		ListElement: t.ListElement(),
	}

	// Marshal of plain strings and bools cannot fail.
	data, _ := json.Marshal(fp)
	sum := sha256.Sum256(data)
	return fragmentKeyPrefix + hex.EncodeToString(sum[:])
}

// RenderCached returns the markup of t from c, rendering and storing it on a
// miss. Backend failures are logged and the freshly rendered markup returned.
func RenderCached(ctx context.Context, c Cache, t *breadcrumbs.Trail) (string, error) {
	if c == nil {
		return t.Render(), nil
	}

	key := Key(t)
	data, err := c.Get(ctx, key)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, ErrCacheClosed):
		return "", err
	case !errors.Is(err, ErrCacheMiss):
		slog.WarnContext(ctx, "fragment cache read failed", "key", key, "error", err)
	}

	out := t.Render()
	if err := c.Set(ctx, key, []byte(out), 0); err != nil {
		slog.WarnContext(ctx, "fragment cache write failed", "key", key, "error", err)
	}
	return out, nil
}
