// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the guide pages, their templates and stylesheet.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed guides/*.md
var Guides embed.FS

//go:embed static
var Static embed.FS
