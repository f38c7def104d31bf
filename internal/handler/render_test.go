// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-breadcrumbs/internal/breadcrumbs"
	"github.com/olegiv/ocms-breadcrumbs/internal/cache"
	"github.com/olegiv/ocms-breadcrumbs/internal/config"
	"github.com/olegiv/ocms-breadcrumbs/internal/middleware"
)

type renderResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	HTML    string         `json:"html"`
	JSONLD  map[string]any `json:"jsonld"`
	Count   int            `json:"count"`
}

func newTestRenderHandler(t *testing.T) (*RenderHandler, *cache.MemoryCache) {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = c.Close() })
	return NewRenderHandler(c, nil, ""), c
}

func postRender(t *testing.T, h *RenderHandler, body string) (*httptest.ResponseRecorder, renderResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/breadcrumbs/render", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Render(rec, req)

	var resp renderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return rec, resp
}

func TestRender_Success(t *testing.T) {
	h, _ := newTestRenderHandler(t)

	rec, resp := postRender(t, h, `{
		"crumbs": [{"name": "Home", "href": "/"}, {"name": "Products", "href": "products"}],
		"baseUrl": "https://example.com"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)

	want := breadcrumbs.New().AddCrumb("Home", "/").AddCrumb("Products", "products").Render()
	assert.Equal(t, want, resp.HTML)

	items, ok := resp.JSONLD["itemListElement"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "https://example.com/", first["item"])
	last := items[1].(map[string]any)
	assert.Equal(t, "Products", last["name"])
	assert.NotContains(t, last, "item")
}

func TestRender_EmptyTrail(t *testing.T) {
	h, _ := newTestRenderHandler(t)

	rec, resp := postRender(t, h, `{"crumbs": []}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", resp.HTML)
	assert.Nil(t, resp.JSONLD)
	assert.Equal(t, 0, resp.Count)
}

func TestRender_Options(t *testing.T) {
	h, _ := newTestRenderHandler(t)

	rec, resp := postRender(t, h, `{
		"crumbs": [{"name": "Home", "href": "/"}, {"name": "Docs", "href": "docs"}],
		"classes": ["nav", "nav compact"],
		"divider": null,
		"listElement": "ol"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(resp.HTML, `<ol itemscope itemtype="http://schema.org/BreadcrumbList" class="nav compact">`), resp.HTML)
	assert.True(t, strings.HasSuffix(resp.HTML, "</ol>"))
	assert.NotContains(t, resp.HTML, `class="divider"`)
}

func TestRender_DividerSanitized(t *testing.T) {
	h, _ := newTestRenderHandler(t)

	rec, resp := postRender(t, h, `{
		"crumbs": [{"name": "Home", "href": "/"}, {"name": "Docs", "href": "docs"}],
		"divider": "<script>alert(1)</script><b>|</b>"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, resp.HTML, "<script")
	assert.NotContains(t, resp.HTML, "alert(1)")
	assert.Contains(t, resp.HTML, `<span class="divider"><b>|</b></span>`)
}

func TestRender_DividerNone(t *testing.T) {
	h, _ := newTestRenderHandler(t)

	_, resp := postRender(t, h, `{
		"crumbs": [{"name": "Home", "href": "/"}, {"name": "Docs", "href": "docs"}],
		"divider": "none"
	}`)

	assert.NotContains(t, resp.HTML, `class="divider"`)
}

func TestRender_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"crumbs not a list", `{"crumbs": "Home"}`},
		{"crumb without href", `{"crumbs": [{"name": "Home"}]}`},
		{"crumb with empty name", `{"crumbs": [{"name": "", "href": "/"}]}`},
		{"classes not strings", `{"crumbs": [], "classes": ["a", 3]}`},
		{"classes wrong type", `{"crumbs": [], "classes": 7}`},
		{"divider wrong type", `{"crumbs": [], "divider": 5}`},
		{"list element wrong type", `{"crumbs": [], "listElement": true}`},
		{"list element markup", `{"crumbs": [], "listElement": "ul onclick=x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRenderHandler(t)
			rec, resp := postRender(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, "invalid input")
		})
	}
}

func TestRender_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"crumbs": [`},
		{"relative base URL", `{"crumbs": [], "baseUrl": "/site"}`},
		{"non-http base URL", `{"crumbs": [], "baseUrl": "ftp://example.com"}`},
		{"oversized body", `{"crumbs": [], "classes": "` + strings.Repeat("a", maxRenderBodySize) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRenderHandler(t)
			rec, resp := postRender(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestRender_UsesFragmentCache(t *testing.T) {
	h, c := newTestRenderHandler(t)
	body := `{"crumbs": [{"name": "Home", "href": "/"}, {"name": "Docs", "href": "docs"}]}`

	_, first := postRender(t, h, body)
	_, second := postRender(t, h, body)

	assert.Equal(t, first.HTML, second.HTML)
	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestRender_ConfiguredDefaults(t *testing.T) {
	factory, err := middleware.Factory(&config.Config{
		Classes:     "crumbs",
		Divider:     "&gt;",
		ListElement: "nav",
	})
	require.NoError(t, err)
	h := NewRenderHandler(nil, factory, "https://docs.example.com/")

	rec, resp := postRender(t, h, `{"crumbs": [{"name": "Home", "href": "/"}, {"name": "Docs", "href": "docs"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(resp.HTML, `<nav itemscope itemtype="http://schema.org/BreadcrumbList" class="crumbs">`), resp.HTML)
	assert.Contains(t, resp.HTML, `<span class="divider">&gt;</span>`)

	items := resp.JSONLD["itemListElement"].([]any)
	assert.Equal(t, "https://docs.example.com/", items[0].(map[string]any)["item"])
}

func TestRender_NumericHrefIsFullURL(t *testing.T) {
	h, _ := newTestRenderHandler(t)

	rec, resp := postRender(t, h, `{"crumbs": [
		{"name": "Docs", "href": "docs"},
		{"name": "Guide", "href": "guide", "hrefIsFullUrl": 1},
		{"name": "Step", "href": "step"}
	]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp.HTML, `href="/guide"`)
	assert.NotContains(t, resp.HTML, `/docs/guide`)
}
