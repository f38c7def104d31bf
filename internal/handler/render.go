// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/ocms-breadcrumbs/internal/breadcrumbs"
	"github.com/olegiv/ocms-breadcrumbs/internal/cache"
	"github.com/olegiv/ocms-breadcrumbs/internal/middleware"
)

// maxRenderBodySize limits the JSON body of a render request.
const maxRenderBodySize = 64 << 10

// RenderHandler renders breadcrumb trails sent as JSON.
type RenderHandler struct {
	cache    cache.Cache
	newTrail middleware.TrailFactory
	baseURL  string
	policy   *bluemonday.Policy
}

// NewRenderHandler creates a RenderHandler. Trails start from factory, so
// configured classes, divider and list element apply unless the request
// overrides them. A nil cache renders every request.
func NewRenderHandler(c cache.Cache, factory middleware.TrailFactory, baseURL string) *RenderHandler {
	if factory == nil {
		factory = breadcrumbs.New
	}
	return &RenderHandler{
		cache:    c,
		newTrail: factory,
		baseURL:  baseURL,
		policy:   bluemonday.UGCPolicy(),
	}
}

// renderRequest is the body of POST /api/v1/breadcrumbs/render. Crumbs and
// classes stay untyped so the trail validates their shape. Divider and
// listElement are raw to tell a missing field from null.
type renderRequest struct {
	Crumbs      any             `json:"crumbs"`
	Classes     any             `json:"classes"`
	Divider     json.RawMessage `json:"divider"`
	ListElement json.RawMessage `json:"listElement"`
	BaseURL     string          `json:"baseUrl"`
}

// Render handles POST /api/v1/breadcrumbs/render.
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRenderBodySize)

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	trail, err := h.buildTrail(req)
	if err != nil {
		if errors.Is(err, breadcrumbs.ErrInvalidInput) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "failed to build trail", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to build trail")
		return
	}

	baseURL := h.baseURL
	if req.BaseURL != "" {
		if !isAbsoluteHTTPURL(req.BaseURL) {
			writeJSONError(w, http.StatusBadRequest, "baseUrl must be an absolute http(s) URL")
			return
		}
		baseURL = req.BaseURL
	}

	markup, err := cache.RenderCached(r.Context(), h.cache, trail)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to render trail", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to render trail")
		return
	}

	var jsonld any
	if !trail.IsEmpty() {
		jsonld = trail.Schema(baseURL)
	}

	writeJSONSuccess(w, map[string]any{
		"html":   markup,
		"jsonld": jsonld,
		"count":  trail.Count(),
	})
}

func (h *RenderHandler) buildTrail(req renderRequest) (*breadcrumbs.Trail, error) {
	trail := h.newTrail()

	if req.Crumbs != nil {
		if _, err := trail.SetBreadcrumbs(req.Crumbs); err != nil {
			return nil, err
		}
	}

	if req.Classes != nil {
		if err := trail.SetClasses(req.Classes); err != nil {
			return nil, err
		}
	}

	if len(req.Divider) > 0 {
		divider, err := decodeRaw(req.Divider)
		if err != nil {
			return nil, err
		}
		if s, ok := divider.(string); ok {
			divider = h.policy.Sanitize(s)
		}
		if err := trail.SetDivider(divider); err != nil {
			return nil, err
		}
	}

	if len(req.ListElement) > 0 {
		element, err := decodeRaw(req.ListElement)
		if err != nil {
			return nil, err
		}
		if err := trail.SetListElement(element); err != nil {
			return nil, err
		}
	}

	return trail, nil
}

// decodeRaw decodes a field the outer decoder already validated.
func decodeRaw(raw json.RawMessage) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding field: %w", err)
	}
	return v, nil
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
