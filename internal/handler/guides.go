// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bufio"
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/ocms-breadcrumbs/internal/breadcrumbs"
	"github.com/olegiv/ocms-breadcrumbs/internal/middleware"
	"github.com/olegiv/ocms-breadcrumbs/internal/uikit"
	"github.com/olegiv/ocms-breadcrumbs/internal/util"
)

// GuidesPath is the URL path the guides are mounted at.
const GuidesPath = "/guides"

// Guide is one rendered markdown guide.
type Guide struct {
	Slug    string
	Title   string
	Summary string
	Content template.HTML
}

// GuidesOptions configures NewGuidesHandler.
type GuidesOptions struct {
	HomeLabel string
	BaseURL   string // absolute site URL for JSON-LD, may be empty
	Version   string
}

// GuidesHandler serves the markdown guides with a breadcrumb trail.
type GuidesHandler struct {
	guides []Guide
	bySlug map[string]int
	tmpl   *template.Template
	opts   GuidesOptions
}

// guidePage is the template data for both guide templates.
type guidePage struct {
	Title   string
	Trail   *breadcrumbs.Trail
	BaseURL string
	Version string
	Guides  []Guide
	Content template.HTML
}

// NewGuidesHandler renders every *.md file in guidesFS and parses the
// *.html templates in templatesFS.
func NewGuidesHandler(guidesFS, templatesFS fs.FS, opts GuidesOptions) (*GuidesHandler, error) {
	if opts.HomeLabel == "" {
		opts.HomeLabel = "Home"
	}

	tmpl, err := template.New("guides").Funcs(uikit.TemplateFuncs()).ParseFS(templatesFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing guide templates: %w", err)
	}

	guides, err := loadGuides(guidesFS)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]int, len(guides))
	for i, g := range guides {
		bySlug[g.Slug] = i
	}

	return &GuidesHandler{
		guides: guides,
		bySlug: bySlug,
		tmpl:   tmpl,
		opts:   opts,
	}, nil
}

// Guides returns the loaded guides sorted by title.
func (h *GuidesHandler) Guides() []Guide {
	return slices.Clone(h.guides)
}

// Index handles GET /guides.
func (h *GuidesHandler) Index(w http.ResponseWriter, r *http.Request) {
	trail := util.TrailFromPath(middleware.GetBreadcrumbs(r), h.opts.HomeLabel, GuidesPath)

	h.render(w, r, "guides_index.html", guidePage{
		Title:   "Guides",
		Trail:   trail,
		BaseURL: h.opts.BaseURL,
		Version: h.opts.Version,
		Guides:  h.guides,
	})
}

// Guide handles GET /guides/{slug}.
func (h *GuidesHandler) Guide(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		http.NotFound(w, r)
		return
	}

	idx, ok := h.bySlug[slug]
	if !ok {
		http.NotFound(w, r)
		return
	}
	g := h.guides[idx]

	trail := util.TrailFromPath(middleware.GetBreadcrumbs(r), h.opts.HomeLabel, GuidesPath)
	trail.AddCrumb(g.Title, g.Slug)

	h.render(w, r, "guide.html", guidePage{
		Title:   g.Title,
		Trail:   trail,
		BaseURL: h.opts.BaseURL,
		Version: h.opts.Version,
		Content: g.Content,
	})
}

func (h *GuidesHandler) render(w http.ResponseWriter, r *http.Request, name string, data guidePage) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "failed to render guide page", "template", name, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// loadGuides converts the markdown files of fsys. Slugs come from the file
// names and must be unique.
func loadGuides(fsys fs.FS) ([]Guide, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("listing guides: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	seen := make(map[string]string, len(names))
	guides := make([]Guide, 0, len(names))

	for _, name := range names {
		slug := util.Slugify(strings.TrimSuffix(path.Base(name), ".md"))
		if slug == "" {
			slog.Warn("skipping guide without usable name", "file", name)
			continue
		}
		if other, dup := seen[slug]; dup {
			return nil, fmt.Errorf("guides %s and %s share slug %q", other, name, slug)
		}
		seen[slug] = name

		source, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading guide %s: %w", name, err)
		}

		var buf bytes.Buffer
		if err := md.Convert(source, &buf); err != nil {
			return nil, fmt.Errorf("rendering guide %s: %w", name, err)
		}

		title, summary := guideHeader(source)
		if title == "" {
			title = util.Humanize(slug)
		}

		guides = append(guides, Guide{
			Slug:    slug,
			Title:   title,
			Summary: summary,
			Content: template.HTML(buf.String()), //nolint:gosec // embedded markdown, raw HTML disabled in goldmark
		})
	}

	slices.SortFunc(guides, func(a, b Guide) int {
		return strings.Compare(a.Title, b.Title)
	})
	return guides, nil
}

// guideHeader returns the first level-one heading and the first line of
// prose after it.
func guideHeader(source []byte) (title, summary string) {
	scanner := bufio.NewScanner(bytes.NewReader(source))
	inCode := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "```"):
			inCode = !inCode
		case inCode || line == "":
		case title == "" && strings.HasPrefix(line, "# "):
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case strings.HasPrefix(line, "#"), strings.HasPrefix(line, "|"):
		case summary == "":
			summary = line
		}
		if title != "" && summary != "" {
			break
		}
	}
	return title, summary
}
