package site

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trendscope/internal/model"
)

const latestProjectCount = 10

// Generator rebuilds the static site from the aggregated view and the full
// report history. Rendering failure is fatal to a run; the caller decides.
type Generator struct {
	outputDir string
	index     *template.Template
	archive   *template.Template
	report    *template.Template
	about     *template.Template
}

func NewGenerator(outputDir string) *Generator {
	return &Generator{
		outputDir: outputDir,
		index:     template.Must(template.New("index").Parse(indexTemplate)),
		archive:   template.Must(template.New("archive").Parse(archiveTemplate)),
		report:    template.Must(template.New("report").Parse(reportTemplate)),
		about:     template.Must(template.New("about").Parse(aboutTemplate)),
	}
}

type projectView struct {
	FullName    string
	URL         string
	Description string
	Note        string
	Language    string
	Author      string
	Stars       string
	StarsToday  string
}

type indexView struct {
	Title           string
	LastUpdate      string
	Summary         string
	Trends          []string
	Projects        []projectView
	RecentReports   []model.ReportRef
	LanguageStats   []model.LanguageCount
	TotalStarsToday int
}

type archiveView struct {
	Title         string
	LastUpdate    string
	Years         []string
	ReportsByYear map[string]map[string][]model.ArchiveEntry
}

type reportView struct {
	Title          string
	LastUpdate     string
	Date           string
	GenerationTime string
	Summary        string
	Trends         []string
	Projects       []projectView
}

// Generate writes the whole site: index, archive, per-report pages, about,
// the summary API document and SEO files. An empty history produces a valid
// empty-state site.
func (g *Generator) Generate(view model.AggregatedView, reports []model.Report) error {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating site directory: %w", err)
	}
	g.cleanOutput()

	now := time.Now().Format("2006-01-02 15:04:05")

	var latest *model.Report
	if len(reports) > 0 {
		latest = &reports[0]
	}

	if err := g.generateIndex(view, latest, now); err != nil {
		return err
	}
	if err := g.generateArchive(view, now); err != nil {
		return err
	}
	if err := g.generateReportPages(reports, now); err != nil {
		return err
	}
	if err := g.generateAbout(now); err != nil {
		return err
	}
	if err := g.generateSummaryAPI(view); err != nil {
		return err
	}
	if err := g.generateSEOFiles(view); err != nil {
		return err
	}

	slog.Info("static site generated", "output", g.outputDir, "reports", len(reports))
	return nil
}

// cleanOutput removes previously generated files but leaves any other static
// assets in place.
func (g *Generator) cleanOutput() {
	entries, err := os.ReadDir(g.outputDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		path := filepath.Join(g.outputDir, e.Name())
		switch {
		case e.IsDir() && (e.Name() == "reports" || e.Name() == "api"):
			os.RemoveAll(path)
		case !e.IsDir():
			switch filepath.Ext(e.Name()) {
			case ".html", ".json", ".xml", ".txt":
				os.Remove(path)
			}
		}
	}
}

func (g *Generator) generateIndex(view model.AggregatedView, latest *model.Report, now string) error {
	data := indexView{
		Title:           "Daily GitHub Trending Digest",
		LastUpdate:      now,
		RecentReports:   view.RecentReports,
		LanguageStats:   view.LanguageStats,
		TotalStarsToday: view.TotalStarsToday,
	}
	if latest != nil {
		data.Summary = latest.Summary
		data.Trends = latest.Trends
		data.Projects = projectViews(*latest, latestProjectCount)
	}
	return g.renderFile(g.index, filepath.Join(g.outputDir, "index.html"), data)
}

func (g *Generator) generateArchive(view model.AggregatedView, now string) error {
	data := archiveView{
		Title:         "Report Archive",
		LastUpdate:    now,
		Years:         view.Years,
		ReportsByYear: view.ReportsByYear,
	}
	return g.renderFile(g.archive, filepath.Join(g.outputDir, "archive.html"), data)
}

func (g *Generator) generateReportPages(reports []model.Report, now string) error {
	if len(reports) == 0 {
		return nil
	}

	dir := filepath.Join(g.outputDir, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
	}

	for _, r := range reports {
		if r.Date == "" {
			continue
		}
		data := reportView{
			Title:          "GitHub Trending Report - " + r.Date,
			LastUpdate:     now,
			Date:           r.Date,
			GenerationTime: r.GenerationTime,
			Summary:        r.Summary,
			Trends:         r.Trends,
			Projects:       projectViews(r, len(r.Projects)),
		}
		if err := g.renderFile(g.report, filepath.Join(dir, r.Date+".html"), data); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateAbout(now string) error {
	data := struct {
		Title      string
		LastUpdate string
	}{"About", now}
	return g.renderFile(g.about, filepath.Join(g.outputDir, "about.html"), data)
}

// generateSummaryAPI writes api/summary.json, the machine-readable view of
// the site.
func (g *Generator) generateSummaryAPI(view model.AggregatedView) error {
	dir := filepath.Join(g.outputDir, "api")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating api directory: %w", err)
	}

	payload := map[string]any{
		"stats": map[string]int{
			"total_reports":  view.TotalReports,
			"total_projects": view.TotalProjects,
			"total_trends":   view.TotalTrends,
			"active_days":    view.ActiveDays,
		},
		"recent_reports": view.RecentReports,
		"language_stats": view.LanguageStats,
		"last_updated":   time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary api: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "summary.json"), data, 0o644); err != nil {
		return fmt.Errorf("writing summary api: %w", err)
	}
	return nil
}

func (g *Generator) generateSEOFiles(view model.AggregatedView) error {
	robots := "User-agent: *\nAllow: /\n\nSitemap: /sitemap.xml\n"
	if err := os.WriteFile(filepath.Join(g.outputDir, "robots.txt"), []byte(robots), 0o644); err != nil {
		return fmt.Errorf("writing robots.txt: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	writeSitemapURL(&sb, "/", "daily", "1.0")
	writeSitemapURL(&sb, "/archive.html", "daily", "0.8")
	writeSitemapURL(&sb, "/about.html", "monthly", "0.5")
	for _, r := range view.RecentReports {
		writeSitemapURL(&sb, r.URL, "weekly", "0.7")
	}
	sb.WriteString("</urlset>\n")

	if err := os.WriteFile(filepath.Join(g.outputDir, "sitemap.xml"), []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing sitemap.xml: %w", err)
	}
	return nil
}

func writeSitemapURL(sb *strings.Builder, loc, freq, priority string) {
	fmt.Fprintf(sb, "  <url>\n    <loc>%s</loc>\n    <changefreq>%s</changefreq>\n    <priority>%s</priority>\n  </url>\n", loc, freq, priority)
}

func (g *Generator) renderFile(tmpl *template.Template, path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}

func projectViews(r model.Report, limit int) []projectView {
	projects := r.Projects
	if len(projects) > limit {
		projects = projects[:limit]
	}

	out := make([]projectView, len(projects))
	for i, p := range projects {
		out[i] = projectView{
			FullName:    p.FullName,
			URL:         p.URL,
			Description: p.Description,
			Note:        cleanNote(r.NoteFor(i), i+1, p.FullName),
			Language:    languageOrUnknown(p.Language),
			Author:      p.Author,
		}
		if p.Stars != nil {
			out[i].Stars = fmt.Sprintf("%d", *p.Stars)
		}
		if p.StarsToday != nil {
			out[i].StarsToday = fmt.Sprintf("%d", *p.StarsToday)
		}
	}
	return out
}
