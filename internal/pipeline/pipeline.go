package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trendscope/internal/config"
	"trendscope/internal/model"
	"trendscope/internal/site"
	"trendscope/internal/stats"
	"trendscope/pkg/llm"
)

// Crawler produces the day's raw project list.
type Crawler interface {
	Crawl(ctx context.Context) ([]model.Project, error)
	Name() string
}

// Enricher attaches README content to projects.
type Enricher interface {
	EnrichReadmes(ctx context.Context, projects []model.Project) []model.Project
}

// Digester is the AI stage: duplicate removal and report summarization.
type Digester interface {
	Deduplicate(ctx context.Context, projects []model.Project) []model.Project
	Summarize(ctx context.Context, projects []model.Project) model.Digest
}

// Snapshotter persists reports and serves back the full history.
type Snapshotter interface {
	Save(report model.Report, markdown string, now time.Time) (string, string, error)
	LoadAll() ([]model.Report, error)
	Prune(retentionDays int) int
}

// SiteGenerator writes the static site for the given history.
type SiteGenerator interface {
	Generate(view model.AggregatedView, reports []model.Report) error
}

// Archiver mirrors reports into the database archive.
type Archiver interface {
	SaveReport(report *model.Report) error
}

// BackupUploader pushes the markdown report to a backup repository.
type BackupUploader interface {
	UploadReport(ctx context.Context, repoPath, content, message string) (string, error)
}

// Pipeline runs one full crawl-to-publish cycle. Enricher, Digester,
// Archiver and Uploader are optional; a nil stage is skipped.
type Pipeline struct {
	Config   config.Config
	Crawler  Crawler
	Enricher Enricher
	Digester Digester
	Store    Snapshotter
	Site     SiteGenerator
	Archiver Archiver
	Uploader BackupUploader
}

// Run executes the pipeline once. Crawl, persist and site generation
// failures abort the run; archive and backup failures are logged and the
// run still counts as successful.
func (p *Pipeline) Run(ctx context.Context) error {
	started := time.Now()
	slog.Info("pipeline run starting", "source", p.Crawler.Name())

	projects, err := p.Crawler.Crawl(ctx)
	if err != nil {
		return fmt.Errorf("crawling trending page: %w", err)
	}
	slog.Info("crawl complete", "projects", len(projects))

	if p.Enricher != nil {
		projects = p.Enricher.EnrichReadmes(ctx, projects)
	}

	if p.Digester != nil && p.Config.AIDedupEnabled {
		projects = p.Digester.Deduplicate(ctx, projects)
	}

	var digest model.Digest
	if p.Digester != nil && p.Config.AISummaryEnabled {
		digest = p.Digester.Summarize(ctx, projects)
	} else {
		digest = llm.FallbackDigest(projects)
	}

	now := time.Now()
	report := model.Report{
		Date:             now.Format("2006-01-02"),
		GenerationTime:   now.Format("2006-01-02 15:04:05"),
		Summary:          digest.Summary,
		Trends:           digest.Trends,
		ProjectSummaries: digest.ProjectSummaries,
		Projects:         projects,
	}

	markdown := site.RenderMarkdown(report)

	if _, _, err := p.Store.Save(report, markdown, now); err != nil {
		return fmt.Errorf("persisting report: %w", err)
	}

	history, err := p.Store.LoadAll()
	if err != nil {
		return fmt.Errorf("loading report history: %w", err)
	}

	if err := p.Site.Generate(stats.Aggregate(history), history); err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	if p.Archiver != nil {
		if err := p.Archiver.SaveReport(&report); err != nil {
			slog.Error("archiving report to database failed", "error", err)
		}
	}

	if p.Uploader != nil {
		repoPath := fmt.Sprintf("reports/%s/github-trending-%s.md", now.Format("2006/01/02"), now.Format("1504"))
		message := "Add trending report for " + report.Date
		url, err := p.Uploader.UploadReport(ctx, repoPath, markdown, message)
		if err != nil {
			slog.Error("backup upload failed", "path", repoPath, "error", err)
		} else {
			slog.Info("report backed up", "url", url)
		}
	}

	if removed := p.Store.Prune(p.Config.DataRetentionDays); removed > 0 {
		slog.Info("old reports pruned", "removed", removed)
	}

	slog.Info("pipeline run finished", "projects", len(projects), "duration", time.Since(started).Round(time.Millisecond))
	return nil
}
