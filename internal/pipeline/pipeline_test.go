package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"trendscope/internal/config"
	"trendscope/internal/model"
)

type fakeCrawler struct {
	projects []model.Project
	err      error
}

func (f *fakeCrawler) Crawl(ctx context.Context) ([]model.Project, error) {
	return f.projects, f.err
}

func (f *fakeCrawler) Name() string { return "fake" }

type fakeDigester struct {
	dedupCalled   bool
	summarized    bool
	keep          []model.Project
	digest        model.Digest
	seenBySummary []model.Project
}

func (f *fakeDigester) Deduplicate(ctx context.Context, projects []model.Project) []model.Project {
	f.dedupCalled = true
	if f.keep != nil {
		return f.keep
	}
	return projects
}

func (f *fakeDigester) Summarize(ctx context.Context, projects []model.Project) model.Digest {
	f.summarized = true
	f.seenBySummary = projects
	return f.digest
}

type fakeSnapshotter struct {
	saved    *model.Report
	markdown string
	loadErr  error
	pruned   int
}

func (f *fakeSnapshotter) Save(report model.Report, markdown string, now time.Time) (string, string, error) {
	f.saved = &report
	f.markdown = markdown
	return "report.md", "report.json", nil
}

func (f *fakeSnapshotter) LoadAll() ([]model.Report, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.saved == nil {
		return nil, nil
	}
	return []model.Report{*f.saved}, nil
}

func (f *fakeSnapshotter) Prune(retentionDays int) int {
	f.pruned = retentionDays
	return 0
}

type fakeSite struct {
	generated bool
	history   []model.Report
	err       error
}

func (f *fakeSite) Generate(view model.AggregatedView, reports []model.Report) error {
	f.generated = true
	f.history = reports
	return f.err
}

type fakeArchiver struct {
	saved *model.Report
	err   error
}

func (f *fakeArchiver) SaveReport(report *model.Report) error {
	f.saved = report
	return f.err
}

type fakeUploader struct {
	path    string
	content string
	err     error
}

func (f *fakeUploader) UploadReport(ctx context.Context, repoPath, content, message string) (string, error) {
	f.path = repoPath
	f.content = content
	if f.err != nil {
		return "", f.err
	}
	return "https://example.com/" + repoPath, nil
}

func sampleProjects() []model.Project {
	return []model.Project{
		{FullName: "a/one", Title: "one", URL: "https://github.com/a/one", Author: "a"},
		{FullName: "b/two", Title: "two", URL: "https://github.com/b/two", Author: "b"},
	}
}

func aiConfig() config.Config {
	return config.Config{AIDedupEnabled: true, AISummaryEnabled: true, DataRetentionDays: 30}
}

func TestRun_FullCycle(t *testing.T) {
	digester := &fakeDigester{
		keep: sampleProjects()[:1],
		digest: model.Digest{
			Summary:          "Busy day.",
			Trends:           []string{"Agents"},
			ProjectSummaries: []string{"1. Core value."},
		},
	}
	store := &fakeSnapshotter{}
	sitegen := &fakeSite{}
	archive := &fakeArchiver{}
	upload := &fakeUploader{}

	p := &Pipeline{
		Config:   aiConfig(),
		Crawler:  &fakeCrawler{projects: sampleProjects()},
		Digester: digester,
		Store:    store,
		Site:     sitegen,
		Archiver: archive,
		Uploader: upload,
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !digester.dedupCalled || !digester.summarized {
		t.Error("AI stages were not invoked")
	}
	if len(digester.seenBySummary) != 1 {
		t.Errorf("summary saw %d projects, want the deduplicated 1", len(digester.seenBySummary))
	}

	if store.saved == nil {
		t.Fatal("report was not persisted")
	}
	if store.saved.Summary != "Busy day." || len(store.saved.Projects) != 1 {
		t.Errorf("persisted report = %+v", store.saved)
	}
	if !strings.Contains(store.markdown, "a/one") {
		t.Error("rendered markdown missing project")
	}

	if !sitegen.generated || len(sitegen.history) != 1 {
		t.Error("site was not generated from history")
	}
	if archive.saved == nil {
		t.Error("report was not archived")
	}
	if !strings.HasPrefix(upload.path, "reports/") || !strings.HasSuffix(upload.path, ".md") {
		t.Errorf("backup path = %q", upload.path)
	}
	if store.pruned != 30 {
		t.Errorf("prune retention = %d, want 30", store.pruned)
	}
}

func TestRun_CrawlFailureAborts(t *testing.T) {
	store := &fakeSnapshotter{}
	p := &Pipeline{
		Config:  aiConfig(),
		Crawler: &fakeCrawler{err: errors.New("page unreachable")},
		Store:   store,
		Site:    &fakeSite{},
	}

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected error from failed crawl")
	}
	if store.saved != nil {
		t.Error("report persisted despite failed crawl")
	}
}

func TestRun_DedupDisabled(t *testing.T) {
	digester := &fakeDigester{digest: model.Digest{Summary: "s"}}
	cfg := aiConfig()
	cfg.AIDedupEnabled = false

	p := &Pipeline{
		Config:   cfg,
		Crawler:  &fakeCrawler{projects: sampleProjects()},
		Digester: digester,
		Store:    &fakeSnapshotter{},
		Site:     &fakeSite{},
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if digester.dedupCalled {
		t.Error("dedup ran while disabled")
	}
	if !digester.summarized {
		t.Error("summary skipped while enabled")
	}
}

func TestRun_NoAIUsesFallbackDigest(t *testing.T) {
	store := &fakeSnapshotter{}
	p := &Pipeline{
		Config:  aiConfig(),
		Crawler: &fakeCrawler{projects: sampleProjects()},
		Store:   store,
		Site:    &fakeSite{},
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if store.saved == nil {
		t.Fatal("report was not persisted")
	}
	if len(store.saved.Projects) != 2 {
		t.Errorf("projects = %d, want all 2 kept", len(store.saved.Projects))
	}
	if !strings.Contains(store.saved.Summary, "AI summary unavailable") {
		t.Errorf("summary = %q, want fallback text", store.saved.Summary)
	}
}

func TestRun_ArchiveAndUploadFailuresAreNonFatal(t *testing.T) {
	p := &Pipeline{
		Config:   aiConfig(),
		Crawler:  &fakeCrawler{projects: sampleProjects()},
		Store:    &fakeSnapshotter{},
		Site:     &fakeSite{},
		Archiver: &fakeArchiver{err: errors.New("db down")},
		Uploader: &fakeUploader{err: errors.New("api down")},
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run should tolerate mirror failures: %v", err)
	}
}

func TestRun_SiteFailureIsFatal(t *testing.T) {
	p := &Pipeline{
		Config:  aiConfig(),
		Crawler: &fakeCrawler{projects: sampleProjects()},
		Store:   &fakeSnapshotter{},
		Site:    &fakeSite{err: errors.New("disk full")},
	}

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected error from failed site generation")
	}
}
