package stats

import (
	"fmt"
	"testing"

	"trendscope/internal/model"
)

func intp(n int) *int { return &n }

func TestAggregate_EmptyHistory(t *testing.T) {
	view := Aggregate(nil)

	if view.TotalReports != 0 || view.TotalProjects != 0 || view.TotalTrends != 0 {
		t.Errorf("expected zero totals, got %+v", view)
	}
	if len(view.Years) != 0 || len(view.RecentReports) != 0 || len(view.LanguageStats) != 0 {
		t.Errorf("expected empty groupings, got %+v", view)
	}
	if view.ReportsByYear == nil {
		t.Error("groupings should be empty maps, not nil")
	}
}

func TestAggregate_TotalsAndRecency(t *testing.T) {
	reports := []model.Report{
		{Date: "2026-08-27", Trends: []string{"t1"}, Projects: []model.Project{{Language: "Go"}}},
		{Date: "2026-08-29", Trends: []string{"t1", "t2"}, Projects: []model.Project{{Language: "Go"}, {Language: "Rust"}}},
		{Date: "2026-08-28", Projects: []model.Project{{Language: "Python"}}},
	}

	view := Aggregate(reports)

	if view.TotalReports != 3 || view.TotalProjects != 4 || view.TotalTrends != 3 {
		t.Errorf("totals = %d/%d/%d", view.TotalReports, view.TotalProjects, view.TotalTrends)
	}

	if len(view.RecentReports) != 3 {
		t.Fatalf("recent = %v", view.RecentReports)
	}
	if view.RecentReports[0].Date != "2026-08-29" || view.RecentReports[2].Date != "2026-08-27" {
		t.Errorf("recent reports not date-descending: %v", view.RecentReports)
	}
	if view.RecentReports[0].URL != "/reports/2026-08-29.html" {
		t.Errorf("url = %q", view.RecentReports[0].URL)
	}
}

func TestAggregate_RecentReportsCappedAtSeven(t *testing.T) {
	var reports []model.Report
	for day := 1; day <= 9; day++ {
		reports = append(reports, model.Report{Date: fmt.Sprintf("2026-08-%02d", day)})
	}

	view := Aggregate(reports)

	if len(view.RecentReports) != 7 {
		t.Fatalf("recent = %d, want 7", len(view.RecentReports))
	}
	if view.RecentReports[0].Date != "2026-08-09" || view.RecentReports[6].Date != "2026-08-03" {
		t.Errorf("recent window = %s..%s", view.RecentReports[0].Date, view.RecentReports[6].Date)
	}
	if view.TotalReports != 9 {
		t.Errorf("TotalReports = %d, want all 9", view.TotalReports)
	}
}

func TestAggregate_MalformedDatePolicy(t *testing.T) {
	// A malformed date drops the report from date groupings only; totals
	// still count it.
	reports := []model.Report{
		{Date: "2026-08-29", Projects: []model.Project{{Language: "Go"}}},
		{Date: "not-a-date", Projects: []model.Project{{Language: "Zig"}}},
	}

	view := Aggregate(reports)

	if view.TotalReports != 2 || view.TotalProjects != 2 {
		t.Errorf("totals should include the malformed report: %d/%d", view.TotalReports, view.TotalProjects)
	}

	if len(view.Years) != 1 || view.Years[0] != "2026" {
		t.Errorf("years = %v", view.Years)
	}
	entries := view.ReportsByYear["2026"]["08"]
	if len(entries) != 1 {
		t.Errorf("expected 1 grouped report, got %d", len(entries))
	}
}

func TestLanguageStats_StableTiesAndTopK(t *testing.T) {
	projects := []model.Project{
		{Language: "Go"}, {Language: "Rust"}, {Language: "Go"},
		{Language: "Python"}, {Language: ""},
	}
	view := Aggregate([]model.Report{{Date: "2026-08-29", Projects: projects}})

	if view.LanguageStats[0].Language != "Go" || view.LanguageStats[0].Count != 2 {
		t.Errorf("top language = %+v", view.LanguageStats[0])
	}
	// Rust, Python and Unknown all count 1; first-encountered order wins.
	rest := []string{"Rust", "Python", "Unknown"}
	for i, want := range rest {
		got := view.LanguageStats[i+1]
		if got.Language != want || got.Count != 1 {
			t.Errorf("rank %d = %+v, want %s(1)", i+1, got, want)
		}
	}
}

func TestTotalStarsToday_SkipsUnknown(t *testing.T) {
	reports := []model.Report{{
		Date: "2026-08-29",
		Projects: []model.Project{
			{StarsToday: intp(100)},
			{StarsToday: nil}, // unknown, skipped
			{StarsToday: intp(28)},
		},
	}}

	view := Aggregate(reports)
	if view.TotalStarsToday != 128 {
		t.Errorf("stars today = %d, want 128", view.TotalStarsToday)
	}
}
