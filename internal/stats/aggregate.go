// Package stats rebuilds the aggregated statistics view from the full report
// history on every run.
package stats

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"trendscope/internal/model"
)

const (
	recentReportCount = 7
	topLanguages      = 10
)

// Aggregate is a pure function of the report history. Totals cover every
// report; date-keyed groupings exclude reports whose date string is not
// day-granular YYYY-MM-DD (logged, not fatal).
func Aggregate(reports []model.Report) model.AggregatedView {
	view := model.AggregatedView{
		Years:         []string{},
		ReportsByYear: map[string]map[string][]model.ArchiveEntry{},
		RecentReports: []model.ReportRef{},
		LanguageStats: []model.LanguageCount{},
	}
	if len(reports) == 0 {
		return view
	}

	sorted := make([]model.Report, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	view.TotalReports = len(reports)
	view.ActiveDays = len(reports)
	for _, r := range reports {
		view.TotalProjects += len(r.Projects)
		view.TotalTrends += len(r.Trends)
	}

	for _, r := range sorted[:min(recentReportCount, len(sorted))] {
		view.RecentReports = append(view.RecentReports, model.ReportRef{
			Date:          r.Date,
			URL:           reportURL(r.Date),
			ProjectsCount: len(r.Projects),
		})
	}

	yearSet := map[string]bool{}
	for _, r := range sorted {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			slog.Warn("report excluded from archive groupings", "date", r.Date, "error", err)
			continue
		}

		year := fmt.Sprintf("%04d", date.Year())
		month := fmt.Sprintf("%02d", int(date.Month()))
		yearSet[year] = true

		if view.ReportsByYear[year] == nil {
			view.ReportsByYear[year] = map[string][]model.ArchiveEntry{}
		}
		view.ReportsByYear[year][month] = append(view.ReportsByYear[year][month], model.ArchiveEntry{
			Date:          r.Date,
			URL:           reportURL(r.Date),
			Summary:       r.Summary,
			ProjectsCount: len(r.Projects),
			TrendsCount:   len(r.Trends),
		})
	}

	for year := range yearSet {
		view.Years = append(view.Years, year)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(view.Years)))

	view.LanguageStats = languageStats(reports)
	view.TotalStarsToday = totalStarsToday(reports)

	return view
}

// languageStats counts one occurrence per project per language, truncated to
// the top entries. Ties keep first-encountered order.
func languageStats(reports []model.Report) []model.LanguageCount {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0

	for _, r := range reports {
		for _, p := range r.Projects {
			lang := p.Language
			if lang == "" {
				lang = "Unknown"
			}
			if _, ok := counts[lang]; !ok {
				firstSeen[lang] = order
				order++
			}
			counts[lang]++
		}
	}

	out := make([]model.LanguageCount, 0, len(counts))
	for lang, count := range counts {
		out = append(out, model.LanguageCount{Language: lang, Count: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Language] < firstSeen[out[j].Language]
	})

	if len(out) > topLanguages {
		out = out[:topLanguages]
	}
	return out
}

// totalStarsToday sums only values known at ingestion; unknown values are
// skipped, never treated as zero contributions of bad data.
func totalStarsToday(reports []model.Report) int {
	total := 0
	for _, r := range reports {
		for _, p := range r.Projects {
			if p.StarsToday != nil && *p.StarsToday >= 0 {
				total += *p.StarsToday
			}
		}
	}
	return total
}

func reportURL(date string) string {
	return "/reports/" + date + ".html"
}
