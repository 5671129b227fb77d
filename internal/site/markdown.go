// Package site renders the published artifacts: the daily markdown report
// and the static website rebuilt from the aggregated history.
package site

import (
	"fmt"
	"sort"
	"strings"

	"trendscope/internal/model"
)

const reportLanguageTop = 7

// RenderMarkdown turns a sealed report into the daily markdown artifact.
func RenderMarkdown(report model.Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# GitHub Trending Report - %s\n\n", report.Date))
	sb.WriteString("> Automated daily analysis of GitHub trending repositories\n>\n")
	sb.WriteString(fmt.Sprintf("> Generated: %s\n\n", report.GenerationTime))

	sb.WriteString("## Daily Summary\n\n")
	summary := report.Summary
	if summary == "" {
		summary = "Today's trending repositories have been collected."
	}
	sb.WriteString(summary + "\n\n")

	if len(report.Trends) > 0 {
		sb.WriteString("## Tech Trends\n\n")
		for i, trend := range report.Trends {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, trend))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("## Trending Projects (%d)\n\n", len(report.Projects)))
	for i, p := range report.Projects {
		sb.WriteString(fmt.Sprintf("### %d. [%s](%s)\n\n", i+1, p.FullName, p.URL))

		if note := cleanNote(report.NoteFor(i), i+1, p.FullName); note != "" {
			sb.WriteString(fmt.Sprintf("**AI Insight**: %s\n\n", note))
		} else {
			sb.WriteString(fmt.Sprintf("**Description**: %s\n\n", p.Description))
		}

		sb.WriteString("**GitHub data**:\n")
		sb.WriteString(fmt.Sprintf("- Stars: %s", starString(p.Stars)))
		if p.StarsToday != nil {
			sb.WriteString(fmt.Sprintf(" (+%d today)", *p.StarsToday))
		}
		sb.WriteString(fmt.Sprintf("\n- Language: %s\n", languageOrUnknown(p.Language)))
		sb.WriteString(fmt.Sprintf("- Author: %s\n\n", p.Author))
		sb.WriteString("---\n\n")
	}

	sb.WriteString("## Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- Projects analyzed: %d\n", len(report.Projects)))

	if dist := languageDistribution(report.Projects); dist != "" {
		sb.WriteString(fmt.Sprintf("- Language distribution: %s\n", dist))
	}
	if total := starsGained(report.Projects); total > 0 {
		sb.WriteString(fmt.Sprintf("- Stars gained today: %d\n", total))
	}

	sb.WriteString("\n## Report Info\n\n")
	sb.WriteString("- Data source: GitHub Trending (daily)\n")
	sb.WriteString(fmt.Sprintf("- Generated at: %s\n", report.GenerationTime))
	sb.WriteString("- Format: Markdown v1.0\n")

	return sb.String()
}

// cleanNote strips list and bold-name prefixes the model tends to repeat in
// per-project notes.
func cleanNote(note string, ordinal int, fullName string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return ""
	}

	short := fullName
	if idx := strings.LastIndex(fullName, "/"); idx >= 0 {
		short = fullName[idx+1:]
	}
	prefixes := []string{
		fmt.Sprintf("%d.", ordinal),
		fmt.Sprintf("%d、", ordinal),
		"- ",
		"* ",
		fmt.Sprintf("**%s**: ", fullName),
		fmt.Sprintf("**%s**: ", short),
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(note, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(note, prefix))
		}
	}
	return note
}

func starString(stars *int) string {
	if stars == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *stars)
}

func languageOrUnknown(lang string) string {
	if lang == "" {
		return "Unknown"
	}
	return lang
}

func languageDistribution(projects []model.Project) string {
	counts := map[string]int{}
	var order []string
	for _, p := range projects {
		lang := languageOrUnknown(p.Language)
		if _, ok := counts[lang]; !ok {
			order = append(order, lang)
		}
		counts[lang]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > reportLanguageTop {
		order = order[:reportLanguageTop]
	}

	parts := make([]string, len(order))
	for i, lang := range order {
		parts[i] = fmt.Sprintf("%s(%d)", lang, counts[lang])
	}
	return strings.Join(parts, ", ")
}

func starsGained(projects []model.Project) int {
	total := 0
	for _, p := range projects {
		if p.StarsToday != nil && *p.StarsToday >= 0 {
			total += *p.StarsToday
		}
	}
	return total
}
