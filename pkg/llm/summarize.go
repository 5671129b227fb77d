package llm

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"trendscope/internal/model"
)

const (
	sectionSummary = "Daily Summary"
	sectionTrends  = "Tech Trends"
	sectionNotes   = "Project Notes"

	defaultCategory = "Uncategorized"

	emptySummaryText   = "No trending projects to report today."
	failureSummaryText = "AI summary unavailable; see the raw project data below."

	readmePreviewChars = 500
	rawFallbackChars   = 200
)

const summaryPromptTemplate = `Analyze the following trending GitHub projects and provide a structured summary.

Project information:
%s
Respond strictly in this format:

## Daily Summary
[2-3 sentences on today's main developments and direction]

## Tech Trends
[3-5 major trends or hot topics, one sentence each, as a numbered list]

## Project Notes
[one line per project capturing its core technical value, in the same order]

Requirements:
1. Follow the format exactly
2. Notes should highlight technical value, not repeat the project description
3. Keep the tone professional and concise`

// Summarize produces a Digest from the kept project list. It never returns
// an error: gateway failures and unparseable responses both degrade into
// defined fallback digests.
func (g *Gateway) Summarize(ctx context.Context, projects []model.Project) model.Digest {
	if len(projects) == 0 {
		return model.Digest{
			Summary:          emptySummaryText,
			Trends:           []string{},
			ProjectSummaries: []string{},
		}
	}

	slog.Info("starting summary", "projects", len(projects))

	text, err := g.Complete(ctx, buildSummaryPrompt(projects))
	if err != nil {
		slog.Error("summary failed, falling back to default digest", "error", err)
		return FallbackDigest(projects)
	}

	digest := parseDigest(text)
	slog.Info("summary complete", "trends", len(digest.Trends), "notes", len(digest.ProjectSummaries))
	return digest
}

// FallbackDigest is the digest used when no AI summary is available, either
// because the gateway failed or because summarization is turned off. Every
// project lands in a single catch-all category.
func FallbackDigest(projects []model.Project) model.Digest {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.FullName
	}
	return model.Digest{
		Summary:          failureSummaryText,
		Trends:           []string{},
		ProjectSummaries: []string{},
		Categories:       map[string][]string{defaultCategory: names},
	}
}

func buildSummaryPrompt(projects []model.Project) string {
	var sb strings.Builder
	for i, p := range projects {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, p.FullName))
		if p.Description != "" {
			sb.WriteString(fmt.Sprintf("   Description: %s\n", p.Description))
		}
		if p.Readme != "" {
			sb.WriteString(fmt.Sprintf("   README: %s...\n", readmePreview(p.Readme)))
		}
		sb.WriteString(fmt.Sprintf("   URL: %s\n\n", p.URL))
	}

	return fmt.Sprintf(summaryPromptTemplate, sb.String())
}

func readmePreview(readme string) string {
	return strings.Join(strings.Fields(truncateRunes(readme, readmePreviewChars)), " ")
}

// truncateRunes cuts s to at most limit runes, never splitting a multi-byte
// character.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

var trendOrdinal = regexp.MustCompile(`^\d+[.、]\s*`)

// parseDigest splits a structured response into its three sections. When no
// section header is recognizable at all, the digest degrades to a truncated
// prefix of the raw response instead of propagating a parse failure.
func parseDigest(text string) model.Digest {
	digest := model.Digest{
		Trends:           []string{},
		ProjectSummaries: []string{},
	}

	for _, section := range strings.Split(text, "##") {
		section = strings.TrimSpace(section)
		switch {
		case strings.HasPrefix(section, sectionSummary):
			digest.Summary = strings.TrimSpace(strings.TrimPrefix(section, sectionSummary))
		case strings.HasPrefix(section, sectionTrends):
			digest.Trends = parseTrendLines(strings.TrimPrefix(section, sectionTrends))
		case strings.HasPrefix(section, sectionNotes):
			digest.ProjectSummaries = parseNoteLines(strings.TrimPrefix(section, sectionNotes))
		}
	}

	if digest.Summary == "" && len(digest.Trends) == 0 && len(digest.ProjectSummaries) == 0 {
		digest.Summary = truncateRunes(text, rawFallbackChars)
	}

	return digest
}

func parseTrendLines(body string) []string {
	trends := []string{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var cleaned string
		switch {
		case trendOrdinal.MatchString(line):
			cleaned = trendOrdinal.ReplaceAllString(line, "")
		case strings.HasPrefix(line, "- "):
			cleaned = strings.TrimPrefix(line, "- ")
		case strings.HasPrefix(line, "* "):
			cleaned = strings.TrimPrefix(line, "* ")
		default:
			continue
		}

		cleaned = strings.TrimSpace(cleaned)
		if cleaned != "" {
			trends = append(trends, cleaned)
		}
	}
	return trends
}

func parseNoteLines(body string) []string {
	notes := []string{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		notes = append(notes, line)
	}
	return notes
}
