package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"trendscope/internal/model"
)

const dedupPromptHeader = `Analyze the following trending project titles and identify entries that are duplicates or near-duplicates of each other.
For duplicates, keep the most valuable version (prefer: official sources > more detailed descriptions > better-known sources).

Project list:
`

const dedupPromptFooter = `
Return only the indices of the entries to keep, comma separated, for example: 0,1,3,5,7

Indices:`

// Deduplicate collapses near-duplicate projects into an order-preserving
// subset. Deduplication is best-effort: on any gateway failure or parse
// ambiguity the original list is returned unfiltered.
func (g *Gateway) Deduplicate(ctx context.Context, projects []model.Project) []model.Project {
	if len(projects) <= 1 {
		return projects
	}

	slog.Info("starting dedup", "projects", len(projects))

	text, err := g.Complete(ctx, buildDedupPrompt(projects))
	if err != nil {
		slog.Error("dedup failed, keeping full list", "error", err)
		return projects
	}

	keep := parseIndexList(text, len(projects))
	if len(keep) == 0 {
		slog.Warn("dedup response had no usable indices, keeping full list", "response", text)
		return projects
	}

	kept := make([]model.Project, 0, len(keep))
	for i, p := range projects {
		if keep[i] {
			kept = append(kept, p)
		}
	}

	slog.Info("dedup complete", "kept", len(kept), "dropped", len(projects)-len(kept))
	return kept
}

func buildDedupPrompt(projects []model.Project) string {
	var sb strings.Builder
	sb.WriteString(dedupPromptHeader)
	for i, p := range projects {
		sb.WriteString(fmt.Sprintf("%d: %s (%s)\n", i, p.FullName, p.URL))
	}
	sb.WriteString(dedupPromptFooter)
	return sb.String()
}

// parseIndexList reads a comma-separated index list. Non-numeric tokens and
// out-of-range indices are ignored rather than failing the parse.
func parseIndexList(text string, n int) map[int]bool {
	keep := make(map[int]bool)
	for _, token := range strings.Split(text, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			continue
		}
		if idx >= 0 && idx < n {
			keep[idx] = true
		}
	}
	return keep
}
