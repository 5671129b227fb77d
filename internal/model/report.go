package model

// Digest is the structured output of the LLM summary stage.
type Digest struct {
	Summary          string              `json:"summary"`
	Trends           []string            `json:"trends"`
	ProjectSummaries []string            `json:"project_summaries"`
	Categories       map[string][]string `json:"categories,omitempty"`
}

// Report is one pipeline run's sealed output. The JSON shape doubles as the
// on-disk snapshot format, so digest fields are flattened into the report.
type Report struct {
	Date             string    `json:"date"`            // YYYY-MM-DD
	GenerationTime   string    `json:"generation_time"` // YYYY-MM-DD HH:MM:SS
	Summary          string    `json:"summary"`
	Trends           []string  `json:"trends"`
	ProjectSummaries []string  `json:"project_summaries"`
	Projects         []Project `json:"projects"`
}

// NoteFor returns the digest note aligned to project index i, or "" when the
// note list is shorter. Alignment is positional, never by identity.
func (r Report) NoteFor(i int) string {
	if i >= 0 && i < len(r.ProjectSummaries) {
		return r.ProjectSummaries[i]
	}
	return ""
}

// LanguageCount is one entry of the per-language ranking.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// ReportRef is a lightweight pointer to a published report page.
type ReportRef struct {
	Date          string `json:"date"`
	URL           string `json:"url"`
	ProjectsCount int    `json:"projects_count"`
}

// ArchiveEntry is one report as listed on the archive page.
type ArchiveEntry struct {
	Date          string `json:"date"`
	URL           string `json:"url"`
	Summary       string `json:"summary"`
	ProjectsCount int    `json:"projects_count"`
	TrendsCount   int    `json:"trends_count"`
}

// AggregatedView is the derived statistics view over the full report history.
// It is rebuilt from scratch on every run and never persisted on its own.
type AggregatedView struct {
	TotalReports    int                                  `json:"total_reports"`
	TotalProjects   int                                  `json:"total_projects"`
	TotalTrends     int                                  `json:"total_trends"`
	ActiveDays      int                                  `json:"active_days"`
	TotalStarsToday int                                  `json:"total_stars_today"`
	Years           []string                             `json:"years"` // descending
	ReportsByYear   map[string]map[string][]ArchiveEntry `json:"reports_by_year"`
	RecentReports   []ReportRef                          `json:"recent_reports"`
	LanguageStats   []LanguageCount                      `json:"language_stats"`
}
