package handler

type ProjectResponse struct {
	FullName    string `json:"name"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Author      string `json:"author"`
	Stars       *int   `json:"stars"`
	StarsToday  *int   `json:"stars_today"`
	Note        string `json:"note"`
}

type ReportResponse struct {
	Date           string            `json:"date"`
	GenerationTime string            `json:"generation_time"`
	Summary        string            `json:"summary"`
	Trends         []string          `json:"trends"`
	Projects       []ProjectResponse `json:"projects"`
}

type ReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}
