package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"trendscope/internal/model"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// InitSchema creates the report archive table if it does not exist yet.
func (r *ReportRepository) InitSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS report (
			id SERIAL PRIMARY KEY,
			report_date TEXT NOT NULL,
			generation_time TEXT NOT NULL,
			summary TEXT NOT NULL,
			trends JSONB NOT NULL,
			project_summaries JSONB NOT NULL,
			projects JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (report_date, generation_time)
		)
	`)
	return err
}

func (r *ReportRepository) SaveReport(report *model.Report) error {
	trends, err := json.Marshal(report.Trends)
	if err != nil {
		return fmt.Errorf("encoding trends: %w", err)
	}
	summaries, err := json.Marshal(report.ProjectSummaries)
	if err != nil {
		return fmt.Errorf("encoding project summaries: %w", err)
	}
	projects, err := json.Marshal(report.Projects)
	if err != nil {
		return fmt.Errorf("encoding projects: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO report(report_date, generation_time, summary, trends, project_summaries, projects)
		VALUES($1, $2, $3, $4, $5, $6)
		ON CONFLICT (report_date, generation_time) DO NOTHING
	`, report.Date, report.GenerationTime, report.Summary, trends, summaries, projects)
	return err
}

func (r *ReportRepository) GetLatestReport() (*model.Report, error) {
	row := r.db.QueryRow(`
		SELECT report_date, generation_time, summary, trends, project_summaries, projects
		FROM report
		ORDER BY report_date DESC, generation_time DESC
		LIMIT 1
	`)

	report, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *ReportRepository) GetReports(limit, offset int) ([]model.Report, error) {
	rows, err := r.db.Query(`
		SELECT report_date, generation_time, summary, trends, project_summaries, projects
		FROM report
		ORDER BY report_date DESC, generation_time DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReports(rows)
}

func (r *ReportRepository) GetAllReports() ([]model.Report, error) {
	rows, err := r.db.Query(`
		SELECT report_date, generation_time, summary, trends, project_summaries, projects
		FROM report
		ORDER BY report_date DESC, generation_time DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReports(rows)
}

func (r *ReportRepository) GetReportTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM report`).Scan(&total)
	return total, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*model.Report, error) {
	var report model.Report
	var trends, summaries, projects []byte

	err := row.Scan(&report.Date, &report.GenerationTime, &report.Summary, &trends, &summaries, &projects)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(trends, &report.Trends); err != nil {
		return nil, fmt.Errorf("decoding trends: %w", err)
	}
	if err := json.Unmarshal(summaries, &report.ProjectSummaries); err != nil {
		return nil, fmt.Errorf("decoding project summaries: %w", err)
	}
	if err := json.Unmarshal(projects, &report.Projects); err != nil {
		return nil, fmt.Errorf("decoding projects: %w", err)
	}
	return &report, nil
}

func collectReports(rows *sql.Rows) ([]model.Report, error) {
	var reports []model.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
