package model

import "time"

// Project is one normalized trending-repository record. Star counts are
// pointers: nil means the value could not be read from the page, which is
// distinct from zero.
type Project struct {
	FullName    string    `json:"name"`  // "owner/repo", unique within a run
	Title       string    `json:"title"` // repository name without the owner
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Stars       *int      `json:"stars"`
	StarsToday  *int      `json:"stars_today"`
	Language    string    `json:"language"`
	Author      string    `json:"author"`
	Readme      string    `json:"readme,omitempty"`
	Source      string    `json:"source"`
	CrawledAt   time.Time `json:"crawled_at"`
}
