// Package trending crawls GitHub's daily trending page into normalized
// project records.
package trending

import (
	"context"
	"errors"

	"trendscope/internal/model"
)

// ErrNoEntries means the page yielded zero parseable projects. An empty
// result is indistinguishable from a markup change, so it is always an
// error, never an empty list.
var ErrNoEntries = errors.New("trending: no project entries found in page")

// Crawler is any source that can produce a batch of trending projects.
type Crawler interface {
	Crawl(ctx context.Context) ([]model.Project, error)
	Name() string
}
