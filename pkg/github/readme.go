// Package github talks to the GitHub REST API: README enrichment for crawled
// projects and the best-effort report backup upload.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"trendscope/internal/model"
	"trendscope/pkg/retry"
)

const (
	defaultAPIBase    = "https://api.github.com"
	readmeConcurrency = 5
	maxReadmeLength   = 2000
	truncationMarker  = "\n\n[README truncated]"
	readmeCacheTTL    = 24 * time.Hour
)

// Client fetches repository READMEs. The optional Redis cache is a
// read-through layer; a nil cache disables it.
type Client struct {
	apiBase    string
	token      string
	httpClient *http.Client
	policy     retry.Policy
	cache      *redis.Client
}

func NewClient(token string, timeout time.Duration, retries int, cache *redis.Client) *Client {
	return &Client{
		apiBase:    defaultAPIBase,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		policy: retry.Policy{
			Attempts:  retries,
			BaseDelay: time.Second,
			Retryable: retry.RetryableHTTP,
		},
		cache: cache,
	}
}

// EnrichReadmes populates Readme on each project where the content is
// available, with at most five fetches in flight. A failed fetch degrades
// that single project and never aborts its siblings.
func (c *Client) EnrichReadmes(ctx context.Context, projects []model.Project) []model.Project {
	out := make([]model.Project, len(projects))
	copy(out, projects)

	var g errgroup.Group
	g.SetLimit(readmeConcurrency)

	for i := range out {
		g.Go(func() error {
			readme, err := c.fetchReadme(ctx, out[i].FullName)
			if err != nil {
				slog.Warn("readme fetch failed", "project", out[i].FullName, "error", err)
				return nil
			}
			out[i].Readme = readme
			return nil
		})
	}
	g.Wait()

	var enriched int
	for i := range out {
		if out[i].Readme != "" {
			enriched++
		}
	}
	slog.Info("readme enrichment complete", "total", len(out), "enriched", enriched)

	return out
}

func (c *Client) fetchReadme(ctx context.Context, fullName string) (string, error) {
	cacheKey := "trendscope:readme:" + fullName
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s/repos/%s/readme", c.apiBase, fullName)

	var payload struct {
		Content string `json:"content"`
	}

	err := c.policy.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/vnd.github.v3+json")
		if c.token != "" {
			req.Header.Set("Authorization", "token "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return &retry.StatusError{StatusCode: resp.StatusCode, URL: url}
		}

		return json.NewDecoder(resp.Body).Decode(&payload)
	})
	if err != nil {
		return "", fmt.Errorf("readme %s: %w", fullName, err)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("readme %s: decoding content: %w", fullName, err)
	}

	readme := truncateReadme(string(decoded))

	if c.cache != nil && readme != "" {
		if err := c.cache.Set(ctx, cacheKey, readme, readmeCacheTTL).Err(); err != nil {
			slog.Warn("readme cache write failed", "project", fullName, "error", err)
		}
	}

	return readme, nil
}

func truncateReadme(s string) string {
	if len(s) <= maxReadmeLength {
		return s
	}
	return s[:maxReadmeLength] + truncationMarker
}
