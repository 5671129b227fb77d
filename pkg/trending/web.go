package trending

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"trendscope/internal/model"
	"trendscope/pkg/retry"
)

const defaultTrendingURL = "https://github.com/trending?since=daily"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// WebCrawler scrapes the official trending page. It owns its HTTP client;
// call Close when the batch is done so idle connections are released on
// every exit path.
type WebCrawler struct {
	trendingURL string
	httpClient  *http.Client
	policy      retry.Policy
}

func NewWebCrawler(timeout time.Duration, retries int) *WebCrawler {
	return &WebCrawler{
		trendingURL: defaultTrendingURL,
		httpClient:  &http.Client{Timeout: timeout},
		policy: retry.Policy{
			Attempts:  retries,
			BaseDelay: time.Second,
			Retryable: retry.RetryableHTTP,
		},
	}
}

func (c *WebCrawler) Name() string {
	return "GitHub Trending Web"
}

// Close releases the crawler's connection resources.
func (c *WebCrawler) Close() {
	c.httpClient.CloseIdleConnections()
}

// Crawl fetches and parses the daily trending page. Zero parsed entries is a
// fatal condition (ErrNoEntries); a single malformed entry is skipped.
func (c *WebCrawler) Crawl(ctx context.Context) ([]model.Project, error) {
	body, err := c.fetch(ctx, c.trendingURL)
	if err != nil {
		return nil, fmt.Errorf("trending page unavailable: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("trending page not parseable as HTML: %w", err)
	}

	projects := c.parsePage(doc)
	if len(projects) == 0 {
		return nil, ErrNoEntries
	}

	slog.Info("trending crawl complete", "source", c.Name(), "projects", len(projects))
	return projects, nil
}

func (c *WebCrawler) fetch(ctx context.Context, url string) (string, error) {
	var body string

	err := c.policy.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			slog.Warn("request failed", "url", url, "error", err)
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			slog.Warn("unexpected status", "url", url, "status", resp.StatusCode)
			return &retry.StatusError{StatusCode: resp.StatusCode, URL: url}
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = string(b)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}

	return body, nil
}

func (c *WebCrawler) parsePage(doc *goquery.Document) []model.Project {
	var projects []model.Project
	now := time.Now()

	doc.Find("article.Box-row").Each(func(_ int, s *goquery.Selection) {
		p, err := c.parseEntry(s, now)
		if err != nil {
			slog.Warn("skipping malformed trending entry", "error", err)
			return
		}
		projects = append(projects, p)
	})

	return projects
}

func (c *WebCrawler) parseEntry(s *goquery.Selection, now time.Time) (model.Project, error) {
	href, ok := s.Find("h2 a").First().Attr("href")
	if !ok {
		return model.Project{}, fmt.Errorf("entry has no repository link")
	}

	fullName := strings.Trim(strings.TrimSpace(href), "/")
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return model.Project{}, fmt.Errorf("unexpected repository path %q", href)
	}
	author, title := parts[0], parts[1]

	description := cleanText(s.Find("p.col-9").First().Text())
	language := strings.TrimSpace(s.Find("span[itemprop='programmingLanguage']").First().Text())

	if description == "" {
		if language != "" {
			description = fmt.Sprintf("%s project by %s", language, author)
		} else {
			description = fmt.Sprintf("Project by %s", author)
		}
	}

	var stars *int
	s.Find("a[href$='/stargazers']").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		n, err := ParseStarCount(link.Text())
		if err != nil {
			return true // keep looking
		}
		stars = &n
		return false
	})

	var starsToday *int
	todayText := s.Find("span.d-inline-block.float-sm-right").First().Text()
	if n, err := ParseStarCount(todayText); err == nil {
		starsToday = &n
	}

	return model.Project{
		FullName:    fullName,
		Title:       title,
		Description: description,
		URL:         "https://github.com/" + fullName,
		Stars:       stars,
		StarsToday:  starsToday,
		Language:    language,
		Author:      author,
		Source:      c.Name(),
		CrawledAt:   now,
	}, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
