package pipeline

import (
	"log/slog"

	"trendscope/db"
	"trendscope/internal/config"
	"trendscope/internal/repository"
	"trendscope/internal/site"
	"trendscope/internal/store"
	"trendscope/pkg/github"
	"trendscope/pkg/llm"
	"trendscope/pkg/trending"

	"github.com/redis/go-redis/v9"
)

// Build wires a Pipeline from configuration. Optional stages are left nil
// when their configuration is absent or their backend cannot be reached.
// The returned cleanup closes whatever connections were opened.
func Build(cfg config.Config) (*Pipeline, func()) {
	crawler := trending.NewWebCrawler(cfg.RequestTimeout, cfg.RetryTimes)
	cleanups := []func(){crawler.Close}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		if err := db.ConnectRedis(cfg.RedisURL); err != nil {
			slog.Warn("redis unavailable, readme cache disabled", "error", err)
		} else {
			cache = db.Redis
			cleanups = append(cleanups, db.CloseRedis)
		}
	}

	p := &Pipeline{
		Config:   cfg,
		Crawler:  crawler,
		Enricher: github.NewClient(cfg.GitHubToken, cfg.RequestTimeout, cfg.RetryTimes, cache),
		Store:    store.New(cfg.DataDir),
		Site:     site.NewGenerator(cfg.SiteDir),
	}

	if cfg.AIEnabled() {
		var completer llm.Completer
		if cfg.LLMProvider == "anthropic" {
			completer = llm.NewAnthropicClient(cfg.AnthropicKey, cfg.LLMModel, cfg.AIMaxTokens)
		} else {
			completer = llm.NewOpenAIClient(cfg.OpenAIKey, cfg.LLMModel, cfg.AIMaxTokens)
		}
		p.Digester = llm.NewGateway(completer, cfg.RetryTimes)
	} else {
		slog.Warn("no LLM API key configured, AI stages disabled")
	}

	if cfg.DatabaseURL != "" {
		if err := db.Connect(cfg.DatabaseURL); err != nil {
			slog.Warn("database unavailable, report archive disabled", "error", err)
		} else {
			cleanups = append(cleanups, db.Close)
			repo := repository.NewReportRepository(db.DB)
			if err := repo.InitSchema(); err != nil {
				slog.Warn("archive schema init failed, report archive disabled", "error", err)
			} else {
				p.Archiver = repo
			}
		}
	}

	if cfg.GitHubRepoOwner != "" && cfg.GitHubRepoName != "" {
		uploader, err := github.NewUploader(cfg.GitHubToken, cfg.GitHubRepoOwner, cfg.GitHubRepoName, cfg.RequestTimeout, cfg.RetryTimes)
		if err != nil {
			slog.Warn("backup upload disabled", "error", err)
		} else {
			p.Uploader = uploader
		}
	}

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	return p, cleanup
}
