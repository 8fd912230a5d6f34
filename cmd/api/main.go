package main

import (
	stdlog "log"

	"github.com/LJTian/NewsPulse/internal/api"
	"github.com/LJTian/NewsPulse/internal/config"
	"github.com/LJTian/NewsPulse/internal/feed"
	"github.com/LJTian/NewsPulse/internal/fetch"
	"github.com/LJTian/NewsPulse/internal/logger"
	"github.com/LJTian/NewsPulse/internal/upstream"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = log.Sync() }()

	log.Infow("config loaded",
		"port", cfg.AppPort,
		"daily", cfg.DailyFeedURL,
		"briefing", cfg.BriefingFeedURL,
		"briefing_ttl", cfg.BriefingCacheTTL.String(),
		"timezone", cfg.FeedTimezone,
	)

	loc := cfg.Location()
	client := upstream.NewClient(cfg.FetchTimeout)

	// daily 按主题日期键控缓存，briefing 按固定时长键控
	var fetchers []*fetch.Fetcher
	for _, src := range feed.Sources(cfg.DailyFeedURL, cfg.BriefingFeedURL) {
		var policy fetch.Policy
		if src.Name == "daily" {
			policy = fetch.SubjectDate(loc)
		} else {
			policy = fetch.Window(cfg.BriefingCacheTTL)
		}
		fetchers = append(fetchers, fetch.New(src, client, policy, loc, log))
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.AccessLog(log))
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(api.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	server := api.NewServer(fetchers, log)
	server.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Infof("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
