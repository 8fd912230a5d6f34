package main

import (
	"fmt"
	stdlog "log"
	"os"

	"github.com/LJTian/NewsPulse/internal/config"
	"github.com/LJTian/NewsPulse/internal/feed"
	"github.com/LJTian/NewsPulse/internal/fetch"
	"github.com/LJTian/NewsPulse/internal/logger"
	"github.com/LJTian/NewsPulse/internal/render"
	"github.com/LJTian/NewsPulse/internal/upstream"
)

// 一个只抓取一轮并把文本摘要打到 stdout 的命令行入口：适合手动触发与排障
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = log.Sync() }()

	loc := cfg.Location()
	client := upstream.NewClient(cfg.FetchTimeout)

	failed := 0
	for _, src := range feed.Sources(cfg.DailyFeedURL, cfg.BriefingFeedURL) {
		var policy fetch.Policy
		if src.Name == "daily" {
			policy = fetch.SubjectDate(loc)
		} else {
			policy = fetch.Window(cfg.BriefingCacheTTL)
		}

		f := fetch.New(src, client, policy, loc, log)
		fd, err := f.Fetch()
		if err != nil {
			log.Errorw("fetch failed", "feed", src.Name, "err", err)
			failed++
			continue
		}
		fmt.Println(render.Text(fd))
	}

	if failed > 0 {
		os.Exit(1)
	}
}
