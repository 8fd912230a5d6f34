package fetch

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/LJTian/NewsPulse/internal/extract"
	"github.com/LJTian/NewsPulse/internal/feed"
	"github.com/LJTian/NewsPulse/internal/metrics"
	"github.com/LJTian/NewsPulse/internal/upstream"
	"go.uber.org/zap"
)

const (
	subjectDateLayout = "Monday, 2 January 2006"
	displayLayout     = "2006-01-02 15:04 MST"
)

// FetchFailure 网络或状态码错误。只有在没有任何缓存可兜底时才会传播给调用方
type FetchFailure struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchFailure) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchFailure) Unwrap() error { return e.Err }

// IsFetchFailure 报告 err 链上是否存在 FetchFailure
func IsFetchFailure(err error) bool {
	var f *FetchFailure
	return errors.As(err, &f)
}

// entry 单槽缓存：整体替换，绝不部分修改
type entry struct {
	feed      *feed.Feed
	fetchedAt time.Time
}

// Fetcher 一个源对应一个 Fetcher，独占自己的单槽缓存。
// 并发未命中时各自抓取各自落槽，后写者胜；每个请求都拿到自己那次的结果
type Fetcher struct {
	src    feed.Source
	client upstream.Client
	ex     *extract.Extractor
	policy Policy
	loc    *time.Location
	log    *zap.SugaredLogger
	now    func() time.Time

	mu    sync.Mutex
	entry *entry
}

func New(src feed.Source, client upstream.Client, policy Policy, loc *time.Location, log *zap.SugaredLogger) *Fetcher {
	if loc == nil {
		loc = time.UTC
	}
	return &Fetcher{
		src:    src,
		client: client,
		ex:     extract.New(src, log),
		policy: policy,
		loc:    loc,
		log:    log.With("feed", src.Name),
		now:    time.Now,
	}
}

// Name 路由与指标里使用的源标识
func (f *Fetcher) Name() string { return f.src.Name }

// Fetch 命中缓存直接返回，不发任何上游请求；未命中则抓取一次并整体替换缓存。
// 抓取失败时只要有旧缓存（哪怕过期）就返回旧缓存——宁可陈旧也不失败；
// 不做重试，下一个请求就是天然的重试入口
func (f *Fetcher) Fetch() (*feed.Feed, error) {
	metrics.FetchRequests.WithLabelValues(f.src.Name).Inc()
	now := f.now()

	if cached := f.cached(now); cached != nil {
		metrics.CacheHits.WithLabelValues(f.src.Name).Inc()
		return cached, nil
	}

	fresh, err := f.refresh(now)
	if err == nil {
		return fresh, nil
	}

	metrics.UpstreamErrors.WithLabelValues(f.src.Name).Inc()
	if stale := f.lastStored(); stale != nil {
		metrics.StaleFallbacks.WithLabelValues(f.src.Name).Inc()
		f.log.Warnw("upstream failed, serving stale cache", "url", f.src.URL, "err", err)
		return stale, nil
	}

	f.log.Errorw("upstream failed with empty cache", "url", f.src.URL, "err", err)
	return nil, err
}

func (f *Fetcher) cached(now time.Time) *feed.Feed {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entry != nil && f.policy.Valid(f.entry.fetchedAt, now) {
		return f.entry.feed
	}
	return nil
}

// lastStored 返回最近一次成功的 Feed，不管是否过期；没有则返回 nil
func (f *Fetcher) lastStored() *feed.Feed {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entry != nil {
		return f.entry.feed
	}
	return nil
}

func (f *Fetcher) refresh(now time.Time) (*feed.Feed, error) {
	resp, err := f.client.Get(f.src.URL)
	if err != nil {
		return nil, &FetchFailure{URL: f.src.URL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchFailure{URL: f.src.URL, Status: resp.StatusCode}
	}

	cats := f.ex.Extract(string(resp.Body))
	fd := &feed.Feed{
		Date:           now.In(f.loc).Format(subjectDateLayout),
		Categories:     cats,
		SourceURL:      f.src.URL,
		UpdatedAt:      now,
		UpdatedDisplay: now.In(f.loc).Format(displayLayout),
	}

	f.mu.Lock()
	f.entry = &entry{feed: fd, fetchedAt: now}
	f.mu.Unlock()

	f.log.Infow("feed refreshed", "url", f.src.URL, "categories", len(cats))
	return fd, nil
}
