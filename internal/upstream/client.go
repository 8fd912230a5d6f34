package upstream

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

const defaultTimeout = 15 * time.Second

// Response 一次上游 GET 的原始结果
type Response struct {
	StatusCode int
	Body       []byte
}

// Client 黑盒的上游抓取接口，抽取管道只关心状态码和页面原文
type Client interface {
	Get(url string) (*Response, error)
}

// collyClient 基于 colly 的实现；每次 Get 新建 collector，互不影响
type collyClient struct {
	timeout time.Duration
	ua      string
}

func NewClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &collyClient{timeout: timeout, ua: "NewsPulseBot/1.0"}
}

func (c *collyClient) Get(url string) (*Response, error) {
	col := colly.NewCollector(
		colly.UserAgent(c.ua),
	)
	col.SetRequestTimeout(c.timeout)

	var resp *Response
	col.OnResponse(func(r *colly.Response) {
		resp = &Response{StatusCode: r.StatusCode, Body: r.Body}
	})
	col.OnError(func(r *colly.Response, _ error) {
		// 非 2xx 时 colly 走 OnError，状态码仍要带回去供上层归因
		if r != nil {
			resp = &Response{StatusCode: r.StatusCode, Body: r.Body}
		}
	})

	err := col.Visit(url)
	if resp != nil {
		return resp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("visit %s: %w", url, err)
	}
	return nil, fmt.Errorf("visit %s: empty response", url)
}
