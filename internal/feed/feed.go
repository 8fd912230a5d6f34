package feed

import "time"

// Item 一条新闻。Text 为清洗后的正文，链接注释已折叠成
// "正文 [Label1 (url1), Label2 (url2)]" 的形式
type Item struct {
	Text string `json:"text"`
}

// Annotation 来自原始 <a> 标签的 (label, url) 对，折叠进 Item.Text 前的中间结构
type Annotation struct {
	Label string
	URL   string
}

// String 输出 "Label (url)" 形式，用于折叠进正文
func (a Annotation) String() string {
	return a.Label + " (" + a.URL + ")"
}

// Category 一个栏目及其按源页面顺序排列的条目。
// Title 可能是哨兵值 "Uncategorized"；零条目的栏目不会对外出现
type Category struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Feed 对外输出的完整结构。JSON 字段名是对下游消费者的兼容性契约，不可改动。
// Date 是内容的“主题日期”（而非抓取时间）；UpdatedAt / UpdatedDisplay 才是抓取时间
type Feed struct {
	Date           string     `json:"date"`
	Categories     []Category `json:"categories"`
	SourceURL      string     `json:"sourceUrl"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	UpdatedDisplay string     `json:"updatedDisplay"`
}

// Source 描述一个上游页面以及从中抽取内容所需的标记
type Source struct {
	// Name 路由与日志中使用的标识，例如 daily / briefing
	Name string
	// URL 上游页面地址
	URL string
	// SectionMarker 正文区块的 class 标记，定位抽取起点
	SectionMarker string
	// ExternalMarker 外部链接 <a> 标签上的 class 标记
	ExternalMarker string
}
