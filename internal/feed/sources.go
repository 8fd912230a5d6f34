package feed

// 页面结构相关的固定标记。与上游当前的页面结构强绑定，
// 上游改版只会让抽取质量下降，不会让服务崩溃
const (
	dailySectionMarker    = "news-content"
	briefingSectionMarker = "briefing-content"
	externalLinkMarker    = "external-link"
)

// Sources 当前接入的两个上游页面
func Sources(dailyURL, briefingURL string) []Source {
	return []Source{
		{
			Name:           "daily",
			URL:            dailyURL,
			SectionMarker:  dailySectionMarker,
			ExternalMarker: externalLinkMarker,
		},
		{
			Name:           "briefing",
			URL:            briefingURL,
			SectionMarker:  briefingSectionMarker,
			ExternalMarker: externalLinkMarker,
		},
	}
}
