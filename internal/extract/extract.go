package extract

import (
	"net/url"
	"strings"

	"github.com/LJTian/NewsPulse/internal/feed"
	"go.uber.org/zap"
)

const (
	uncategorizedTitle = "Uncategorized"
	errorTitle         = "Error"

	msgNoSection   = "news content section not found in page"
	msgNoCategory  = "No categories found in content"
	msgNoItems     = "no news items parsed"
	msgExtractFail = "news extraction failed unexpectedly"
)

const (
	headingOpen  = "<b>"
	headingClose = "</b>"
)

// Extractor 把一个源页面的原始 HTML 转成栏目列表。
// 上游页面结构可能调整，此处基于当前标记做“尽力而为”的文本模式匹配，不做 DOM 解析；
// 任何异常都降级为携带诊断信息的合成栏目，保证调用方永远拿到可渲染的结果
type Extractor struct {
	section  string
	external string
	origin   string
	log      *zap.SugaredLogger
}

// New 根据源配置构造抽取器。origin 取自源 URL 的 scheme://host，用于补全相对链接
func New(src feed.Source, log *zap.SugaredLogger) *Extractor {
	origin := ""
	if u, err := url.Parse(src.URL); err == nil && u.Scheme != "" && u.Host != "" {
		origin = u.Scheme + "://" + u.Host
	}
	return &Extractor{
		section:  src.SectionMarker,
		external: src.ExternalMarker,
		origin:   origin,
		log:      log,
	}
}

// Extract 是全函数：永远返回至少一个栏目，内部错误一律转成合成栏目。
// 诊断文案不携带内部错误细节，细节只进日志
func (e *Extractor) Extract(raw string) (cats []feed.Category) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorw("extract panic", "origin", e.origin, "panic", r)
			cats = []feed.Category{syntheticCategory(errorTitle, msgExtractFail)}
		}
	}()

	content, ok := e.locateSection(raw)
	if !ok {
		e.log.Warnw("section marker missing", "marker", e.section, "origin", e.origin)
		return []feed.Category{syntheticCategory(errorTitle, msgNoSection)}
	}

	candidates := splitCategories(content)
	if len(candidates) == 0 {
		return []feed.Category{syntheticCategory(uncategorizedTitle, msgNoCategory)}
	}

	cats = make([]feed.Category, 0, len(candidates))
	for _, cand := range candidates {
		items := e.extractItems(cand.body)
		// 零条目的栏目直接丢弃
		if len(items) == 0 {
			continue
		}
		cats = append(cats, feed.Category{Title: cand.title, Items: items})
	}

	if len(cats) == 0 {
		return []feed.Category{syntheticCategory(uncategorizedTitle, msgNoItems)}
	}
	return cats
}

// locateSection 通过固定的 class 标记定位正文区块，从标记所在标签闭合处之后算起
func (e *Extractor) locateSection(raw string) (string, bool) {
	idx := strings.Index(raw, e.section)
	if idx < 0 {
		return "", false
	}
	rest := raw[idx:]
	if gt := strings.IndexByte(rest, '>'); gt >= 0 {
		rest = rest[gt+1:]
	}
	return rest, true
}

type candidate struct {
	title string
	body  string
}

// splitCategories 以加粗标题为界切分栏目。
// 首个标题之前的非空文本归入隐式的 "Uncategorized" 栏目；
// 缺少闭合标记的片段视为畸形标题，跳过不报错
func splitCategories(content string) []candidate {
	parts := strings.Split(content, headingOpen)

	var out []candidate
	if lead := cleanText(parts[0]); lead != "" {
		out = append(out, candidate{title: uncategorizedTitle, body: parts[0]})
	}

	for _, seg := range parts[1:] {
		end := strings.Index(seg, headingClose)
		if end < 0 {
			continue
		}
		title := cleanText(seg[:end])
		if title == "" {
			continue
		}
		out = append(out, candidate{title: title, body: seg[end+len(headingClose):]})
	}
	return out
}

// extractItems 在栏目正文里按顶层 <li> 切分条目；
// 没有任何列表条目时把整个正文当作单条处理，而不是丢掉栏目
func (e *Extractor) extractItems(body string) []feed.Item {
	frags := splitListItems(body)
	if len(frags) == 0 {
		frags = []string{body}
	}

	items := make([]feed.Item, 0, len(frags))
	for _, frag := range frags {
		text := e.cleanFragment(frag)
		if text == "" {
			continue
		}
		items = append(items, feed.Item{Text: text})
	}
	return items
}

// cleanFragment 清洗单个条目片段：先折叠外链和普通链接为注释，
// 再拍平嵌套子列表、去标签、解实体、压缩空白，最后把注释追加到正文尾部
func (e *Extractor) cleanFragment(frag string) string {
	var anns []feed.Annotation
	seen := make(map[string]struct{})

	// 外链标记的 <a> 先处理，保证其注释排在普通链接之前
	frag = e.foldAnchors(frag, &anns, seen, func(tag string) bool {
		return strings.Contains(tag, e.external)
	})
	frag = e.foldAnchors(frag, &anns, seen, func(string) bool { return true })

	text := cleanText(flattenSublists(frag))
	if text == "" {
		return ""
	}
	if len(anns) > 0 {
		parts := make([]string, len(anns))
		for i, a := range anns {
			parts[i] = a.String()
		}
		text += " [" + strings.Join(parts, ", ") + "]"
	}
	return text
}

// foldAnchors 把 match 命中的 <a> 从文本里移除，href 与锚文本收进注释列表。
// 相对链接（以 / 开头）用源站 origin 补全为绝对地址；按 label+url 精确去重
func (e *Extractor) foldAnchors(frag string, anns *[]feed.Annotation, seen map[string]struct{}, match func(tag string) bool) string {
	return anchorRe.ReplaceAllStringFunc(frag, func(m string) string {
		tagEnd := strings.IndexByte(m, '>')
		closeIdx := strings.LastIndexByte(m, '<')
		if tagEnd < 0 || closeIdx <= tagEnd {
			return " "
		}
		tag := m[:tagEnd+1]
		if !match(tag) {
			return m
		}

		label := cleanText(m[tagEnd+1 : closeIdx])
		href := ""
		if hm := hrefRe.FindStringSubmatch(tag); hm != nil {
			href = strings.TrimSpace(hm[1])
		}
		// 没有链接目标的 <a> 只保留文字
		if href == "" {
			return " " + m[tagEnd+1:closeIdx] + " "
		}
		if label == "" {
			return " "
		}

		if strings.HasPrefix(href, "/") && e.origin != "" {
			href = e.origin + href
		}
		key := label + "\x00" + href
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			*anns = append(*anns, feed.Annotation{Label: label, URL: href})
		}
		return " "
	})
}

func syntheticCategory(title, text string) feed.Category {
	return feed.Category{Title: title, Items: []feed.Item{{Text: text}}}
}
