package extract

import (
	"regexp"
	"strings"
)

var (
	anchorRe = regexp.MustCompile(`(?is)<a\s[^>]*>.*?</a>`)
	hrefRe   = regexp.MustCompile(`(?is)href\s*=\s*"([^"]*)"`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	wsRe     = regexp.MustCompile(`\s+`)

	ulOpenRe  = regexp.MustCompile(`(?i)<ul[^>]*>`)
	ulCloseRe = regexp.MustCompile(`(?i)</ul\s*>`)
	liOpenRe  = regexp.MustCompile(`(?i)<li[^>]*>`)
	liCloseRe = regexp.MustCompile(`(?i)</li\s*>`)
)

// 固定的实体表，&amp; 必须放最后解，避免 &amp;lt; 被二次解码
var entityTable = []struct{ ent, lit string }{
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&ndash;", "–"},
	{"&mdash;", "—"},
	{"&nbsp;", " "},
	{"&amp;", "&"},
}

// cleanText 去掉剩余标签、解固定实体、把连续空白压成单个空格并去首尾空白
func cleanText(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	for _, e := range entityTable {
		s = strings.ReplaceAll(s, e.ent, e.lit)
	}
	s = wsRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// flattenSublists 把条目内嵌套的 <ul>/<li> 转成行内的 ": " 与 "• " 标记，
// 在去标签之前执行，子列表结构因此保留为一段平铺文本而不是被整个抹掉
func flattenSublists(s string) string {
	s = ulOpenRe.ReplaceAllString(s, ": ")
	s = ulCloseRe.ReplaceAllString(s, " ")
	s = liOpenRe.ReplaceAllString(s, "• ")
	s = liCloseRe.ReplaceAllString(s, " ")
	return s
}

// splitListItems 以顶层 <li> 为界切分正文，返回各条目片段（不含 <li> 标签本身）。
// 嵌套子列表整体留在所属条目片段内，交给 flattenSublists 处理
func splitListItems(body string) []string {
	lower := strings.ToLower(body)

	var frags []string
	depth := 0
	start := -1
	startDepth := 0

	flush := func(end int) {
		if start >= 0 && end > start {
			frags = append(frags, body[start:end])
		}
		start = -1
	}

	i := 0
	for i < len(lower) {
		j := strings.IndexByte(lower[i:], '<')
		if j < 0 {
			break
		}
		i += j
		switch {
		case tagAt(lower, i, "ul"):
			depth++
			i = skipTag(lower, i)
		case closeTagAt(lower, i, "ul"):
			depth--
			if start >= 0 && depth < startDepth {
				flush(i)
			}
			i = skipTag(lower, i)
		case tagAt(lower, i, "li"):
			if start < 0 || depth <= startDepth {
				flush(i)
				i = skipTag(lower, i)
				start = i
				startDepth = depth
			} else {
				i = skipTag(lower, i)
			}
		case closeTagAt(lower, i, "li"):
			if start >= 0 && depth <= startDepth {
				flush(i)
			}
			i = skipTag(lower, i)
		default:
			i = skipTag(lower, i)
		}
	}
	flush(len(body))
	return frags
}

// tagAt 判断 s[i:] 是否是名为 name 的开始标签（避免 <li 误匹配 <link 之类）
func tagAt(s string, i int, name string) bool {
	if !strings.HasPrefix(s[i:], "<"+name) {
		return false
	}
	r := i + 1 + len(name)
	if r >= len(s) {
		return false
	}
	switch s[r] {
	case '>', ' ', '\t', '\n', '\r', '/':
		return true
	}
	return false
}

func closeTagAt(s string, i int, name string) bool {
	if !strings.HasPrefix(s[i:], "</"+name) {
		return false
	}
	r := i + 2 + len(name)
	if r >= len(s) {
		return false
	}
	switch s[r] {
	case '>', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// skipTag 跳过从 i 开始的一个标签，返回 '>' 之后的位置
func skipTag(s string, i int) int {
	if j := strings.IndexByte(s[i:], '>'); j >= 0 {
		return i + j + 1
	}
	return i + 1
}
