package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/LJTian/NewsPulse/internal/feed"
	"github.com/mattn/go-runewidth"
)

// Encoding 输出编码。由外层 HTTP 框架从请求参数解析成枚举后传入，
// 核心管道不接触原始字符串
type Encoding int

const (
	EncodingJSON Encoding = iota
	EncodingText
)

// ParseEncoding 把请求参数映射为枚举，未知值一律按 json 处理
func ParseEncoding(s string) Encoding {
	if s == "text" {
		return EncodingText
	}
	return EncodingJSON
}

// Render 按编码输出 Feed
func Render(f *feed.Feed, enc Encoding) (string, error) {
	if enc == EncodingText {
		return Text(f), nil
	}
	return JSON(f)
}

// JSON 原样序列化 Feed。字段名与数组顺序是对下游消费者的稳定契约；
// 关闭 HTML 转义，让链接在输出里保持可读
func JSON(f *feed.Feed) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Text 生成确定性的纯文本摘要：带主题日期的标题行，
// 每个栏目一个小节，条目逐行列出，栏目之间空一行。
// 下划线按显示宽度计算，中英文混排时也对齐
func Text(f *feed.Feed) string {
	var b strings.Builder

	title := "News for " + f.Date
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", runewidth.StringWidth(title)))
	b.WriteByte('\n')

	for _, c := range f.Categories {
		b.WriteByte('\n')
		b.WriteString(c.Title)
		b.WriteByte('\n')
		for _, it := range c.Items {
			b.WriteString("  - ")
			b.WriteString(it.Text)
			b.WriteByte('\n')
		}
	}

	if f.UpdatedDisplay != "" {
		b.WriteString("\nUpdated: ")
		b.WriteString(f.UpdatedDisplay)
		b.WriteByte('\n')
	}
	return b.String()
}
