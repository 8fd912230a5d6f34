package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/LJTian/NewsPulse/internal/feed"
	"go.uber.org/zap"
)

func testExtractor() *Extractor {
	src := feed.Source{
		Name:           "daily",
		URL:            "https://example.org/daily.html",
		SectionMarker:  "news-content",
		ExternalMarker: "external-link",
	}
	return New(src, zap.NewNop().Sugar())
}

func TestExtractMissingSectionMarker(t *testing.T) {
	cats := testExtractor().Extract("<html><body><p>nothing here</p></body></html>")

	if len(cats) != 1 {
		t.Fatalf("expected exactly 1 synthetic category, got %d", len(cats))
	}
	if cats[0].Title != "Error" {
		t.Fatalf("expected Error sentinel title, got %q", cats[0].Title)
	}
	if len(cats[0].Items) != 1 || cats[0].Items[0].Text == "" {
		t.Fatalf("expected a non-empty diagnostic item: %+v", cats[0].Items)
	}
}

func TestExtractEmptyContentBlock(t *testing.T) {
	// 有正文区块但没有任何加粗标题、也没有文本
	cats := testExtractor().Extract(`<div class="news-content"></div>`)

	if len(cats) != 1 {
		t.Fatalf("expected 1 category, got %d", len(cats))
	}
	if cats[0].Title != "Uncategorized" {
		t.Fatalf("title = %q, want Uncategorized", cats[0].Title)
	}
	if len(cats[0].Items) != 1 || cats[0].Items[0].Text != "No categories found in content" {
		t.Fatalf("unexpected placeholder items: %+v", cats[0].Items)
	}
}

func TestExtractAllCategoriesEmpty(t *testing.T) {
	// 栏目存在但没有解析出任何条目，用第二个哨兵文案
	cats := testExtractor().Extract(`<div class="news-content"><b>Empty</b>   <b>AlsoEmpty</b>  </div>`)

	if len(cats) != 1 {
		t.Fatalf("expected 1 category, got %d", len(cats))
	}
	if cats[0].Title != "Uncategorized" || cats[0].Items[0].Text != "no news items parsed" {
		t.Fatalf("unexpected sentinel: %+v", cats[0])
	}
}

func TestExtractCategorySplitAndOrder(t *testing.T) {
	page := `<div class="news-content">
lead paragraph before any heading
<b>World</b><ul><li>w1</li><li>w2</li></ul>
<b>Tech</b><ul><li>t1</li></ul>
<b>Broken heading no close
</div>`

	cats := testExtractor().Extract(page)

	if len(cats) != 3 {
		t.Fatalf("expected 3 categories, got %d: %+v", len(cats), cats)
	}
	if cats[0].Title != "Uncategorized" {
		t.Fatalf("leading text should become Uncategorized, got %q", cats[0].Title)
	}
	if cats[1].Title != "World" || cats[2].Title != "Tech" {
		t.Fatalf("category order not preserved: %q, %q", cats[1].Title, cats[2].Title)
	}
	if len(cats[1].Items) != 2 || cats[1].Items[0].Text != "w1" || cats[1].Items[1].Text != "w2" {
		t.Fatalf("unexpected World items: %+v", cats[1].Items)
	}
}

func TestExtractAnchorsFoldedIntoAnnotations(t *testing.T) {
	page := `<div class="news-content"><b>World</b><ul>` +
		`<li>Summit concluded <a class="external-link" href="https://other.example.com/report">Report</a>` +
		` see <a href="/coverage">Coverage</a> and again <a href="/coverage">Coverage</a></li>` +
		`</ul></div>`

	cats := testExtractor().Extract(page)
	if len(cats) != 1 || len(cats[0].Items) != 1 {
		t.Fatalf("unexpected shape: %+v", cats)
	}

	text := cats[0].Items[0].Text
	want := "Summit concluded see and again [Report (https://other.example.com/report), Coverage (https://example.org/coverage)]"
	if text != want {
		t.Fatalf("item text = %q, want %q", text, want)
	}
	// 去重后整段文本里只允许出现一次注释列表
	if strings.Count(text, "[") != 1 {
		t.Fatalf("expected exactly one annotation list: %q", text)
	}
}

func TestExtractRelativeLinkNormalization(t *testing.T) {
	page := `<div class="news-content"><b>W</b><ul><li>x <a href="/x">X</a></li></ul></div>`

	cats := testExtractor().Extract(page)
	text := cats[0].Items[0].Text
	if !strings.Contains(text, "X (https://example.org/x)") {
		t.Fatalf("relative href not absolutized: %q", text)
	}
}

func TestExtractEntityDecoding(t *testing.T) {
	page := `<div class="news-content"><b>W</b><ul>` +
		`<li>A &amp; B &lt;tag&gt; &quot;q&quot; &#39;s&#39; 1&ndash;2&mdash;3&nbsp;end</li>` +
		`</ul></div>`

	cats := testExtractor().Extract(page)
	want := `A & B <tag> "q" 's' 1–2—3 end`
	if got := cats[0].Items[0].Text; got != want {
		t.Fatalf("entity decoding: got %q, want %q", got, want)
	}
}

func TestExtractNestedListFlattened(t *testing.T) {
	page := `<div class="news-content"><b>Tech</b><ul>` +
		`<li>Releases<ul><li>Go 1.24</li><li>Rust 1.80</li></ul></li>` +
		`<li>after</li>` +
		`</ul></div>`

	cats := testExtractor().Extract(page)
	if len(cats) != 1 || len(cats[0].Items) != 2 {
		t.Fatalf("nested list broke item splitting: %+v", cats)
	}
	if got := cats[0].Items[0].Text; got != "Releases: • Go 1.24 • Rust 1.80" {
		t.Fatalf("nested list not flattened as prose: %q", got)
	}
	if cats[0].Items[1].Text != "after" {
		t.Fatalf("sibling item after nested list lost: %+v", cats[0].Items)
	}
}

func TestExtractNoListItemsFallsBackToBody(t *testing.T) {
	page := `<div class="news-content"><b>Notice</b><p>Service window on Sunday.</p></div>`

	cats := testExtractor().Extract(page)
	if len(cats) != 1 || cats[0].Title != "Notice" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
	if cats[0].Items[0].Text != "Service window on Sunday." {
		t.Fatalf("whole-body fallback item wrong: %q", cats[0].Items[0].Text)
	}
}

func TestExtractDeterministic(t *testing.T) {
	page := `<div class="news-content">lead<b>A</b><ul>` +
		`<li>one <a href="/1">L1</a> <a class="external-link" href="https://e.example.com/2">L2</a></li>` +
		`<li>two<ul><li>sub</li></ul></li></ul><b>B</b><p>body only</p></div>`

	e := testExtractor()
	first := e.Extract(page)
	second := e.Extract(page)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extract not deterministic:\n%+v\n%+v", first, second)
	}
}
