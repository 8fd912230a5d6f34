package fetch

import (
	"testing"
	"time"
)

func TestSubjectDatePolicySameCalendarDay(t *testing.T) {
	p := SubjectDate(time.UTC)

	stored := time.Date(2026, 3, 1, 0, 5, 0, 0, time.UTC)
	sameDay := time.Date(2026, 3, 1, 23, 55, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 2, 0, 5, 0, 0, time.UTC)

	// 同一自然日内一直有效，与经过的时长无关
	if !p.Valid(stored, sameDay) {
		t.Fatalf("same calendar day should be valid")
	}
	if p.Valid(stored, nextDay) {
		t.Fatalf("next calendar day should invalidate")
	}
}

func TestSubjectDatePolicyTimezoneBoundary(t *testing.T) {
	east8 := time.FixedZone("CST", 8*3600)
	p := SubjectDate(east8)

	// UTC 还是同一天，但东八区已经跨天
	stored := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) // 东八区 18:00
	later := time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)  // 东八区次日 01:00
	if p.Valid(stored, later) {
		t.Fatalf("cache should expire at the configured zone's midnight")
	}
}

func TestWindowPolicyElapsedTime(t *testing.T) {
	p := Window(30 * time.Minute)
	t0 := time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC)

	if !p.Valid(t0, t0.Add(29*time.Minute)) {
		t.Fatalf("29min should be inside the window")
	}
	if p.Valid(t0, t0.Add(31*time.Minute)) {
		t.Fatalf("31min should be outside the window")
	}
	// 跨自然日不影响时长键控
	if !p.Valid(t0, t0.Add(9*time.Minute)) {
		t.Fatalf("crossing midnight must not invalidate a duration key")
	}
}

func TestWindowPolicyClockSkew(t *testing.T) {
	p := Window(30 * time.Minute)
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 时钟回拨：最近一次成功抓取仍然算数，不崩坏
	if !p.Valid(t0, t0.Add(-5*time.Minute)) {
		t.Fatalf("clock skew backwards should keep the latest entry valid")
	}
}
