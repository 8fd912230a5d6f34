package fetch

import "time"

// Policy 判定缓存条目在 now 时刻是否仍然有效。
// 必须是两个时间点的纯函数，与调用顺序无关，时钟回拨时不崩坏
type Policy interface {
	Valid(stored, now time.Time) bool
}

const dateKeyLayout = "2006-01-02"

// SubjectDatePolicy 按主题日期键控：同一个自然日内缓存一直有效，
// 适合内容每天只更新一次的源
type SubjectDatePolicy struct {
	loc *time.Location
}

func SubjectDate(loc *time.Location) SubjectDatePolicy {
	if loc == nil {
		loc = time.UTC
	}
	return SubjectDatePolicy{loc: loc}
}

func (p SubjectDatePolicy) Valid(stored, now time.Time) bool {
	return stored.In(p.loc).Format(dateKeyLayout) == now.In(p.loc).Format(dateKeyLayout)
}

// WindowPolicy 按固定时长键控：距上次成功抓取不足 window 即有效，
// 与日历边界无关，适合持续更新的源
type WindowPolicy struct {
	window time.Duration
}

func Window(d time.Duration) WindowPolicy {
	return WindowPolicy{window: d}
}

func (p WindowPolicy) Valid(stored, now time.Time) bool {
	return now.Sub(stored) < p.window
}
