package service

import (
	"time"

	"github.com/wellnest/internal/analytics"
)

// currentStreak 从 today 起向前逐日回溯达标日期，返回连续天数。
// today 缺失不破坏连胜（当日尚未结束），从昨天继续计；更早的缺口即终止。
func currentStreak(qualifying map[string]bool, today time.Time) int {
	day := normalizeToDate(today)
	if !qualifying[analytics.DateKey(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for qualifying[analytics.DateKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
