package analytics

import (
	"sort"
	"time"
)

// dateKeyFormat 为日序列的键格式，天粒度、无时间部分
const dateKeyFormat = "2006-01-02"

// DailySeries 是日期到数值的映射，作为聚合与相关性计算之间的内部交换类型。
// 缺失日期即缺口，不做插值。
type DailySeries map[string]float64

// DateKey 将时间规约为日序列键。
func DateKey(t time.Time) string {
	return t.Format(dateKeyFormat)
}

// Dates 返回按日期升序排列的键集合。
func (s DailySeries) Dates() []string {
	dates := make([]string, 0, len(s))
	for date := range s {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Values 返回按日期升序排列的取值。
func (s DailySeries) Values() []float64 {
	dates := s.Dates()
	values := make([]float64, 0, len(dates))
	for _, date := range dates {
		values = append(values, s[date])
	}
	return values
}

// Align 取两个序列的共同日期（升序），返回成对取值。
func Align(a, b DailySeries) (x, y []float64) {
	shared := make([]string, 0, len(a))
	for date := range a {
		if _, ok := b[date]; ok {
			shared = append(shared, date)
		}
	}
	sort.Strings(shared)

	x = make([]float64, 0, len(shared))
	y = make([]float64, 0, len(shared))
	for _, date := range shared {
		x = append(x, a[date])
		y = append(y, b[date])
	}
	return x, y
}

// Mean 计算算术平均，空切片返回 0。
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
