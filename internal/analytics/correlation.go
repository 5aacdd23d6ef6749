package analytics

import "math"

// DefaultMinAlignedDays 是相关性计算的最低对齐样本数，低于该值视为无信号
const DefaultMinAlignedDays = 3

// Correlate 在两个日序列的共同日期上计算皮尔逊相关系数。
// 对齐样本少于 minAligned 时返回中性值 0.0——样本不足是常态而非错误。
func Correlate(a, b DailySeries, minAligned int) float64 {
	if minAligned < 2 {
		minAligned = DefaultMinAlignedDays
	}

	x, y := Align(a, b)
	if len(x) < minAligned {
		return 0.0
	}

	return Pearson(x, y)
}

// Pearson 计算皮尔逊相关系数，取值 [-1, 1]。
// 任一序列方差为零时返回 0.0，不会除零。
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0.0
	}

	n := len(x)
	meanX := Mean(x)
	meanY := Mean(y)

	numerator := 0.0
	sumSqX := 0.0
	sumSqY := 0.0
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		numerator += dx * dy
		sumSqX += dx * dx
		sumSqY += dy * dy
	}

	denominator := math.Sqrt(sumSqX * sumSqY)
	if denominator == 0 {
		return 0.0
	}

	return round3(numerator / denominator)
}
