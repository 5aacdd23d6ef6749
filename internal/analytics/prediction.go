package analytics

// DefaultPredictionWindow 是预测取用的近期样本数
const DefaultPredictionWindow = 7

// 趋势项的衰减系数，避免短期波动被放大
const trendDamping = 0.3

// PredictNext 对单一日序列做下一日估计：近因加权均值加趋势修正。
// 样本不足 3 个时退化为算术平均，空序列返回 0.0；结果钳制在 [-1, 1]。
func PredictNext(s DailySeries, window int) float64 {
	if window <= 0 {
		window = DefaultPredictionWindow
	}

	values := s.Values()
	if len(values) == 0 {
		return 0.0
	}
	if len(values) > window {
		values = values[len(values)-window:]
	}

	if len(values) < 3 {
		return round3(clamp(Mean(values), -1.0, 1.0))
	}

	// 线性近因权重：越新的样本权重越大
	weightedSum := 0.0
	weightTotal := 0.0
	for i, v := range values {
		w := float64(i + 1)
		weightedSum += w * v
		weightTotal += w
	}
	prediction := weightedSum / weightTotal

	trend := (values[len(values)-1] - values[0]) / float64(len(values))
	prediction += trend * trendDamping

	return round3(clamp(prediction, -1.0, 1.0))
}
