package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wellnest/internal/analytics"
	"github.com/wellnest/internal/config"
)

// ErrDataUnavailable 在记录存取失败时返回；洞察结果从不部分返回
var ErrDataUnavailable = errors.New("record store unavailable")

// InsightsService 是洞察编排器：拉取三个领域的日序列，
// 计算均值、相关性与次日情绪预测，并合成一段模板化摘要。
type InsightsService struct {
	store RecordStore
	cfg   config.AnalyticsConfig
}

// InsightsSummary 是面向用户的洞察结果
type InsightsSummary struct {
	AvgMood               float64
	PredictedNextMood     float64
	FitnessCorrelation    float64
	MedicationCorrelation float64
	Summary               string
}

// NewInsightsService 构造 InsightsService
func NewInsightsService(store RecordStore, cfg config.AnalyticsConfig) *InsightsService {
	return &InsightsService{store: store, cfg: cfg}
}

// WeeklySummary 以 now 为基准计算洞察。空窗口是合法输入，所有字段回落为中性值。
func (s *InsightsService) WeeklySummary(userID uint, now time.Time) (*InsightsSummary, error) {
	end := normalizeToDate(now)
	moodStart := end.AddDate(0, 0, -(s.cfg.InsightsLookbackDays - 1))
	corrStart := end.AddDate(0, 0, -(s.cfg.CorrelationLookbackDays - 1))

	mood, err := s.store.MoodSeries(userID, moodStart, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	corrMood, err := s.store.MoodSeries(userID, corrStart, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	fitness, err := s.store.FitnessSeries(userID, corrStart, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	adherence, err := s.store.AdherenceSeries(userID, corrStart, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	avgMood := round3(analytics.Mean(mood.Values()))
	fitnessCorr := analytics.Correlate(corrMood, fitness, s.cfg.CorrelationMinDays)
	medicationCorr := analytics.Correlate(corrMood, adherence, s.cfg.CorrelationMinDays)
	predicted := analytics.PredictNext(mood, s.cfg.PredictionWindowDays)

	return &InsightsSummary{
		AvgMood:               avgMood,
		PredictedNextMood:     predicted,
		FitnessCorrelation:    fitnessCorr,
		MedicationCorrelation: medicationCorr,
		Summary:               summaryText(avgMood, fitnessCorr, medicationCorr),
	}, nil
}

// summaryText 按固定阈值合成英文摘要，相同输入恒得相同输出。
func summaryText(avgMood, fitnessCorr, medicationCorr float64) string {
	var parts []string

	switch {
	case avgMood >= 0.3:
		parts = append(parts, "You've been feeling positive lately.")
	case avgMood <= -0.3:
		parts = append(parts, "You've been feeling down recently.")
	default:
		parts = append(parts, "Your mood has been relatively neutral.")
	}

	switch {
	case fitnessCorr > 0.3:
		parts = append(parts, "Exercise appears to boost your mood significantly.")
	case fitnessCorr > 0.1:
		parts = append(parts, "There's a slight connection between exercise and your mood.")
	case fitnessCorr < -0.3:
		parts = append(parts, "Your mood seems lower on more active days.")
	}

	switch {
	case medicationCorr > 0.3:
		parts = append(parts, "Medication adherence correlates with better mood.")
	case medicationCorr > 0.1:
		parts = append(parts, "Taking medication consistently may help your mood slightly.")
	}

	return strings.Join(parts, " ")
}

func round3(value float64) float64 {
	return math.Round(value*1000) / 1000
}
