package service

import (
	"fmt"
	"time"

	"github.com/wellnest/internal/analytics"
	"github.com/wellnest/internal/db"
	"gorm.io/gorm"
)

// RecordStore 为洞察引擎提供按日期区间取数的只读快照。
// 引擎本身不做任何 I/O，所有读取集中在这里。
type RecordStore interface {
	// MoodSeries 返回逐日平均情感分值
	MoodSeries(userID uint, start, end time.Time) (analytics.DailySeries, error)
	// FitnessSeries 返回逐日运动综合分（步数/1000 + 分钟/30 + 完成加 1）
	FitnessSeries(userID uint, start, end time.Time) (analytics.DailySeries, error)
	// AdherenceSeries 返回逐日服药依从度（0~1）；未配置药物时返回空序列
	AdherenceSeries(userID uint, start, end time.Time) (analytics.DailySeries, error)
}

// GormRecordStore 是 RecordStore 的数据库实现
type GormRecordStore struct {
	db *gorm.DB
}

// NewGormRecordStore 构造 GormRecordStore
func NewGormRecordStore(gdb *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: gdb}
}

// MoodSeries 把区间内的日记按日期分组，取当日情感分值的均值。
func (r *GormRecordStore) MoodSeries(userID uint, start, end time.Time) (analytics.DailySeries, error) {
	var entries []db.JournalEntry
	if err := r.db.Where("user_id = ?", userID).
		Where("created_at BETWEEN ? AND ?", normalizeToDate(start), normalizeToDate(end).AddDate(0, 0, 1)).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("fetch journal entries: %w", err)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, entry := range entries {
		key := analytics.DateKey(entry.CreatedAt)
		sums[key] += entry.SentimentScore
		counts[key]++
	}

	series := make(analytics.DailySeries, len(sums))
	for key, sum := range sums {
		series[key] = sum / float64(counts[key])
	}
	return series, nil
}

// FitnessSeries 为每个有记录的日期计算综合分。
func (r *GormRecordStore) FitnessSeries(userID uint, start, end time.Time) (analytics.DailySeries, error) {
	var logs []db.FitnessLog
	if err := r.db.Where("user_id = ?", userID).
		Where("log_date BETWEEN ? AND ?", normalizeToDate(start), normalizeToDate(end)).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("fetch fitness logs: %w", err)
	}

	series := make(analytics.DailySeries, len(logs))
	for _, log := range logs {
		score := float64(log.Steps)/1000 + float64(log.MinutesExercised)/30
		if log.ActivityCompleted {
			score++
		}
		series[analytics.DateKey(log.LogDate)] = score
	}
	return series, nil
}

// AdherenceSeries 为区间内每一天给出 0~1 的依从度，缺失日志按 0 计。
func (r *GormRecordStore) AdherenceSeries(userID uint, start, end time.Time) (analytics.DailySeries, error) {
	var medications []db.Medication
	if err := r.db.Where("user_id = ?", userID).Find(&medications).Error; err != nil {
		return nil, fmt.Errorf("fetch medications: %w", err)
	}

	if len(medications) == 0 {
		return analytics.DailySeries{}, nil
	}

	medIDs := make([]uint, 0, len(medications))
	scheduledPerDay := 0
	for _, m := range medications {
		medIDs = append(medIDs, m.ID)
		scheduledPerDay += m.FrequencyPerDay
	}

	var logs []db.MedicationLog
	if err := r.db.Where("medication_id IN ?", medIDs).
		Where("taken_date BETWEEN ? AND ?", normalizeToDate(start), normalizeToDate(end)).
		Where("taken = ?", true).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("fetch medication logs: %w", err)
	}

	takenPerDay := make(map[string]int)
	for _, log := range logs {
		takenPerDay[analytics.DateKey(log.TakenDate)]++
	}

	series := make(analytics.DailySeries)
	for day := normalizeToDate(start); !day.After(normalizeToDate(end)); day = day.AddDate(0, 0, 1) {
		key := analytics.DateKey(day)
		adherence := float64(takenPerDay[key]) / float64(scheduledPerDay)
		if adherence > 1.0 {
			adherence = 1.0
		}
		series[key] = adherence
	}
	return series, nil
}
