package service

import (
	"fmt"
	"time"

	"github.com/wellnest/internal/db"
	"gorm.io/gorm"
)

// StatsService 汇总三个领域的基础计数，供仪表盘使用
type StatsService struct {
	db          *gorm.DB
	medications *MedicationService
	fitness     *FitnessService
}

// JournalStats 日记侧计数
type JournalStats struct {
	TotalEntries    int64
	EntriesThisWeek int64
}

// MedicationStats 用药侧计数
type MedicationStats struct {
	TotalMedications   int64
	DosesTakenThisWeek int64
	CurrentStreak      int
}

// FitnessStats 运动侧计数
type FitnessStats struct {
	TotalLogs          int64
	DaysActiveThisWeek int
	TotalStepsThisWeek int
	CurrentStreak      int
}

// UserStats 聚合三个领域的计数
type UserStats struct {
	Journal     JournalStats
	Medications MedicationStats
	Fitness     FitnessStats
}

// NewStatsService 构造 StatsService
func NewStatsService(gdb *gorm.DB) *StatsService {
	return &StatsService{
		db:          gdb,
		medications: NewMedicationService(gdb),
		fitness:     NewFitnessService(gdb),
	}
}

// Overview 以 today 为基准统计各领域计数；「本周」为最近 7 天。
func (s *StatsService) Overview(userID uint, today time.Time) (*UserStats, error) {
	end := normalizeToDate(today)
	weekStart := end.AddDate(0, 0, -6)

	stats := &UserStats{}

	if err := s.db.Model(&db.JournalEntry{}).
		Where("user_id = ?", userID).
		Count(&stats.Journal.TotalEntries).Error; err != nil {
		return nil, fmt.Errorf("count journal entries: %w", err)
	}
	if err := s.db.Model(&db.JournalEntry{}).
		Where("user_id = ?", userID).
		Where("created_at >= ?", weekStart).
		Count(&stats.Journal.EntriesThisWeek).Error; err != nil {
		return nil, fmt.Errorf("count weekly journal entries: %w", err)
	}

	if err := s.db.Model(&db.Medication{}).
		Where("user_id = ?", userID).
		Count(&stats.Medications.TotalMedications).Error; err != nil {
		return nil, fmt.Errorf("count medications: %w", err)
	}
	if stats.Medications.TotalMedications > 0 {
		if err := s.db.Model(&db.MedicationLog{}).
			Where("user_id = ?", userID).
			Where("taken_date BETWEEN ? AND ?", weekStart, end).
			Where("taken = ?", true).
			Count(&stats.Medications.DosesTakenThisWeek).Error; err != nil {
			return nil, fmt.Errorf("count weekly doses: %w", err)
		}

		summary, err := s.medications.Summary(userID, end)
		if err != nil {
			return nil, err
		}
		stats.Medications.CurrentStreak = summary.CurrentStreak
	}

	if err := s.db.Model(&db.FitnessLog{}).
		Where("user_id = ?", userID).
		Count(&stats.Fitness.TotalLogs).Error; err != nil {
		return nil, fmt.Errorf("count fitness logs: %w", err)
	}

	weekly, err := s.fitness.Weekly(userID, end)
	if err != nil {
		return nil, err
	}
	stats.Fitness.DaysActiveThisWeek = weekly.DaysActive
	stats.Fitness.TotalStepsThisWeek = weekly.TotalSteps
	stats.Fitness.CurrentStreak = weekly.CurrentStreak

	return stats, nil
}
