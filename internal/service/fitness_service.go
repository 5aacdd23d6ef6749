package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/wellnest/internal/analytics"
	"github.com/wellnest/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrFitnessInvalid 当运动记录字段非法时返回
var ErrFitnessInvalid = errors.New("invalid fitness log")

// FitnessService 负责运动打卡与周/月聚合
// 「本周」统一取截至今天的最近 7 天，而非自然周
type FitnessService struct {
	db *gorm.DB
}

// FitnessInput 定义提交运动记录时的字段
type FitnessInput struct {
	LogDate           time.Time
	ActivityCompleted bool
	Steps             int
	MinutesExercised  int
	Intensity         string
}

// WeeklyFitness 汇总最近 7 天的运动数据
type WeeklyFitness struct {
	TotalSteps    int
	TotalMinutes  int
	AvgIntensity  string
	DaysActive    int
	CurrentStreak int
}

// MonthlyFitness 汇总指定 (year, month) 的运动数据
// AvgDailySteps 以当月有记录的天数为分母，无记录时为 0
type MonthlyFitness struct {
	Year          int
	Month         int
	TotalSteps    int
	TotalMinutes  int
	DaysActive    int
	AvgDailySteps float64
}

// NewFitnessService 构造 FitnessService
func NewFitnessService(gdb *gorm.DB) *FitnessService {
	return &FitnessService{db: gdb}
}

// Upsert 提交某日运动记录。同日重复提交覆盖旧值。
func (s *FitnessService) Upsert(userID uint, input FitnessInput) (*db.FitnessLog, error) {
	if input.Steps < 0 || input.MinutesExercised < 0 {
		return nil, fmt.Errorf("%w: steps and minutes must be non-negative", ErrFitnessInvalid)
	}

	intensity := input.Intensity
	if intensity == "" {
		intensity = db.IntensityLow
	}
	if !db.ValidIntensity(intensity) {
		return nil, fmt.Errorf("%w: unsupported intensity %s", ErrFitnessInvalid, input.Intensity)
	}

	logDate := normalizeToDate(input.LogDate)
	record := db.FitnessLog{
		UserID:            userID,
		LogDate:           logDate,
		ActivityCompleted: input.ActivityCompleted,
		Steps:             input.Steps,
		MinutesExercised:  input.MinutesExercised,
		Intensity:         intensity,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"activity_completed", "steps", "minutes_exercised", "intensity", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("upsert fitness log: %w", err)
	}

	if err := s.db.Where("user_id = ? AND log_date = ?", userID, logDate).
		First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload fitness log: %w", err)
	}

	return &record, nil
}

// List 返回该用户的全部运动记录，最新在前
func (s *FitnessService) List(userID uint) ([]db.FitnessLog, error) {
	var logs []db.FitnessLog
	if err := s.db.Where("user_id = ?", userID).
		Order("log_date DESC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list fitness logs: %w", err)
	}
	return logs, nil
}

// Weekly 汇总截至 today 的最近 7 天
func (s *FitnessService) Weekly(userID uint, today time.Time) (*WeeklyFitness, error) {
	end := normalizeToDate(today)
	start := end.AddDate(0, 0, -6)

	var logs []db.FitnessLog
	if err := s.db.Where("user_id = ?", userID).
		Where("log_date BETWEEN ? AND ?", start, end).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list weekly fitness logs: %w", err)
	}

	streakDates, err := s.completedDates(userID)
	if err != nil {
		return nil, err
	}

	weekly := &WeeklyFitness{
		AvgIntensity:  db.IntensityLow,
		CurrentStreak: currentStreak(streakDates, end),
	}
	if len(logs) == 0 {
		return weekly, nil
	}

	intensitySum := 0
	for _, log := range logs {
		weekly.TotalSteps += log.Steps
		weekly.TotalMinutes += log.MinutesExercised
		if log.ActivityCompleted {
			weekly.DaysActive++
		}
		intensitySum += intensityRank(log.Intensity)
	}

	weekly.AvgIntensity = intensityFromRank(float64(intensitySum) / float64(len(logs)))
	return weekly, nil
}

// Monthly 按 (year, month) 汇总。没有记录的月份返回全零，而非错误。
func (s *FitnessService) Monthly(userID uint, year, month int) (*MonthlyFitness, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be 1-12", ErrFitnessInvalid)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)

	var logs []db.FitnessLog
	if err := s.db.Where("user_id = ?", userID).
		Where("log_date BETWEEN ? AND ?", start, end).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list monthly fitness logs: %w", err)
	}

	monthly := &MonthlyFitness{Year: year, Month: month}
	if len(logs) == 0 {
		return monthly, nil
	}

	for _, log := range logs {
		monthly.TotalSteps += log.Steps
		monthly.TotalMinutes += log.MinutesExercised
		if log.ActivityCompleted {
			monthly.DaysActive++
		}
	}

	// 唯一索引保证每日至多一条，len(logs) 即当月有记录的天数
	monthly.AvgDailySteps = float64(monthly.TotalSteps) / float64(len(logs))
	return monthly, nil
}

// completedDates 返回有完成记录的日期集合，用于连胜计算
func (s *FitnessService) completedDates(userID uint) (map[string]bool, error) {
	var logs []db.FitnessLog
	if err := s.db.Where("user_id = ?", userID).
		Where("activity_completed = ?", true).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list completed fitness logs: %w", err)
	}

	dates := make(map[string]bool, len(logs))
	for _, log := range logs {
		dates[analytics.DateKey(log.LogDate)] = true
	}
	return dates, nil
}

func intensityRank(intensity string) int {
	switch intensity {
	case db.IntensityHigh:
		return 3
	case db.IntensityMedium:
		return 2
	default:
		return 1
	}
}

func intensityFromRank(rank float64) string {
	switch {
	case rank < 1.5:
		return db.IntensityLow
	case rank < 2.5:
		return db.IntensityMedium
	default:
		return db.IntensityHigh
	}
}
