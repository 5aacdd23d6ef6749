package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wellnest/internal/analytics"
	"github.com/wellnest/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrMedicationNotFound 在指定药物不存在或不属于该用户时返回
	ErrMedicationNotFound = errors.New("medication not found")
	// ErrMedicationInvalid 当药物配置异常时返回
	ErrMedicationInvalid = errors.New("invalid medication configuration")
)

// MedicationService 负责用药计划、打卡与依从率统计
type MedicationService struct {
	db *gorm.DB
}

// MedicationInput 定义创建药物时可配置字段
type MedicationInput struct {
	Name            string
	Dosage          string
	FrequencyPerDay int
	ReminderTime    string
}

// MedicationSummary 汇总当前连胜与最近 7 天依从率（取整百分比）
type MedicationSummary struct {
	CurrentStreak   int
	WeeklyAdherence int
}

// NewMedicationService 构造 MedicationService
func NewMedicationService(gdb *gorm.DB) *MedicationService {
	return &MedicationService{db: gdb}
}

// Create 新建用药计划
func (s *MedicationService) Create(userID uint, input MedicationInput) (*db.Medication, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrMedicationInvalid)
	}

	frequency := input.FrequencyPerDay
	if frequency <= 0 {
		frequency = 1
	}

	reminder := strings.TrimSpace(input.ReminderTime)
	if reminder != "" {
		if _, err := time.Parse("15:04", reminder); err != nil {
			return nil, fmt.Errorf("%w: reminder time must be 15:04", ErrMedicationInvalid)
		}
	}

	medication := db.Medication{
		UserID:          userID,
		Name:            name,
		Dosage:          strings.TrimSpace(input.Dosage),
		FrequencyPerDay: frequency,
		ReminderTime:    reminder,
	}

	if err := s.db.Create(&medication).Error; err != nil {
		return nil, fmt.Errorf("create medication: %w", err)
	}
	return &medication, nil
}

// List 返回该用户的全部用药计划
func (s *MedicationService) List(userID uint) ([]db.Medication, error) {
	var medications []db.Medication
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&medications).Error; err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	return medications, nil
}

// MarkTaken 记录某药某日是否已服。同日重复写入覆盖旧值（last-write-wins）。
func (s *MedicationService) MarkTaken(userID, medicationID uint, takenDate time.Time, taken bool) (*db.MedicationLog, error) {
	var medication db.Medication
	if err := s.db.Where("id = ? AND user_id = ?", medicationID, userID).First(&medication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMedicationNotFound
		}
		return nil, fmt.Errorf("find medication: %w", err)
	}

	logDate := normalizeToDate(takenDate)
	record := db.MedicationLog{
		MedicationID: medicationID,
		UserID:       userID,
		TakenDate:    logDate,
		Taken:        taken,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "medication_id"}, {Name: "taken_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"taken", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("upsert medication log: %w", err)
	}

	if err := s.db.Where("medication_id = ? AND taken_date = ?", medicationID, logDate).
		First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload medication log: %w", err)
	}

	return &record, nil
}

// Summary 计算当前连胜与最近 7 天（含今天）的依从率。
// 应服剂次 = Σ frequency_per_day × 7；缺失日志按未服计，不从分母剔除。
func (s *MedicationService) Summary(userID uint, today time.Time) (*MedicationSummary, error) {
	medications, err := s.List(userID)
	if err != nil {
		return nil, err
	}

	if len(medications) == 0 {
		return &MedicationSummary{}, nil
	}

	end := normalizeToDate(today)
	start := end.AddDate(0, 0, -6)

	var takenCount int64
	medIDs := make([]uint, 0, len(medications))
	scheduledPerDay := 0
	for _, m := range medications {
		medIDs = append(medIDs, m.ID)
		scheduledPerDay += m.FrequencyPerDay
	}

	if err := s.db.Model(&db.MedicationLog{}).
		Where("medication_id IN ?", medIDs).
		Where("taken_date BETWEEN ? AND ?", start, end).
		Where("taken = ?", true).
		Count(&takenCount).Error; err != nil {
		return nil, fmt.Errorf("count taken doses: %w", err)
	}

	adherence := 0
	if scheduled := scheduledPerDay * 7; scheduled > 0 {
		adherence = int(math.Round(float64(takenCount) / float64(scheduled) * 100))
	}

	streakDates, err := s.qualifyingDates(medIDs, len(medications))
	if err != nil {
		return nil, err
	}

	return &MedicationSummary{
		CurrentStreak:   currentStreak(streakDates, end),
		WeeklyAdherence: adherence,
	}, nil
}

// qualifyingDates 返回「每种药当日均有已服记录」的日期集合，用于连胜计算
func (s *MedicationService) qualifyingDates(medIDs []uint, medicationCount int) (map[string]bool, error) {
	var logs []db.MedicationLog
	if err := s.db.Where("medication_id IN ?", medIDs).
		Where("taken = ?", true).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list medication logs: %w", err)
	}

	medsPerDay := make(map[string]map[uint]bool)
	for _, log := range logs {
		key := analytics.DateKey(log.TakenDate)
		if medsPerDay[key] == nil {
			medsPerDay[key] = make(map[uint]bool)
		}
		medsPerDay[key][log.MedicationID] = true
	}

	qualifying := make(map[string]bool, len(medsPerDay))
	for date, meds := range medsPerDay {
		if len(meds) >= medicationCount {
			qualifying[date] = true
		}
	}
	return qualifying, nil
}
