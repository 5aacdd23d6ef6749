package db

import (
	"time"

	"gorm.io/gorm"
)

// Intensity 的取值集合
const (
	IntensityLow    = "LOW"
	IntensityMedium = "MEDIUM"
	IntensityHigh   = "HIGH"
)

// FitnessLog 记录每日运动数据
// UserID + LogDate 采用唯一索引，同日重复提交覆盖旧值
type FitnessLog struct {
	gorm.Model
	UserID            uint      `gorm:"index;index:idx_fitness_log_unique,unique"`
	LogDate           time.Time `gorm:"index:idx_fitness_log_unique,unique"`
	ActivityCompleted bool
	Steps             int    `gorm:"default:0"`
	MinutesExercised  int    `gorm:"default:0"`
	Intensity         string `gorm:"default:LOW"`
}

// TableName 重写确保唯一索引作用到 user_id + log_date
func (FitnessLog) TableName() string {
	return "fitness_logs"
}

// ValidIntensity 校验强度取值。
func ValidIntensity(intensity string) bool {
	switch intensity {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	default:
		return false
	}
}
