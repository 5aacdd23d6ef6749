package db

import (
	"time"

	"gorm.io/gorm"
)

// Medication 定义用药计划
// FrequencyPerDay 为每日应服剂次，依从率以此推算；ReminderTime 格式 15:04
type Medication struct {
	gorm.Model
	UserID          uint   `gorm:"index;not null"`
	Name            string `gorm:"not null"`
	Dosage          string
	FrequencyPerDay int `gorm:"default:1"`
	ReminderTime    string
}

// MedicationLog 记录某药某日是否已服
// MedicationID + TakenDate 采用唯一索引，同日重复写入走更新（last-write-wins）
type MedicationLog struct {
	gorm.Model
	MedicationID uint       `gorm:"index;index:idx_med_log_unique,unique"`
	Medication   Medication `gorm:"constraint:OnDelete:CASCADE"`
	UserID       uint       `gorm:"index"`
	TakenDate    time.Time  `gorm:"index:idx_med_log_unique,unique"`
	Taken        bool
}

// TableName 重写确保唯一索引作用到 medication_id + taken_date
func (MedicationLog) TableName() string {
	return "medication_logs"
}
