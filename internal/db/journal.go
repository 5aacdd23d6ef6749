package db

import "gorm.io/gorm"

// JournalEntry 记录用户日记及其情感分析结果
// SentimentScore 取值 [-1, 1]，EmotionLabel 来自封闭词表，RiskFlag 标记危机信号
// 三个派生字段仅在内容变化时重算，CreatedAt/ID 不受编辑影响
type JournalEntry struct {
	gorm.Model
	UserID         uint   `gorm:"index;not null"`
	Content        string `gorm:"type:text;not null"`
	SentimentScore float64
	EmotionLabel   string
	RiskFlag       bool
}
