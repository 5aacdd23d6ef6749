package service

import (
	"errors"
	"fmt"

	"github.com/wellnest/internal/analytics"
	"github.com/wellnest/internal/db"
	"gorm.io/gorm"
)

// ErrJournalNotFound 在指定日记不存在或不属于该用户时返回
var ErrJournalNotFound = errors.New("journal entry not found")

// JournalService 负责日记的增删改查，写入时同步完成情感评分
type JournalService struct {
	db *gorm.DB
}

// NewJournalService 构造 JournalService
func NewJournalService(gdb *gorm.DB) *JournalService {
	return &JournalService{db: gdb}
}

// Create 评分并保存一条日记。空文本返回 analytics.ErrEmptyContent。
func (s *JournalService) Create(userID uint, content string) (*db.JournalEntry, error) {
	score, err := analytics.Analyze(content)
	if err != nil {
		return nil, err
	}

	entry := db.JournalEntry{
		UserID:         userID,
		Content:        content,
		SentimentScore: score.Sentiment,
		EmotionLabel:   string(score.Emotion),
		RiskFlag:       score.RiskFlag,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}
	return &entry, nil
}

// List 返回该用户的全部日记，最新在前。
func (s *JournalService) List(userID uint) ([]db.JournalEntry, error) {
	var entries []db.JournalEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

// Get 返回该用户的单条日记。
func (s *JournalService) Get(userID, id uint) (*db.JournalEntry, error) {
	var entry db.JournalEntry
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJournalNotFound
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return &entry, nil
}

// Update 修改日记内容。内容变化时重算三个派生字段，ID 与 CreatedAt 保持不变。
func (s *JournalService) Update(userID, id uint, content string) (*db.JournalEntry, error) {
	entry, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if content == entry.Content {
		return entry, nil
	}

	score, err := analytics.Analyze(content)
	if err != nil {
		return nil, err
	}

	entry.Content = content
	entry.SentimentScore = score.Sentiment
	entry.EmotionLabel = string(score.Emotion)
	entry.RiskFlag = score.RiskFlag

	if err := s.db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("update journal entry: %w", err)
	}
	return entry, nil
}

// Delete 删除该用户的单条日记。
func (s *JournalService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&db.JournalEntry{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete journal entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrJournalNotFound
	}
	return nil
}
