package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/wellnest/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrCircleNotFound 在圈子不存在时返回
	ErrCircleNotFound = errors.New("circle not found")
	// ErrNotCircleMember 在非成员访问圈内资源时返回
	ErrNotCircleMember = errors.New("not a member of this circle")
	// ErrAlreadyCircleMember 在重复加入时返回
	ErrAlreadyCircleMember = errors.New("already a member of this circle")
	// ErrCircleInvalid 当圈子或留言内容非法时返回
	ErrCircleInvalid = errors.New("invalid circle input")
)

// 留言仅保留纯文本，任何标签一律剥除
var messageSanitizer = bluemonday.StrictPolicy()

// CircleService 负责互助圈子、成员与鼓励留言
type CircleService struct {
	db *gorm.DB
}

// NewCircleService 构造 CircleService
func NewCircleService(gdb *gorm.DB) *CircleService {
	return &CircleService{db: gdb}
}

// Create 新建圈子，创建者自动成为 OWNER 成员。
func (s *CircleService) Create(userID uint, name string) (*db.SupportCircle, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: name is required", ErrCircleInvalid)
	}

	circle := db.SupportCircle{Name: trimmed, CreatedBy: userID}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&circle).Error; err != nil {
			return err
		}
		member := db.CircleMember{CircleID: circle.ID, UserID: userID, Role: db.RoleOwner}
		return tx.Create(&member).Error
	}); err != nil {
		return nil, fmt.Errorf("create circle: %w", err)
	}

	return &circle, nil
}

// ListForUser 返回该用户加入的全部圈子。
func (s *CircleService) ListForUser(userID uint) ([]db.SupportCircle, error) {
	var circles []db.SupportCircle
	if err := s.db.
		Joins("JOIN circle_members ON circle_members.circle_id = support_circles.id").
		Where("circle_members.user_id = ?", userID).
		Where("circle_members.deleted_at IS NULL").
		Order("support_circles.created_at ASC").
		Find(&circles).Error; err != nil {
		return nil, fmt.Errorf("list circles: %w", err)
	}
	return circles, nil
}

// Join 加入圈子；重复加入返回 ErrAlreadyCircleMember。
func (s *CircleService) Join(userID, circleID uint) (*db.CircleMember, error) {
	if _, err := s.get(circleID); err != nil {
		return nil, err
	}

	var existing db.CircleMember
	err := s.db.Where("circle_id = ? AND user_id = ?", circleID, userID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyCircleMember
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check membership: %w", err)
	}

	member := db.CircleMember{CircleID: circleID, UserID: userID, Role: db.RoleMember}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, fmt.Errorf("join circle: %w", err)
	}
	return &member, nil
}

// Members 返回圈子及其成员列表。
func (s *CircleService) Members(circleID uint) (*db.SupportCircle, []db.CircleMember, error) {
	circle, err := s.get(circleID)
	if err != nil {
		return nil, nil, err
	}

	var members []db.CircleMember
	if err := s.db.Where("circle_id = ?", circleID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, nil, fmt.Errorf("list circle members: %w", err)
	}
	return circle, members, nil
}

// SendMessage 向圈内成员发送鼓励留言；发送者必须是圈子成员。
// 留言在入库前剥除所有 HTML 标签。
func (s *CircleService) SendMessage(userID, circleID, receiverID uint, message string) (*db.EncouragementMessage, error) {
	if err := s.requireMember(userID, circleID); err != nil {
		return nil, err
	}

	sanitized := strings.TrimSpace(messageSanitizer.Sanitize(message))
	if sanitized == "" {
		return nil, fmt.Errorf("%w: message is empty", ErrCircleInvalid)
	}

	record := db.EncouragementMessage{
		CircleID:   circleID,
		SenderID:   userID,
		ReceiverID: receiverID,
		Message:    sanitized,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &record, nil
}

// Messages 返回圈内留言，最新在前；读取同样要求成员身份。
func (s *CircleService) Messages(userID, circleID uint) ([]db.EncouragementMessage, error) {
	if err := s.requireMember(userID, circleID); err != nil {
		return nil, err
	}

	var messages []db.EncouragementMessage
	if err := s.db.Where("circle_id = ?", circleID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *CircleService) get(circleID uint) (*db.SupportCircle, error) {
	var circle db.SupportCircle
	if err := s.db.First(&circle, circleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCircleNotFound
		}
		return nil, fmt.Errorf("get circle: %w", err)
	}
	return &circle, nil
}

func (s *CircleService) requireMember(userID, circleID uint) error {
	if _, err := s.get(circleID); err != nil {
		return err
	}

	var member db.CircleMember
	if err := s.db.Where("circle_id = ? AND user_id = ?", circleID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotCircleMember
		}
		return fmt.Errorf("check membership: %w", err)
	}
	return nil
}
