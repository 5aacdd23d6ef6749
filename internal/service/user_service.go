package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wellnest/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound 在用户不存在时返回
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken 在注册邮箱已被占用时返回
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials 在邮箱或密码不匹配时返回
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserInvalid 当注册或资料字段非法时返回
	ErrUserInvalid = errors.New("invalid user input")
)

// UserService 负责账号注册、认证与资料维护
type UserService struct {
	db *gorm.DB
}

// ProfileInput 定义资料更新字段；nil 表示保持不变
type ProfileInput struct {
	Name        *string
	AgeRange    *string
	PrimaryGoal *string
	Password    *string
}

// NewUserService 构造 UserService
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Register 创建新账号，密码以 bcrypt 哈希存储。
func (s *UserService) Register(email, password string) (*db.User, error) {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	if trimmedEmail == "" || !strings.Contains(trimmedEmail, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrUserInvalid)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is required", ErrUserInvalid)
	}

	var existing db.User
	err := s.db.Where("email = ?", trimmedEmail).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{Email: trimmedEmail, Password: string(hashed), PrimaryGoal: db.GoalMood}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate 校验邮箱与密码。
func (s *UserService) Authenticate(email, password string) (*db.User, error) {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))

	var user db.User
	if err := s.db.Where("email = ?", trimmedEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get 根据 ID 获取用户。
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UpdateProfile 更新资料；只改动提供的字段。
func (s *UserService) UpdateProfile(id uint, input ProfileInput) (*db.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.AgeRange != nil {
		user.AgeRange = strings.TrimSpace(*input.AgeRange)
	}
	if input.PrimaryGoal != nil {
		goal := strings.ToUpper(strings.TrimSpace(*input.PrimaryGoal))
		if !db.ValidGoal(goal) {
			return nil, fmt.Errorf("%w: unsupported goal %s", ErrUserInvalid, *input.PrimaryGoal)
		}
		user.PrimaryGoal = goal
	}
	if input.Password != nil {
		if strings.TrimSpace(*input.Password) == "" {
			return nil, fmt.Errorf("%w: password must not be empty", ErrUserInvalid)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteAccount 删除账号及其全部数据：日记、用药、运动、圈子关系与留言。
// 用户创建的圈子连同圈内留言与成员一并清除。
func (s *UserService) DeleteAccount(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&db.JournalEntry{}).Error; err != nil {
			return fmt.Errorf("delete journal entries: %w", err)
		}

		var medIDs []uint
		if err := tx.Model(&db.Medication{}).Where("user_id = ?", id).Pluck("id", &medIDs).Error; err != nil {
			return fmt.Errorf("list medications: %w", err)
		}
		if len(medIDs) > 0 {
			if err := tx.Where("medication_id IN ?", medIDs).Delete(&db.MedicationLog{}).Error; err != nil {
				return fmt.Errorf("delete medication logs: %w", err)
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&db.Medication{}).Error; err != nil {
			return fmt.Errorf("delete medications: %w", err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&db.FitnessLog{}).Error; err != nil {
			return fmt.Errorf("delete fitness logs: %w", err)
		}

		var ownedCircleIDs []uint
		if err := tx.Model(&db.SupportCircle{}).Where("created_by = ?", id).Pluck("id", &ownedCircleIDs).Error; err != nil {
			return fmt.Errorf("list owned circles: %w", err)
		}
		if len(ownedCircleIDs) > 0 {
			if err := tx.Where("circle_id IN ?", ownedCircleIDs).Delete(&db.EncouragementMessage{}).Error; err != nil {
				return fmt.Errorf("delete circle messages: %w", err)
			}
			if err := tx.Where("circle_id IN ?", ownedCircleIDs).Delete(&db.CircleMember{}).Error; err != nil {
				return fmt.Errorf("delete circle members: %w", err)
			}
			if err := tx.Delete(&db.SupportCircle{}, ownedCircleIDs).Error; err != nil {
				return fmt.Errorf("delete circles: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&db.CircleMember{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&db.EncouragementMessage{}).Error; err != nil {
			return fmt.Errorf("delete messages: %w", err)
		}

		if err := tx.Delete(&db.User{}, id).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
