package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PrimaryGoal 的取值集合，注册时默认 MOOD
const (
	GoalMood       = "MOOD"
	GoalMedication = "MEDICATION"
	GoalFitness    = "FITNESS"
	GoalStress     = "STRESS"
)

// User 定义了用户模型
// AgeRange 为自由文本区间（如 "25-34"），PrimaryGoal 限定在上方常量内
type User struct {
	gorm.Model
	Email       string `gorm:"unique;not null"`
	Password    string `gorm:"not null"`
	Name        string
	AgeRange    string
	PrimaryGoal string `gorm:"default:MOOD"`
}

// ValidGoal 校验目标取值是否在允许范围内。
func ValidGoal(goal string) bool {
	switch goal {
	case GoalMood, GoalMedication, GoalFitness, GoalStress:
		return true
	default:
		return false
	}
}

// EnsureUser 存在性检查：若提供的邮箱与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的用户。
func EnsureUser(email, password string) error {
	trimmedEmail := strings.TrimSpace(email)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return DB.Create(&User{Email: trimmedEmail, Password: string(hashed)}).Error
	}

	return nil
}
