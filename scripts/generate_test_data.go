package main

import (
	"fmt"
	"log"
	"time"

	"github.com/wellnest/internal/analytics"
	"github.com/wellnest/internal/config"
	"github.com/wellnest/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// 测试数据生成器：写入一个演示账号与最近两周的日记、用药、运动记录
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	fmt.Println("generating demo data...")

	user := createDemoUser()
	createDemoJournal(user.ID)
	createDemoMedication(user.ID)
	createDemoFitness(user.ID)

	fmt.Println("done. log in as demo@wellnest.local / demo1234")
}

func createDemoUser() *db.User {
	var existing db.User
	if err := db.DB.Where("email = ?", "demo@wellnest.local").First(&existing).Error; err == nil {
		fmt.Println("demo user already exists, reusing")
		return &existing
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	user := db.User{
		Email:       "demo@wellnest.local",
		Password:    string(hashed),
		Name:        "Demo",
		AgeRange:    "25-34",
		PrimaryGoal: db.GoalMood,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatal("failed to create demo user: ", err)
	}
	return &user
}

func createDemoJournal(userID uint) {
	notes := []string{
		"Slept well and had a great morning walk, feeling grateful",
		"Work was stressful and I felt overwhelmed most of the day",
		"A calm, quiet evening with a good book",
		"Tired and a bit down, skipped the gym again",
		"Amazing day with friends, so much joy",
		"Feeling anxious about the week ahead",
		"An ordinary day, nothing special",
		"Happy with my progress this week, excited for more",
		"Frustrated with myself, everything felt bad",
		"Peaceful afternoon, feeling content and relaxed",
		"Exhausted after a long shift",
		"Wonderful dinner, I love this little routine",
		"Sad and lonely tonight",
		"Good workout, feeling better already",
	}

	for i, note := range notes {
		score, err := analytics.Analyze(note)
		if err != nil {
			log.Fatal("failed to score demo note: ", err)
		}

		entry := db.JournalEntry{
			UserID:         userID,
			Content:        note,
			SentimentScore: score.Sentiment,
			EmotionLabel:   string(score.Emotion),
			RiskFlag:       score.RiskFlag,
		}
		entry.CreatedAt = dayStart(-(len(notes) - 1 - i)).Add(20 * time.Hour)

		if err := db.DB.Create(&entry).Error; err != nil {
			log.Fatal("failed to create demo journal entry: ", err)
		}
	}
	fmt.Printf("created %d journal entries\n", len(notes))
}

func createDemoMedication(userID uint) {
	medication := db.Medication{
		UserID:          userID,
		Name:            "Vitamin D",
		Dosage:          "1000 IU",
		FrequencyPerDay: 1,
		ReminderTime:    "08:30",
	}
	if err := db.DB.Create(&medication).Error; err != nil {
		log.Fatal("failed to create demo medication: ", err)
	}

	// 最近 14 天里随手漏掉两天，让依从率与连胜看起来真实
	for i := 0; i < 14; i++ {
		if i == 3 || i == 9 {
			continue
		}
		logEntry := db.MedicationLog{
			MedicationID: medication.ID,
			UserID:       userID,
			TakenDate:    dayStart(-i),
			Taken:        true,
		}
		if err := db.DB.Create(&logEntry).Error; err != nil {
			log.Fatal("failed to create demo medication log: ", err)
		}
	}
	fmt.Println("created demo medication with 12 taken doses")
}

func createDemoFitness(userID uint) {
	intensities := []string{db.IntensityLow, db.IntensityMedium, db.IntensityHigh}

	for i := 0; i < 14; i++ {
		if i%4 == 3 {
			continue
		}
		logEntry := db.FitnessLog{
			UserID:            userID,
			LogDate:           dayStart(-i),
			ActivityCompleted: i%3 != 2,
			Steps:             4000 + (i%5)*1500,
			MinutesExercised:  20 + (i%4)*10,
			Intensity:         intensities[i%3],
		}
		if err := db.DB.Create(&logEntry).Error; err != nil {
			log.Fatal("failed to create demo fitness log: ", err)
		}
	}
	fmt.Println("created demo fitness logs")
}

func dayStart(offsetDays int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, offsetDays)
}
