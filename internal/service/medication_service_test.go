package service

import (
	"errors"
	"testing"
	"time"

	"github.com/wellnest/internal/db"
)

func TestMedicationCreateValidation(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewMedicationService(db.DB)

	if _, err := svc.Create(1, MedicationInput{Name: "  "}); !errors.Is(err, ErrMedicationInvalid) {
		t.Fatalf("expected ErrMedicationInvalid for empty name, got %v", err)
	}

	if _, err := svc.Create(1, MedicationInput{Name: "Sertraline", ReminderTime: "25:99"}); !errors.Is(err, ErrMedicationInvalid) {
		t.Fatalf("expected ErrMedicationInvalid for bad reminder time, got %v", err)
	}

	med, err := svc.Create(1, MedicationInput{Name: "Sertraline", Dosage: "50mg", ReminderTime: "08:30"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if med.FrequencyPerDay != 1 {
		t.Fatalf("expected default frequency 1, got %d", med.FrequencyPerDay)
	}
}

func TestMedicationMarkTakenOverwritesSameDate(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewMedicationService(db.DB)
	med, err := svc.Create(1, MedicationInput{Name: "Sertraline", FrequencyPerDay: 1})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)

	if _, err := svc.MarkTaken(1, med.ID, date, true); err != nil {
		t.Fatalf("MarkTaken returned error: %v", err)
	}

	// 同日重复写入覆盖而非追加
	record, err := svc.MarkTaken(1, med.ID, date, false)
	if err != nil {
		t.Fatalf("MarkTaken returned error: %v", err)
	}
	if record.Taken {
		t.Fatal("expected taken to be overwritten to false")
	}

	var count int64
	if err := db.DB.Model(&db.MedicationLog{}).
		Where("medication_id = ?", med.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 log for the date, got %d", count)
	}
}

func TestMedicationMarkTakenRequiresOwnership(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewMedicationService(db.DB)
	med, err := svc.Create(1, MedicationInput{Name: "Sertraline"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.MarkTaken(2, med.ID, time.Now(), true); !errors.Is(err, ErrMedicationNotFound) {
		t.Fatalf("expected ErrMedicationNotFound for other user, got %v", err)
	}
}

func TestMedicationSummaryAdherence(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewMedicationService(db.DB)
	med, err := svc.Create(1, MedicationInput{Name: "Sertraline", FrequencyPerDay: 2})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)

	// 最近 7 天每天一条已服记录：7 / (2×7) = 50%
	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, -i)
		if _, err := svc.MarkTaken(1, med.ID, date, true); err != nil {
			t.Fatalf("MarkTaken returned error: %v", err)
		}
	}

	summary, err := svc.Summary(1, today)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.WeeklyAdherence != 50 {
		t.Fatalf("expected adherence 50, got %d", summary.WeeklyAdherence)
	}
	if summary.CurrentStreak != 7 {
		t.Fatalf("expected streak 7, got %d", summary.CurrentStreak)
	}
}

func TestMedicationStreakMissingTodayDoesNotBreak(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewMedicationService(db.DB)
	med, err := svc.Create(1, MedicationInput{Name: "Sertraline"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)

	// 昨天与前天已服，今天尚无记录
	for i := 1; i <= 2; i++ {
		if _, err := svc.MarkTaken(1, med.ID, today.AddDate(0, 0, -i), true); err != nil {
			t.Fatalf("MarkTaken returned error: %v", err)
		}
	}

	summary, err := svc.Summary(1, today)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.CurrentStreak != 2 {
		t.Fatalf("expected streak 2 with missing today, got %d", summary.CurrentStreak)
	}

	// 次日再查：昨天（即原 today）缺口已成事实，连胜归零
	summary, err = svc.Summary(1, today.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.CurrentStreak != 0 {
		t.Fatalf("expected streak 0 after confirmed gap, got %d", summary.CurrentStreak)
	}
}

func TestMedicationSummaryNoMedications(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewMedicationService(db.DB)

	summary, err := svc.Summary(1, time.Now())
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.CurrentStreak != 0 || summary.WeeklyAdherence != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestMedicationStreakRequiresEveryMedication(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewMedicationService(db.DB)
	first, err := svc.Create(1, MedicationInput{Name: "Sertraline"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := svc.Create(1, MedicationInput{Name: "Vitamin D"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)

	// 两种药今天都已服，昨天只服了一种
	if _, err := svc.MarkTaken(1, first.ID, today, true); err != nil {
		t.Fatalf("MarkTaken returned error: %v", err)
	}
	if _, err := svc.MarkTaken(1, second.ID, today, true); err != nil {
		t.Fatalf("MarkTaken returned error: %v", err)
	}
	if _, err := svc.MarkTaken(1, first.ID, today.AddDate(0, 0, -1), true); err != nil {
		t.Fatalf("MarkTaken returned error: %v", err)
	}

	summary, err := svc.Summary(1, today)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.CurrentStreak != 1 {
		t.Fatalf("expected streak 1, got %d", summary.CurrentStreak)
	}
}
