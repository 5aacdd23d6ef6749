package service

import (
	"testing"
	"time"

	"github.com/wellnest/internal/db"
)

func TestStatsOverview(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	journal := NewJournalService(db.DB)
	meds := NewMedicationService(db.DB)
	fitness := NewFitnessService(db.DB)
	svc := NewStatsService(db.DB)

	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)

	// 两条日记：一条新写入，一条在窗口外
	if _, err := journal.Create(1, "a good day"); err != nil {
		t.Fatalf("journal Create returned error: %v", err)
	}
	old := db.JournalEntry{UserID: 1, Content: "long ago", SentimentScore: 0}
	old.CreatedAt = today.AddDate(0, 0, -30)
	if err := db.DB.Create(&old).Error; err != nil {
		t.Fatalf("seed old entry: %v", err)
	}

	med, err := meds.Create(1, MedicationInput{Name: "Sertraline"})
	if err != nil {
		t.Fatalf("medication Create returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := meds.MarkTaken(1, med.ID, today.AddDate(0, 0, -i), true); err != nil {
			t.Fatalf("MarkTaken returned error: %v", err)
		}
	}

	for i := 0; i < 2; i++ {
		if _, err := fitness.Upsert(1, FitnessInput{
			LogDate:           today.AddDate(0, 0, -i),
			ActivityCompleted: true,
			Steps:             6000,
		}); err != nil {
			t.Fatalf("fitness Upsert returned error: %v", err)
		}
	}

	stats, err := svc.Overview(1, today)
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}

	if stats.Journal.TotalEntries != 2 {
		t.Fatalf("expected 2 total entries, got %d", stats.Journal.TotalEntries)
	}
	if stats.Medications.TotalMedications != 1 {
		t.Fatalf("expected 1 medication, got %d", stats.Medications.TotalMedications)
	}
	if stats.Medications.DosesTakenThisWeek != 3 {
		t.Fatalf("expected 3 doses this week, got %d", stats.Medications.DosesTakenThisWeek)
	}
	if stats.Medications.CurrentStreak != 3 {
		t.Fatalf("expected medication streak 3, got %d", stats.Medications.CurrentStreak)
	}
	if stats.Fitness.TotalLogs != 2 {
		t.Fatalf("expected 2 fitness logs, got %d", stats.Fitness.TotalLogs)
	}
	if stats.Fitness.TotalStepsThisWeek != 12000 {
		t.Fatalf("expected 12000 steps this week, got %d", stats.Fitness.TotalStepsThisWeek)
	}
	if stats.Fitness.DaysActiveThisWeek != 2 || stats.Fitness.CurrentStreak != 2 {
		t.Fatalf("unexpected fitness stats: %+v", stats.Fitness)
	}
}

func TestStatsOverviewEmptyUser(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewStatsService(db.DB)

	stats, err := svc.Overview(1, time.Now())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}

	if stats.Journal.TotalEntries != 0 ||
		stats.Medications.TotalMedications != 0 ||
		stats.Fitness.TotalLogs != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}
