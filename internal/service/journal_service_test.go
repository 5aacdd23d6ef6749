package service

import (
	"errors"
	"testing"

	"github.com/wellnest/internal/analytics"
	"github.com/wellnest/internal/db"
)

func TestJournalCreateScoresContent(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewJournalService(db.DB)

	entry, err := svc.Create(1, "I am happy and grateful for this wonderful day")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if entry.SentimentScore != 1.0 {
		t.Fatalf("expected score 1.0, got %v", entry.SentimentScore)
	}
	if entry.EmotionLabel != string(analytics.EmotionHappy) {
		t.Fatalf("expected Happy, got %s", entry.EmotionLabel)
	}
	if entry.RiskFlag {
		t.Fatal("unexpected risk flag")
	}
}

func TestJournalCreateRejectsEmptyContent(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewJournalService(db.DB)

	if _, err := svc.Create(1, "   \n"); !errors.Is(err, analytics.ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestJournalUpdateRescoresButKeepsIdentity(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewJournalService(db.DB)

	entry, err := svc.Create(1, "today was a great day")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	originalID := entry.ID
	originalCreatedAt := entry.CreatedAt

	updated, err := svc.Update(1, entry.ID, "today was a terrible and miserable day")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.ID != originalID {
		t.Fatalf("ID changed on edit: %d vs %d", originalID, updated.ID)
	}
	if !updated.CreatedAt.Equal(originalCreatedAt) {
		t.Fatalf("CreatedAt changed on edit: %v vs %v", originalCreatedAt, updated.CreatedAt)
	}
	if updated.SentimentScore >= 0 {
		t.Fatalf("expected negative score after edit, got %v", updated.SentimentScore)
	}
	if updated.EmotionLabel != string(analytics.EmotionSad) {
		t.Fatalf("expected Sad after edit, got %s", updated.EmotionLabel)
	}
}

func TestJournalUpdateDetectsRisk(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewJournalService(db.DB)

	entry, err := svc.Create(1, "an ordinary day")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(1, entry.ID, "I feel like I want to die")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.RiskFlag {
		t.Fatal("expected risk flag after edit")
	}
}

func TestJournalOwnershipScoping(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewJournalService(db.DB)

	entry, err := svc.Create(1, "mine alone")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Get(2, entry.ID); !errors.Is(err, ErrJournalNotFound) {
		t.Fatalf("expected ErrJournalNotFound for other user, got %v", err)
	}
	if err := svc.Delete(2, entry.ID); !errors.Is(err, ErrJournalNotFound) {
		t.Fatalf("expected ErrJournalNotFound for other user, got %v", err)
	}

	if err := svc.Delete(1, entry.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	entries, err := svc.List(1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries after delete, got %d", len(entries))
	}
}
