package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/internal/analytics"
	"github.com/wellnest/internal/db"
	"github.com/wellnest/internal/service"
)

type journalPayload struct {
	Content string `json:"content"`
}

// ListJournal 返回当前用户的日记，最新在前
func (a *API) ListJournal(c *gin.Context) {
	entries, err := a.journal.List(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load journal")
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, journalToPayload(entry))
	}

	c.JSON(http.StatusOK, gin.H{"entries": items})
}

// CreateJournal 写入日记并即时打分
func (a *API) CreateJournal(c *gin.Context) {
	var payload journalPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	entry, err := a.journal.Create(currentUserID(c), payload.Content)
	if err != nil {
		if errors.Is(err, analytics.ErrEmptyContent) {
			respondError(c, http.StatusBadRequest, "content must not be empty")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": journalToPayload(*entry)})
}

// GetJournal 返回单条日记
func (a *API) GetJournal(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid entry id")
		return
	}

	entry, err := a.journal.Get(currentUserID(c), id)
	if err != nil {
		handleJournalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": journalToPayload(*entry)})
}

// UpdateJournal 编辑日记；内容变化时重新打分
func (a *API) UpdateJournal(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid entry id")
		return
	}

	var payload journalPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	entry, err := a.journal.Update(currentUserID(c), id, payload.Content)
	if err != nil {
		if errors.Is(err, analytics.ErrEmptyContent) {
			respondError(c, http.StatusBadRequest, "content must not be empty")
			return
		}
		handleJournalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": journalToPayload(*entry)})
}

// DeleteJournal 删除日记
func (a *API) DeleteJournal(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := a.journal.Delete(currentUserID(c), id); err != nil {
		handleJournalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func journalToPayload(entry db.JournalEntry) gin.H {
	return gin.H{
		"id":              entry.ID,
		"content":         entry.Content,
		"sentiment_score": entry.SentimentScore,
		"sentiment_label": analytics.SentimentLabel(entry.SentimentScore),
		"emotion_label":   entry.EmotionLabel,
		"risk_flag":       entry.RiskFlag,
		"created_at":      entry.CreatedAt.Format(time.RFC3339),
		"updated_at":      entry.UpdatedAt.Format(time.RFC3339),
	}
}

func handleJournalError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrJournalNotFound) {
		respondError(c, http.StatusNotFound, "entry not found")
		return
	}
	respondError(c, http.StatusInternalServerError, "journal operation failed")
}
