package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/internal/db"
	"github.com/wellnest/internal/service"
)

type medicationPayload struct {
	Name            string `json:"name"`
	Dosage          string `json:"dosage"`
	FrequencyPerDay int    `json:"frequency_per_day"`
	ReminderTime    string `json:"reminder_time"` // 15:04，可选
}

type takenPayload struct {
	TakenDate string `json:"taken_date"` // 2006-01-02，缺省为今天
	Taken     *bool  `json:"taken"`
}

// ListMedications 返回当前用户的用药计划
func (a *API) ListMedications(c *gin.Context) {
	medications, err := a.medications.List(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load medications")
		return
	}

	items := make([]gin.H, 0, len(medications))
	for _, medication := range medications {
		items = append(items, medicationToPayload(medication))
	}

	c.JSON(http.StatusOK, gin.H{"medications": items})
}

// CreateMedication 新建用药计划
func (a *API) CreateMedication(c *gin.Context) {
	var payload medicationPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	medication, err := a.medications.Create(currentUserID(c), service.MedicationInput{
		Name:            payload.Name,
		Dosage:          payload.Dosage,
		FrequencyPerDay: payload.FrequencyPerDay,
		ReminderTime:    payload.ReminderTime,
	})
	if err != nil {
		if errors.Is(err, service.ErrMedicationInvalid) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create medication")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"medication": medicationToPayload(*medication)})
}

// MarkMedicationTaken 记录某药某日的服用状态，同日重复提交覆盖旧值
func (a *API) MarkMedicationTaken(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid medication id")
		return
	}

	var payload takenPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	takenDate := time.Now()
	if payload.TakenDate != "" {
		parsed, ok := parseOptionalDate(payload.TakenDate)
		if !ok {
			respondError(c, http.StatusBadRequest, "taken_date must be 2006-01-02")
			return
		}
		takenDate = *parsed
	}

	taken := true
	if payload.Taken != nil {
		taken = *payload.Taken
	}

	record, err := a.medications.MarkTaken(currentUserID(c), id, takenDate, taken)
	if err != nil {
		if errors.Is(err, service.ErrMedicationNotFound) {
			respondError(c, http.StatusNotFound, "medication not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to record dose")
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": medicationLogToPayload(*record)})
}

// MedicationSummary 返回当前连胜与最近 7 天依从率
func (a *API) MedicationSummary(c *gin.Context) {
	summary, err := a.medications.Summary(currentUserID(c), time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to compute summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"current_streak":   summary.CurrentStreak,
		"weekly_adherence": summary.WeeklyAdherence,
	})
}

func medicationToPayload(medication db.Medication) gin.H {
	return gin.H{
		"id":                medication.ID,
		"name":              medication.Name,
		"dosage":            medication.Dosage,
		"frequency_per_day": medication.FrequencyPerDay,
		"reminder_time":     medication.ReminderTime,
		"created_at":        medication.CreatedAt.Format(dateFormat),
	}
}

func medicationLogToPayload(log db.MedicationLog) gin.H {
	return gin.H{
		"id":            log.ID,
		"medication_id": log.MedicationID,
		"taken_date":    log.TakenDate.Format(dateFormat),
		"taken":         log.Taken,
	}
}
