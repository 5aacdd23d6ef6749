package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/internal/db"
	"github.com/wellnest/internal/service"
)

type fitnessPayload struct {
	LogDate           string `json:"log_date"` // 2006-01-02，缺省为今天
	ActivityCompleted bool   `json:"activity_completed"`
	Steps             int    `json:"steps"`
	MinutesExercised  int    `json:"minutes_exercised"`
	Intensity         string `json:"intensity"`
}

// ListFitness 返回当前用户的运动记录
func (a *API) ListFitness(c *gin.Context) {
	logs, err := a.fitness.List(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load fitness logs")
		return
	}

	items := make([]gin.H, 0, len(logs))
	for _, log := range logs {
		items = append(items, fitnessToPayload(log))
	}

	c.JSON(http.StatusOK, gin.H{"logs": items})
}

// UpsertFitness 写入某日运动记录，同日重复提交覆盖旧值
func (a *API) UpsertFitness(c *gin.Context) {
	var payload fitnessPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	logDate := time.Now()
	if payload.LogDate != "" {
		parsed, ok := parseOptionalDate(payload.LogDate)
		if !ok {
			respondError(c, http.StatusBadRequest, "log_date must be 2006-01-02")
			return
		}
		logDate = *parsed
	}

	record, err := a.fitness.Upsert(currentUserID(c), service.FitnessInput{
		LogDate:           logDate,
		ActivityCompleted: payload.ActivityCompleted,
		Steps:             payload.Steps,
		MinutesExercised:  payload.MinutesExercised,
		Intensity:         payload.Intensity,
	})
	if err != nil {
		if errors.Is(err, service.ErrFitnessInvalid) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to save fitness log")
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": fitnessToPayload(*record)})
}

// WeeklyFitness 返回最近 7 天的运动汇总
func (a *API) WeeklyFitness(c *gin.Context) {
	weekly, err := a.fitness.Weekly(currentUserID(c), time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to compute weekly summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_steps":    weekly.TotalSteps,
		"total_minutes":  weekly.TotalMinutes,
		"avg_intensity":  weekly.AvgIntensity,
		"days_active":    weekly.DaysActive,
		"current_streak": weekly.CurrentStreak,
	})
}

// MonthlyFitness 返回指定月份的运动汇总，缺省为当月
func (a *API) MonthlyFitness(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid month")
			return
		}
		month = parsed
	}

	monthly, err := a.fitness.Monthly(currentUserID(c), year, month)
	if err != nil {
		if errors.Is(err, service.ErrFitnessInvalid) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to compute monthly summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":            monthly.Year,
		"month":           monthly.Month,
		"total_steps":     monthly.TotalSteps,
		"total_minutes":   monthly.TotalMinutes,
		"days_active":     monthly.DaysActive,
		"avg_daily_steps": monthly.AvgDailySteps,
	})
}

func fitnessToPayload(log db.FitnessLog) gin.H {
	return gin.H{
		"id":                 log.ID,
		"log_date":           log.LogDate.Format(dateFormat),
		"activity_completed": log.ActivityCompleted,
		"steps":              log.Steps,
		"minutes_exercised":  log.MinutesExercised,
		"intensity":          log.Intensity,
	}
}
