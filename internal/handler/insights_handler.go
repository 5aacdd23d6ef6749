package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/internal/service"
)

// WeeklyInsights 返回情绪均值、相关性、次日预测与文字摘要
func (a *API) WeeklyInsights(c *gin.Context) {
	summary, err := a.insights.WeeklySummary(currentUserID(c), time.Now())
	if err != nil {
		if errors.Is(err, service.ErrDataUnavailable) {
			respondError(c, http.StatusServiceUnavailable, "insights are temporarily unavailable")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to compute insights")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"avg_mood":               summary.AvgMood,
		"predicted_next_mood":    summary.PredictedNextMood,
		"fitness_correlation":    summary.FitnessCorrelation,
		"medication_correlation": summary.MedicationCorrelation,
		"summary":                summary.Summary,
	})
}
