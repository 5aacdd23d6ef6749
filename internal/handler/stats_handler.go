package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Stats 返回仪表盘使用的三个领域计数
func (a *API) Stats(c *gin.Context) {
	userID := currentUserID(c)

	stats, err := a.stats.Overview(userID, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	payload := gin.H{
		"journal": gin.H{
			"total_entries":     stats.Journal.TotalEntries,
			"entries_this_week": stats.Journal.EntriesThisWeek,
		},
		"medications": gin.H{
			"total_medications":     stats.Medications.TotalMedications,
			"doses_taken_this_week": stats.Medications.DosesTakenThisWeek,
			"current_streak":        stats.Medications.CurrentStreak,
		},
		"fitness": gin.H{
			"total_logs":            stats.Fitness.TotalLogs,
			"days_active_this_week": stats.Fitness.DaysActiveThisWeek,
			"total_steps_this_week": stats.Fitness.TotalStepsThisWeek,
			"current_streak":        stats.Fitness.CurrentStreak,
		},
	}

	if user, err := a.users.Get(userID); err == nil {
		payload["user"] = userToPayload(user)
	}

	c.JSON(http.StatusOK, payload)
}
