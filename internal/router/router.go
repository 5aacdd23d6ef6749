package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/wellnest/internal/config"
	"github.com/wellnest/internal/db"
	"github.com/wellnest/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg *config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("wellnest_session", store))

	api := handler.NewAPI(db.DB, cfg)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	root := r.Group("/api")
	{
		auth := root.Group("/auth")
		{
			auth.POST("/register", api.Register)
			auth.POST("/login", api.Login)
			auth.POST("/logout", api.Logout)
		}

		// 需要认证的路由
		authed := root.Group("")
		authed.Use(handler.AuthRequired())
		{
			authed.GET("/users/me", api.Me)
			authed.PUT("/users/me", api.UpdateMe)
			authed.DELETE("/users/me", api.DeleteMe)

			authed.GET("/journal", api.ListJournal)
			authed.POST("/journal", api.CreateJournal)
			authed.GET("/journal/:id", api.GetJournal)
			authed.PUT("/journal/:id", api.UpdateJournal)
			authed.DELETE("/journal/:id", api.DeleteJournal)

			authed.GET("/medications", api.ListMedications)
			authed.POST("/medications", api.CreateMedication)
			authed.POST("/medications/:id/taken", api.MarkMedicationTaken)
			authed.GET("/medications/summary", api.MedicationSummary)

			authed.GET("/fitness", api.ListFitness)
			authed.POST("/fitness", api.UpsertFitness)
			authed.GET("/fitness/weekly", api.WeeklyFitness)
			authed.GET("/fitness/monthly", api.MonthlyFitness)

			authed.GET("/insights/weekly", api.WeeklyInsights)
			authed.GET("/stats", api.Stats)

			authed.GET("/circles", api.ListCircles)
			authed.POST("/circles", api.CreateCircle)
			authed.POST("/circles/:id/join", api.JoinCircle)
			authed.GET("/circles/:id/members", api.CircleMembers)
			authed.GET("/circles/:id/messages", api.CircleMessages)
			authed.POST("/circles/:id/messages", api.SendCircleMessage)

			authed.GET("/export/journal", api.ExportJournal)
			authed.GET("/export/medications", api.ExportMedications)
			authed.GET("/export/fitness", api.ExportFitness)
		}
	}

	return r
}
