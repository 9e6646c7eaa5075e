package router

import (
	"github.com/gin-gonic/gin"

	"personal-color-agent-backend/controller"
	"personal-color-agent-backend/middleware"
)

func Register() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", controller.Health)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/session", controller.StartSession)
			protected.GET("/sessions", controller.GetSessions)
			protected.POST("/session/:id/close", controller.CloseSession)
			protected.GET("/session/:id/history", controller.GetHistory)
			protected.POST("/session/:id/welcome", controller.Welcome)
			protected.POST("/session/:id/report", controller.ForceReport)

			protected.POST("/chat", controller.Chat)
			protected.POST("/chat/stream", controller.ChatStream)

			protected.GET("/reports", controller.GetReports)
			protected.GET("/report/:uid", controller.GetReport)
			protected.DELETE("/report/:uid", controller.DeleteReport)

			protected.GET("/survey", controller.GetSurvey)
			protected.POST("/survey", controller.SubmitSurvey)

			protected.GET("/influencers", controller.GetInfluencers)

			protected.POST("/kb/query", controller.QueryKnowledge)
			protected.POST("/kb/refresh", controller.RefreshKnowledge)
		}
	}

	return r
}
