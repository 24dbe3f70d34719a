package routes

import (
	"airlast-backend/config"
	"airlast-backend/controllers"
	"airlast-backend/services"
	"airlast-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Authorization", "Content-Type", "X-Client-Info", "ApiKey"},
		ExposeHeaders:             []string{"Content-Length"},
		AllowCredentials:          false,
		OptionsResponseStatusCode: 200,
	}))

	r.Use(config.PerformanceLogger())

	controllers.SetReminderService(
		services.NewReminderService(config.DB, services.NewSendGridMailer()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Job routes
		jobs := api.Group("/jobs")
		{
			jobs.POST("", controllers.CreateJob)
			jobs.GET("", controllers.GetJobs)
			jobs.GET("/:id", controllers.GetJob)
			jobs.PUT("/:id", controllers.UpdateJob)
			jobs.DELETE("/:id", controllers.DeleteJob)
			jobs.GET("/:id/reminders", controllers.GetJobReminders)
		}

		// Location routes
		locations := api.Group("/locations")
		{
			locations.POST("", controllers.CreateLocation)
			locations.GET("", controllers.GetLocations)
			locations.GET("/:id", controllers.GetLocation)
			locations.PUT("/:id", controllers.UpdateLocation)
			locations.DELETE("/:id", controllers.DeleteLocation)
			locations.POST("/:id/units", controllers.AddUnit)
		}

		// Reminder routes
		reminders := api.Group("/reminders")
		{
			reminders.POST("/schedule", controllers.ScheduleJobReminders)
			reminders.POST("/send", controllers.SendManualReminder)
			reminders.POST("/process", controllers.ProcessPendingReminders)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("/job-reminders", controllers.GetReminderSettings)
			settings.PUT("/job-reminders", controllers.UpdateReminderSettings)
		}
	}

	return r
}
