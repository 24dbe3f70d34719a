package main

import (
	"fmt"
	"log"
	"os"

	"airlast-backend/config"
	"airlast-backend/models"
	"airlast-backend/routes"
	"airlast-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Unit{},
		&models.Job{},
		&models.JobReminder{},
		&models.Setting{},
	)
}

func main() {

	reminderService := services.NewReminderService(config.DB, services.NewSendGridMailer())
	reminderService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
