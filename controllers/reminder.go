// controllers/reminder.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"airlast-backend/config"
	"airlast-backend/models"
	"airlast-backend/services"
	"airlast-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var reminderService *services.ReminderService

// SetReminderService installs the service used by the reminder handlers.
// Called once during router setup; tests install a service with a fake
// mailer.
func SetReminderService(s *services.ReminderService) {
	reminderService = s
}

func getReminderService() *services.ReminderService {
	if reminderService == nil {
		reminderService = services.NewReminderService(config.DB, services.NewSendGridMailer())
	}
	return reminderService
}

// ScheduleJobReminders runs the reminder scheduling workflow.
func ScheduleJobReminders(c *gin.Context) {
	result, err := getReminderService().ScheduleReminders(time.Now())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
	})
}

// SendManualReminder dispatches a single reminder on the requested channel.
func SendManualReminder(c *gin.Context) {
	var input services.ManualReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := getReminderService().SendManualReminder(input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ProcessPendingReminders sends every pending reminder and records the
// per-reminder outcome.
func ProcessPendingReminders(c *gin.Context) {
	results, err := getReminderService().ProcessPending(time.Now())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Processed %d reminders", len(results)),
		"results": results,
	})
}

// GetJobReminders lists the reminders recorded for one job.
func GetJobReminders(c *gin.Context) {
	jobID := c.Param("id")
	jobUUID, err := uuid.Parse(jobID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var reminders []models.JobReminder
	if err := config.DB.Where("job_id = ?", jobUUID).
		Order("created_at DESC").
		Find(&reminders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminders")
		return
	}

	c.JSON(http.StatusOK, reminders)
}
