package controllers

import (
	"errors"
	"net/http"

	"airlast-backend/config"
	"airlast-backend/models"
	"airlast-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateReminderSettingsInput defines the expected JSON structure for the
// reminder settings admin endpoint.
type UpdateReminderSettingsInput struct {
	Enabled       *bool    `json:"enabled"`
	DaysBefore    *int     `json:"days_before" binding:"omitempty,min=0"`
	ReminderTypes []string `json:"reminder_types" binding:"omitempty,dive,oneof=email in_app"`
	DefaultEmail  *string  `json:"default_email" binding:"omitempty,email"`
}

// GetReminderSettings returns the job_reminders configuration with defaults
// applied.
func GetReminderSettings(c *gin.Context) {
	var setting models.Setting
	if err := config.DB.Where("key = ?", models.ReminderSettingsKey).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reminder settings not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	settings, err := models.ParseReminderSettings(setting.Value)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid reminder settings value")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateReminderSettings mutates the job_reminders configuration row,
// creating it on first write.
func UpdateReminderSettings(c *gin.Context) {
	var input UpdateReminderSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var setting models.Setting
	err := config.DB.Where("key = ?", models.ReminderSettingsKey).First(&setting).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if setting.Value == nil {
		setting.Value = models.JSONB{}
	}
	setting.Key = models.ReminderSettingsKey

	if input.Enabled != nil {
		setting.Value["enabled"] = *input.Enabled
	}
	if input.DaysBefore != nil {
		setting.Value["days_before"] = *input.DaysBefore
	}
	if input.ReminderTypes != nil {
		setting.Value["reminder_types"] = input.ReminderTypes
	}
	if input.DefaultEmail != nil {
		setting.Value["default_email"] = *input.DefaultEmail
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = config.DB.Create(&setting).Error
	} else {
		err = config.DB.Save(&setting).Error
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reminder settings")
		return
	}

	settings, parseErr := models.ParseReminderSettings(setting.Value)
	if parseErr != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid reminder settings value")
		return
	}

	c.JSON(http.StatusOK, settings)
}
