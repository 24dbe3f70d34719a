package controllers

import (
	"errors"
	"net/http"
	"time"

	"airlast-backend/config"
	"airlast-backend/models"
	"airlast-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateJobInput defines the expected JSON structure for creating a job
type CreateJobInput struct {
	Number             string     `json:"number" binding:"required"`
	Name               string     `json:"name" binding:"required"`
	Type               string     `json:"type" binding:"omitempty,oneof=maintenance repair inspection replacement"`
	Office             string     `json:"office"`
	ContactName        string     `json:"contact_name"`
	ContactEmail       string     `json:"contact_email"`
	ContactPhone       string     `json:"contact_phone"`
	LocationID         *uuid.UUID `json:"location_id"`
	UnitID             *uuid.UUID `json:"unit_id"`
	ScheduleStart      *time.Time `json:"schedule_start"`
	ScheduleDuration   int        `json:"schedule_duration"`
	Description        string     `json:"description"`
	ProblemDescription string     `json:"problem_description"`
}

// UpdateJobInput defines the expected JSON structure for updating a job
type UpdateJobInput struct {
	Name               *string    `json:"name"`
	Status             *string    `json:"status" binding:"omitempty,oneof=unscheduled scheduled completed cancelled"`
	Type               *string    `json:"type"`
	Office             *string    `json:"office"`
	ContactName        *string    `json:"contact_name"`
	ContactEmail       *string    `json:"contact_email"`
	ContactPhone       *string    `json:"contact_phone"`
	LocationID         *uuid.UUID `json:"location_id"`
	UnitID             *uuid.UUID `json:"unit_id"`
	ScheduleStart      *time.Time `json:"schedule_start"`
	ScheduleDuration   *int       `json:"schedule_duration"`
	Description        *string    `json:"description"`
	ProblemDescription *string    `json:"problem_description"`
}

// CreateJob creates a new service job
func CreateJob(c *gin.Context) {
	var input CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.ContactEmail != "" && !utils.ValidateEmail(input.ContactEmail) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact email format")
		return
	}
	if input.ContactPhone != "" && !utils.ValidatePhone(input.ContactPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact phone format")
		return
	}

	// Check if job number already exists
	var existingJob models.Job
	if err := config.DB.Where("number = ?", input.Number).First(&existingJob).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Job with this number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	status := models.JobStatusUnscheduled
	if input.ScheduleStart != nil {
		status = models.JobStatusScheduled
	}

	job := models.Job{
		Number:             input.Number,
		Name:               input.Name,
		Status:             status,
		Type:               input.Type,
		Office:             input.Office,
		ContactName:        input.ContactName,
		ContactEmail:       input.ContactEmail,
		ContactPhone:       input.ContactPhone,
		LocationID:         input.LocationID,
		UnitID:             input.UnitID,
		ScheduleStart:      input.ScheduleStart,
		ScheduleDuration:   input.ScheduleDuration,
		Description:        input.Description,
		ProblemDescription: input.ProblemDescription,
	}

	if err := config.DB.Create(&job).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create job")
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJobs lists jobs, optionally filtered by status
func GetJobs(c *gin.Context) {
	query := config.DB.Preload("Location").Preload("Unit")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var jobs []models.Job
	if err := query.Order("schedule_start ASC NULLS LAST").Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJob retrieves a specific job by ID
func GetJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var job models.Job
	if err := config.DB.Preload("Location").Preload("Unit").Preload("Reminders").
		First(&job, "id = ?", jobUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, job)
}

// UpdateJob updates an existing job
func UpdateJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var input UpdateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var job models.Job
	if err := config.DB.First(&job, "id = ?", jobUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		job.Name = *input.Name
	}
	if input.Status != nil {
		job.Status = *input.Status
	}
	if input.Type != nil {
		job.Type = *input.Type
	}
	if input.Office != nil {
		job.Office = *input.Office
	}
	if input.ContactName != nil {
		job.ContactName = *input.ContactName
	}
	if input.ContactEmail != nil {
		if *input.ContactEmail != "" && !utils.ValidateEmail(*input.ContactEmail) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact email format")
			return
		}
		job.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		job.ContactPhone = *input.ContactPhone
	}
	if input.LocationID != nil {
		job.LocationID = input.LocationID
	}
	if input.UnitID != nil {
		job.UnitID = input.UnitID
	}
	if input.ScheduleStart != nil {
		job.ScheduleStart = input.ScheduleStart
		if job.Status == models.JobStatusUnscheduled {
			job.Status = models.JobStatusScheduled
		}
	}
	if input.ScheduleDuration != nil {
		job.ScheduleDuration = *input.ScheduleDuration
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.ProblemDescription != nil {
		job.ProblemDescription = *input.ProblemDescription
	}

	if err := config.DB.Save(&job).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update job")
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJob deletes a job
func DeleteJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	result := config.DB.Where("id = ?", jobUUID).Delete(&models.Job{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete job")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
