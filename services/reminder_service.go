// services/reminder_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"airlast-backend/models"
	"airlast-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	mailer Mailer
}

func NewReminderService(db *gorm.DB, mailer Mailer) *ReminderService {
	return &ReminderService{db: db, mailer: mailer}
}

// ScheduleResult summarizes one scheduling run.
type ScheduleResult struct {
	RemindersCreated int    `json:"reminders_created"`
	JobsMatched      int    `json:"jobs_matched"`
	Message          string `json:"message"`
}

// DispatchResult records the outcome for one reminder processed by the
// pending dispatcher.
type DispatchResult struct {
	ReminderID string `json:"id"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// StartScheduler runs the daily reminder pass at 9 AM.
func (s *ReminderService) StartScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		result, err := s.ScheduleReminders(time.Now())
		if err != nil {
			log.Printf("Scheduled reminder run failed: %v", err)
		} else {
			log.Println(result.Message)
		}

		if _, err := s.ProcessPending(time.Now()); err != nil {
			log.Printf("Pending reminder processing failed: %v", err)
		}
	})

	c.Start()
	log.Println("Reminder scheduler started")
	return c
}

// LoadReminderSettings fetches and parses the job_reminders settings row.
func (s *ReminderService) LoadReminderSettings() (models.ReminderSettings, error) {
	var setting models.Setting
	if err := s.db.Where("key = ?", models.ReminderSettingsKey).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ReminderSettings{}, utils.NewConfigurationError("Reminder settings not found", err)
		}
		return models.ReminderSettings{}, utils.NewPersistenceError("Failed to fetch reminder settings", err)
	}

	settings, err := models.ParseReminderSettings(setting.Value)
	if err != nil {
		return models.ReminderSettings{}, utils.NewConfigurationError("Invalid reminder settings value", err)
	}
	return settings, nil
}

// ScheduleReminders creates pending reminders for jobs whose scheduled start
// falls on the configured target day. Jobs that already have a pending,
// unsent reminder are skipped entirely.
func (s *ReminderService) ScheduleReminders(now time.Time) (ScheduleResult, error) {
	settings, err := s.LoadReminderSettings()
	if err != nil {
		return ScheduleResult{}, err
	}

	if !settings.Enabled {
		return ScheduleResult{Message: "Job reminders are disabled"}, nil
	}

	start, end := utils.ReminderWindow(now, settings.DaysBefore)

	var jobs []models.Job
	if err := s.db.
		Where("schedule_start >= ? AND schedule_start < ?", start, end).
		Where("status NOT IN ?", []string{models.JobStatusCompleted, models.JobStatusCancelled}).
		Find(&jobs).Error; err != nil {
		return ScheduleResult{}, utils.NewPersistenceError("Failed to fetch jobs", err)
	}

	log.Printf("Found %d jobs scheduled for %s", len(jobs), start.Format("2006-01-02"))

	var reminders []models.JobReminder
	for _, job := range jobs {
		var pending int64
		if err := s.db.Model(&models.JobReminder{}).
			Where("job_id = ? AND status = ? AND sent_at IS NULL", job.ID, models.ReminderStatusPending).
			Count(&pending).Error; err != nil {
			log.Printf("Error checking existing reminders for job %s: %v", job.ID, err)
			continue
		}
		if pending > 0 {
			log.Printf("Reminders already exist for job %s", job.ID)
			continue
		}

		reminders = append(reminders, materializeReminders(job, settings, now)...)
	}

	if len(reminders) > 0 {
		if err := s.db.Create(&reminders).Error; err != nil {
			return ScheduleResult{}, utils.NewPersistenceError("Failed to insert reminders", err)
		}
	}

	return ScheduleResult{
		RemindersCreated: len(reminders),
		JobsMatched:      len(jobs),
		Message:          fmt.Sprintf("Scheduled %d reminders for %d jobs", len(reminders), len(jobs)),
	}, nil
}

// materializeReminders expands one job into a reminder per configured
// channel. Channels other than email and in_app are not dispatchable, so a
// configured unknown channel is skipped rather than persisted.
func materializeReminders(job models.Job, settings models.ReminderSettings, now time.Time) []models.JobReminder {
	var reminders []models.JobReminder
	for _, reminderType := range settings.ReminderTypes {
		var recipient string
		switch reminderType {
		case models.ReminderTypeEmail:
			recipient = job.ContactEmail
			if recipient == "" {
				recipient = settings.DefaultEmail
			}
		case models.ReminderTypeInApp:
			recipient = models.SystemRecipient
		default:
			log.Printf("Skipping unknown reminder type %q for job %s", reminderType, job.ID)
			continue
		}

		reminders = append(reminders, models.JobReminder{
			JobID:        job.ID,
			ReminderType: reminderType,
			ScheduledFor: now,
			Recipient:    recipient,
			Status:       models.ReminderStatusPending,
		})
	}
	return reminders
}

// ProcessPending dispatches every pending, unsent reminder. Email reminders
// go out through the mailer; in-app reminders are acknowledged without an
// external send. Each reminder is marked sent or failed individually, so one
// bad reminder never aborts the batch.
func (s *ReminderService) ProcessPending(now time.Time) ([]DispatchResult, error) {
	settings, err := s.LoadReminderSettings()
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, nil
	}

	var reminders []models.JobReminder
	if err := s.db.
		Preload("Job").Preload("Job.Location").
		Where("status = ? AND sent_at IS NULL", models.ReminderStatusPending).
		Find(&reminders).Error; err != nil {
		return nil, utils.NewPersistenceError("Failed to fetch pending reminders", err)
	}

	log.Printf("Found %d pending reminders", len(reminders))

	results := make([]DispatchResult, 0, len(reminders))
	for i := range reminders {
		reminder := &reminders[i]
		if err := s.dispatchReminder(reminder, settings); err != nil {
			log.Printf("Error processing reminder %s: %v", reminder.ID, err)
			s.markFailed(reminder, err)
			results = append(results, DispatchResult{
				ReminderID: reminder.ID.String(),
				Success:    false,
				Error:      err.Error(),
			})
			continue
		}

		if err := s.markSent(reminder, now); err != nil {
			log.Printf("Failed to update reminder %s status: %v", reminder.ID, err)
			results = append(results, DispatchResult{
				ReminderID: reminder.ID.String(),
				Success:    false,
				Error:      err.Error(),
			})
			continue
		}

		number := ""
		if reminder.Job != nil {
			number = reminder.Job.Number
		}
		results = append(results, DispatchResult{
			ReminderID: reminder.ID.String(),
			Success:    true,
			Message:    fmt.Sprintf("Reminder sent for job #%s", number),
		})
	}

	return results, nil
}

func (s *ReminderService) dispatchReminder(reminder *models.JobReminder, settings models.ReminderSettings) error {
	if reminder.ReminderType != models.ReminderTypeEmail {
		// in_app and other stored channels are surfaced inside the
		// application; nothing to send.
		return nil
	}

	if reminder.Job == nil {
		return utils.NewPersistenceError(fmt.Sprintf("Job not found for reminder %s", reminder.ID), nil)
	}

	recipient := reminder.Recipient
	if recipient == "" {
		recipient = settings.DefaultEmail
	}

	subject, text, html := BuildJobReminderEmail(reminder.Job)
	if err := s.mailer.SendEmail(recipient, subject, text, html); err != nil {
		return err
	}

	log.Printf("Email sent for reminder %s", reminder.ID)
	return nil
}

func (s *ReminderService) markSent(reminder *models.JobReminder, now time.Time) error {
	return s.db.Model(&models.JobReminder{}).
		Where("id = ?", reminder.ID).
		Updates(map[string]interface{}{
			"status":  models.ReminderStatusSent,
			"sent_at": now,
		}).Error
}

func (s *ReminderService) markFailed(reminder *models.JobReminder, cause error) {
	if err := s.db.Model(&models.JobReminder{}).
		Where("id = ?", reminder.ID).
		Updates(map[string]interface{}{
			"status":        models.ReminderStatusFailed,
			"error_message": cause.Error(),
		}).Error; err != nil {
		log.Printf("Failed to mark reminder %s failed: %v", reminder.ID, err)
	}
}

// ManualReminderInput carries a caller-triggered reminder dispatch.
type ManualReminderInput struct {
	ReminderID   string `json:"reminderId"`
	Recipient    string `json:"recipient"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	ReminderType string `json:"reminderType"`
	JobID        string `json:"jobId"`
}

// ManualReminderResult reports a completed manual dispatch.
type ManualReminderResult struct {
	Success    bool   `json:"success"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	ReminderID string `json:"reminderId"`
	JobID      string `json:"jobId"`
}

// SendManualReminder dispatches a single reminder on the requested channel.
// It never touches reminder status; the caller owns that transition.
func (s *ReminderService) SendManualReminder(input ManualReminderInput) (*ManualReminderResult, error) {
	if input.ReminderID == "" || input.Recipient == "" || input.Message == "" {
		return nil, utils.NewValidationError("Missing required fields: reminderId, recipient, message")
	}

	switch input.ReminderType {
	case models.ReminderTypeEmail:
		if input.Subject == "" {
			return nil, utils.NewValidationError("Subject is required for email reminders")
		}

		html := RenderReminderHTML(input.Subject, input.Message)
		if err := s.mailer.SendEmail(input.Recipient, input.Subject, input.Message, html); err != nil {
			return nil, err
		}

		return &ManualReminderResult{
			Success:    true,
			Type:       models.ReminderTypeEmail,
			Message:    "Manual email reminder sent successfully",
			ReminderID: input.ReminderID,
			JobID:      input.JobID,
		}, nil

	case models.ReminderTypeInApp:
		// Just acknowledge in-app reminder
		return &ManualReminderResult{
			Success:    true,
			Type:       models.ReminderTypeInApp,
			Message:    "In-app reminder acknowledged",
			ReminderID: input.ReminderID,
			JobID:      input.JobID,
		}, nil

	default:
		return nil, utils.NewUnsupportedChannelError(input.ReminderType)
	}
}
