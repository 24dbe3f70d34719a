package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder channels.
const (
	ReminderTypeEmail = "email"
	ReminderTypeInApp = "in_app"
)

// Reminder lifecycle. A reminder is created pending and moves to sent or
// failed exactly once; terminal rows are never mutated again.
const (
	ReminderStatusPending = "pending"
	ReminderStatusSent    = "sent"
	ReminderStatusFailed  = "failed"
)

// Recipient recorded for in-app reminders, which have no address.
const SystemRecipient = "system"

type JobReminder struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	JobID        uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_reminder_pending,where:status = 'pending'" json:"job_id"`
	ReminderType string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_job_reminder_pending,where:status = 'pending'" json:"reminder_type"`
	ScheduledFor time.Time  `gorm:"not null" json:"scheduled_for"`
	Recipient    string     `gorm:"not null" json:"recipient"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SentAt       *time.Time `json:"sent_at"`
	ErrorMessage string     `gorm:"type:text" json:"error_message,omitempty"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`

	gorm.Model
}

func (r *JobReminder) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
