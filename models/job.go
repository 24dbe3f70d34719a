package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job statuses. Completed and cancelled jobs never receive reminders.
const (
	JobStatusUnscheduled = "unscheduled"
	JobStatusScheduled   = "scheduled"
	JobStatusCompleted   = "completed"
	JobStatusCancelled   = "cancelled"
)

type Job struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Number     string    `gorm:"uniqueIndex;not null" json:"number"`
	Name       string    `gorm:"not null" json:"name"`
	Status     string    `gorm:"type:varchar(20);not null;default:'unscheduled'" json:"status"`
	Type       string    `gorm:"type:varchar(30)" json:"type"` // maintenance, repair, inspection, replacement
	Office     string    `json:"office"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	LocationID *uuid.UUID `gorm:"type:uuid;index" json:"location_id"`
	UnitID     *uuid.UUID `gorm:"type:uuid;index" json:"unit_id"`

	ScheduleStart    *time.Time `gorm:"index" json:"schedule_start"`
	ScheduleDuration int        `json:"schedule_duration"` // minutes

	Description        string `gorm:"type:text" json:"description"`
	ProblemDescription string `gorm:"type:text" json:"problem_description"`

	Location  *Location     `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Unit      *Unit         `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Reminders []JobReminder `gorm:"foreignKey:JobID" json:"reminders,omitempty"`

	gorm.Model
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return
}

// IsTerminal reports whether the job can no longer be serviced.
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusCancelled
}
