package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settings key holding the reminder configuration singleton.
const ReminderSettingsKey = "job_reminders"

// Defaults applied when the settings value omits optional fields.
const (
	DefaultDaysBefore   = 7
	DefaultReminderFrom = "support@airlast-management.com"
)

// Setting is a key-value configuration row. The value is free-form JSON
// managed through the settings admin endpoints.
type Setting struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key   string    `gorm:"uniqueIndex;not null" json:"key"`
	Value JSONB     `gorm:"type:jsonb;default:'{}'" json:"value"`

	gorm.Model
}

func (s *Setting) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// ReminderSettings is the typed view of the "job_reminders" settings value.
type ReminderSettings struct {
	Enabled       bool     `json:"enabled"`
	DaysBefore    int      `json:"days_before"`
	ReminderTypes []string `json:"reminder_types"`
	DefaultEmail  string   `json:"default_email"`
}

// ParseReminderSettings decodes the raw settings value and fills in defaults
// for missing optional fields. The enabled flag has no default; an absent
// flag means disabled.
func ParseReminderSettings(value JSONB) (ReminderSettings, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return ReminderSettings{}, err
	}

	var settings ReminderSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return ReminderSettings{}, err
	}

	if settings.DaysBefore <= 0 {
		settings.DaysBefore = DefaultDaysBefore
	}
	if len(settings.ReminderTypes) == 0 {
		settings.ReminderTypes = []string{ReminderTypeEmail, ReminderTypeInApp}
	}
	if settings.DefaultEmail == "" {
		settings.DefaultEmail = DefaultReminderFrom
	}

	return settings, nil
}

// Custom JSONB type for settings values
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
