// services/reminder_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"airlast-backend/models"
	"airlast-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ==========================
// Test Helper Functions
// ==========================

type sentEmail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (f *fakeMailer) SendEmail(to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, Text: text, HTML: html})
	return nil
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, WithoutReturning: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func newTestService(t *testing.T) (*ReminderService, sqlmock.Sqlmock, *fakeMailer) {
	db, mock := newMockDB(t)
	mailer := &fakeMailer{}
	return NewReminderService(db, mailer), mock, mailer
}

func settingsRows(value string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "key", "value"}).
		AddRow(uuid.New().String(), models.ReminderSettingsKey, []byte(value))
}

func expectSettingsQuery(mock sqlmock.Sqlmock, value string) {
	mock.ExpectQuery(`SELECT \* FROM "settings"`).WillReturnRows(settingsRows(value))
}

func jobColumns() []string {
	return []string{"id", "number", "name", "status", "contact_name", "contact_email", "schedule_start"}
}

func expectPendingCount(mock sqlmock.Sqlmock, count int64) {
	mock.ExpectQuery(`SELECT count\(\*\) FROM "job_reminders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

// ==========================
// Scheduling Workflow Tests
// ==========================

func TestScheduleRemindersDisabled(t *testing.T) {
	svc, mock, _ := newTestService(t)
	expectSettingsQuery(mock, `{"enabled": false}`)

	result, err := svc.ScheduleReminders(time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, result.RemindersCreated)
	assert.Equal(t, "Job reminders are disabled", result.Message)
	// No job query may be issued when reminders are disabled.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRemindersMissingSettings(t *testing.T) {
	svc, mock, _ := newTestService(t)
	mock.ExpectQuery(`SELECT \* FROM "settings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value"}))

	_, err := svc.ScheduleReminders(time.Now())

	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.ErrCodeConfiguration, appErr.Code)
	assert.Equal(t, 500, utils.HTTPStatus(err))
}

func TestScheduleRemindersCreatesOnePerChannel(t *testing.T) {
	svc, mock, _ := newTestService(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	scheduleStart := time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)

	expectSettingsQuery(mock, `{"enabled": true, "days_before": 7, "reminder_types": ["email", "in_app"], "default_email": "x@y.com"}`)
	mock.ExpectQuery(`SELECT \* FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows(jobColumns()).
			AddRow(uuid.New().String(), "1042", "Rooftop unit maintenance", "scheduled", "", "", scheduleStart))
	expectPendingCount(mock, 0)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "job_reminders"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	result, err := svc.ScheduleReminders(now)

	require.NoError(t, err)
	assert.Equal(t, 2, result.RemindersCreated)
	assert.Equal(t, 1, result.JobsMatched)
	assert.Equal(t, "Scheduled 2 reminders for 1 jobs", result.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRemindersSkipsJobsWithPendingReminder(t *testing.T) {
	svc, mock, _ := newTestService(t)
	scheduleStart := time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)

	expectSettingsQuery(mock, `{"enabled": true}`)
	mock.ExpectQuery(`SELECT \* FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows(jobColumns()).
			AddRow(uuid.New().String(), "1042", "Rooftop unit maintenance", "scheduled", "", "", scheduleStart))
	expectPendingCount(mock, 1)

	result, err := svc.ScheduleReminders(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 0, result.RemindersCreated)
	assert.Equal(t, "Scheduled 0 reminders for 1 jobs", result.Message)
	// No insert may happen when every job is guarded.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRemindersGuardFailureSkipsOnlyThatJob(t *testing.T) {
	svc, mock, _ := newTestService(t)
	scheduleStart := time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)

	expectSettingsQuery(mock, `{"enabled": true}`)
	mock.ExpectQuery(`SELECT \* FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows(jobColumns()).
			AddRow(uuid.New().String(), "1042", "Rooftop unit maintenance", "scheduled", "", "", scheduleStart).
			AddRow(uuid.New().String(), "1043", "Compressor repair", "scheduled", "", "ops@example.com", scheduleStart))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "job_reminders"`).
		WillReturnError(errors.New("connection reset"))
	expectPendingCount(mock, 0)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "job_reminders"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	result, err := svc.ScheduleReminders(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 2, result.RemindersCreated)
	assert.Equal(t, 2, result.JobsMatched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRemindersInsertFailure(t *testing.T) {
	svc, mock, _ := newTestService(t)
	scheduleStart := time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)

	expectSettingsQuery(mock, `{"enabled": true}`)
	mock.ExpectQuery(`SELECT \* FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows(jobColumns()).
			AddRow(uuid.New().String(), "1042", "Rooftop unit maintenance", "scheduled", "", "", scheduleStart))
	expectPendingCount(mock, 0)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "job_reminders"`).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))
	mock.ExpectRollback()

	_, err := svc.ScheduleReminders(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))

	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.ErrCodePersistence, appErr.Code)
}

// ==========================
// Materializer Tests
// ==========================

func TestMaterializeReminders(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	jobID := uuid.New()

	tests := []struct {
		name           string
		job            models.Job
		settings       models.ReminderSettings
		wantRecipients map[string]string
	}{
		{
			name: "contact email used for the email channel",
			job:  models.Job{ID: jobID, ContactEmail: "facility@example.com"},
			settings: models.ReminderSettings{
				ReminderTypes: []string{"email", "in_app"},
				DefaultEmail:  "x@y.com",
			},
			wantRecipients: map[string]string{
				"email":  "facility@example.com",
				"in_app": models.SystemRecipient,
			},
		},
		{
			name: "default email used when the job has no contact",
			job:  models.Job{ID: jobID},
			settings: models.ReminderSettings{
				ReminderTypes: []string{"email", "in_app"},
				DefaultEmail:  "x@y.com",
			},
			wantRecipients: map[string]string{
				"email":  "x@y.com",
				"in_app": models.SystemRecipient,
			},
		},
		{
			name: "unknown configured channel is skipped",
			job:  models.Job{ID: jobID, ContactEmail: "facility@example.com"},
			settings: models.ReminderSettings{
				ReminderTypes: []string{"email", "sms"},
				DefaultEmail:  "x@y.com",
			},
			wantRecipients: map[string]string{
				"email": "facility@example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminders := materializeReminders(tt.job, tt.settings, now)

			require.Len(t, reminders, len(tt.wantRecipients))
			for _, r := range reminders {
				assert.Equal(t, jobID, r.JobID)
				assert.Equal(t, models.ReminderStatusPending, r.Status)
				assert.Equal(t, now, r.ScheduledFor)
				assert.Nil(t, r.SentAt)
				want, ok := tt.wantRecipients[r.ReminderType]
				require.True(t, ok, "unexpected channel %q", r.ReminderType)
				assert.Equal(t, want, r.Recipient)
			}
		})
	}
}

// ==========================
// Manual Dispatch Tests
// ==========================

func TestSendManualReminderValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    ManualReminderInput
		wantCode utils.ErrorCode
	}{
		{
			name:     "missing recipient",
			input:    ManualReminderInput{ReminderID: "r1", Message: "hi", ReminderType: "email", Subject: "s"},
			wantCode: utils.ErrCodeValidation,
		},
		{
			name:     "missing message",
			input:    ManualReminderInput{ReminderID: "r1", Recipient: "a@b.com", ReminderType: "email", Subject: "s"},
			wantCode: utils.ErrCodeValidation,
		},
		{
			name:     "missing subject for email",
			input:    ManualReminderInput{ReminderID: "r1", Recipient: "a@b.com", Message: "hi", ReminderType: "email"},
			wantCode: utils.ErrCodeValidation,
		},
		{
			name:     "unsupported channel",
			input:    ManualReminderInput{ReminderID: "r1", Recipient: "+15550100", Message: "hi", ReminderType: "sms"},
			wantCode: utils.ErrCodeUnsupportedChannel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			svc := NewReminderService(nil, mailer)

			_, err := svc.SendManualReminder(tt.input)

			require.Error(t, err)
			var appErr *utils.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, 400, utils.HTTPStatus(err))
			assert.Empty(t, mailer.sent, "no send may happen on a rejected dispatch")
		})
	}
}

func TestSendManualReminderEmail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewReminderService(nil, mailer)

	result, err := svc.SendManualReminder(ManualReminderInput{
		ReminderID:   "r1",
		Recipient:    "facility@example.com",
		Subject:      "Upcoming maintenance",
		Message:      "We arrive Tuesday.\nPlease clear roof access.",
		ReminderType: "email",
		JobID:        "j1",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "email", result.Type)
	assert.Equal(t, "Manual email reminder sent successfully", result.Message)
	assert.Equal(t, "r1", result.ReminderID)
	assert.Equal(t, "j1", result.JobID)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "facility@example.com", mailer.sent[0].To)
	assert.Equal(t, "Upcoming maintenance", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].HTML, "We arrive Tuesday.<br>Please clear roof access.")
}

func TestSendManualReminderInApp(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewReminderService(nil, mailer)

	result, err := svc.SendManualReminder(ManualReminderInput{
		ReminderID:   "r1",
		Recipient:    "system",
		Message:      "heads up",
		ReminderType: "in_app",
		JobID:        "j1",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "in_app", result.Type)
	assert.Equal(t, "In-app reminder acknowledged", result.Message)
	assert.Empty(t, mailer.sent, "in-app dispatch has no external side effect")
}

func TestSendManualReminderDeliveryFailure(t *testing.T) {
	mailer := &fakeMailer{err: utils.NewDeliveryError("Failed to send email", errors.New("421 try later"))}
	svc := NewReminderService(nil, mailer)

	_, err := svc.SendManualReminder(ManualReminderInput{
		ReminderID:   "r1",
		Recipient:    "facility@example.com",
		Subject:      "s",
		Message:      "m",
		ReminderType: "email",
	})

	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.ErrCodeDelivery, appErr.Code)
	assert.Equal(t, 500, utils.HTTPStatus(err))
}

// ==========================
// Pending Dispatcher Tests
// ==========================

func TestProcessPendingNoReminders(t *testing.T) {
	svc, mock, mailer := newTestService(t)

	expectSettingsQuery(mock, `{"enabled": true}`)
	mock.ExpectQuery(`SELECT \* FROM "job_reminders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "reminder_type", "scheduled_for", "recipient", "status", "sent_at"}))

	results, err := svc.ProcessPending(time.Now())

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, mailer.sent)
}

func TestProcessPendingSendsEmailAndMarksSent(t *testing.T) {
	svc, mock, mailer := newTestService(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	scheduleStart := time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)
	reminderID := uuid.New()
	jobID := uuid.New()

	expectSettingsQuery(mock, `{"enabled": true}`)
	mock.ExpectQuery(`SELECT \* FROM "job_reminders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "reminder_type", "scheduled_for", "recipient", "status", "sent_at"}).
			AddRow(reminderID.String(), jobID.String(), "email", now, "facility@example.com", "pending", nil))
	mock.ExpectQuery(`SELECT \* FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows(jobColumns()).
			AddRow(jobID.String(), "1042", "Rooftop unit maintenance", "scheduled", "Pat", "facility@example.com", scheduleStart))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "job_reminders"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	results, err := svc.ProcessPending(now)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, "Reminder sent for job #1042", results[0].Message)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "facility@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "Job #1042")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPendingMarksFailedOnDeliveryError(t *testing.T) {
	svc, mock, _ := newTestService(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	scheduleStart := time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)
	reminderID := uuid.New()
	jobID := uuid.New()

	svc.mailer = &fakeMailer{err: utils.NewDeliveryError("Failed to send email", errors.New("rejected"))}

	expectSettingsQuery(mock, `{"enabled": true}`)
	mock.ExpectQuery(`SELECT \* FROM "job_reminders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "reminder_type", "scheduled_for", "recipient", "status", "sent_at"}).
			AddRow(reminderID.String(), jobID.String(), "email", now, "facility@example.com", "pending", nil))
	mock.ExpectQuery(`SELECT \* FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows(jobColumns()).
			AddRow(jobID.String(), "1042", "Rooftop unit maintenance", "scheduled", "Pat", "facility@example.com", scheduleStart))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "job_reminders"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	results, err := svc.ProcessPending(now)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "Failed to send email")
	assert.NoError(t, mock.ExpectationsWereMet())
}
