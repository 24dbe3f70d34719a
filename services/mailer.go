// services/mailer.go
package services

import (
	"fmt"
	"os"
	"strings"

	"airlast-backend/models"
	"airlast-backend/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	senderName    = "Airlast HVAC"
	senderAddress = "support@airlast-management.com"
)

// Mailer sends reminder emails. Dispatch paths depend on this interface so
// tests can record sends without hitting the provider.
type Mailer interface {
	SendEmail(to, subject, text, html string) error
}

// SendGridMailer delivers mail through the SendGrid v3 API.
type SendGridMailer struct {
	apiKey string
}

func NewSendGridMailer() *SendGridMailer {
	return &SendGridMailer{apiKey: os.Getenv("SENDGRID_API_KEY")}
}

func (m *SendGridMailer) SendEmail(to, subject, text, html string) error {
	if m.apiKey == "" {
		return utils.NewConfigurationError("SENDGRID_API_KEY is not set", nil)
	}

	from := mail.NewEmail(senderName, senderAddress)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, text, html)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return utils.NewDeliveryError("Failed to send email", err)
	}
	if response.StatusCode >= 400 {
		return utils.NewDeliveryError(
			fmt.Sprintf("Email provider rejected the message (status %d)", response.StatusCode), nil)
	}
	return nil
}

// RenderReminderHTML wraps a reminder message in the branded email layout.
// Literal newlines in the message become line breaks.
func RenderReminderHTML(subject, message string) string {
	body := strings.ReplaceAll(message, "\n", "<br>")
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #0672be; padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0;">Airlast HVAC</h1>
  </div>
  <div style="padding: 20px; border: 1px solid #ddd; border-top: none;">
    <div style="background-color: #f0f7ff; padding: 15px; border-radius: 5px; margin: 15px 0; border-left: 4px solid #0672be;">
      <h2 style="margin-top: 0; color: #0672be;">%s</h2>
    </div>
    <div style="line-height: 1.6; color: #333;">%s</div>
    <div style="margin-top: 20px; padding-top: 20px; border-top: 1px solid #eee;">
      <p style="margin: 0; color: #666; font-size: 14px;">
        This is an automated reminder from Airlast HVAC Management System.
      </p>
    </div>
  </div>
  <div style="background-color: #f5f5f5; padding: 15px; text-align: center; font-size: 12px; color: #666;">
    <p>&copy; 2025 Airlast HVAC. All rights reserved.</p>
    <p>1650 Marietta Boulevard Northwest, Atlanta, GA 30318</p>
  </div>
</div>`, subject, body)
}

// BuildJobReminderEmail renders the upcoming-job notice sent by the pending
// reminder processor.
func BuildJobReminderEmail(job *models.Job) (subject, text, html string) {
	contactName := job.ContactName
	if contactName == "" {
		contactName = "Customer"
	}

	jobDate := "Unscheduled"
	if job.ScheduleStart != nil {
		jobDate = job.ScheduleStart.Format("Monday, January 2, 2006 at 3:04 PM")
	}

	location := "No location specified"
	if job.Location != nil {
		location = job.Location.FullAddress()
	}

	subject = fmt.Sprintf("Upcoming Job Reminder: %s (Job #%s)", job.Name, job.Number)

	text = fmt.Sprintf(`Hello %s,

This is a reminder about your upcoming job:

Job #%s: %s
Scheduled for: %s
Location: %s

Please ensure you are prepared for this appointment. If you need to reschedule, please contact us as soon as possible.

Thank you,
Airlast HVAC Team`, contactName, job.Number, job.Name, jobDate, location)

	html = fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #0672be; padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0;">Airlast HVAC</h1>
  </div>
  <div style="padding: 20px; border: 1px solid #ddd; border-top: none;">
    <p>Hello %s,</p>
    <p>This is a reminder about your upcoming job:</p>
    <div style="background-color: #f0f7ff; padding: 15px; border-radius: 5px; margin: 15px 0;">
      <h2 style="margin-top: 0; color: #0672be;">Job #%s: %s</h2>
      <p><strong>Scheduled for:</strong> %s</p>
      <p><strong>Location:</strong> %s</p>
    </div>
    <p>Please ensure you are prepared for this appointment. If you need to reschedule, please contact us as soon as possible.</p>
    <p>Thank you,<br>Airlast HVAC Team</p>
  </div>
  <div style="background-color: #f5f5f5; padding: 15px; text-align: center; font-size: 12px; color: #666;">
    <p>&copy; 2025 Airlast HVAC. All rights reserved.</p>
    <p>1650 Marietta Boulevard Northwest, Atlanta, GA 30318</p>
  </div>
</div>`, contactName, job.Number, job.Name, jobDate, location)

	return subject, text, html
}
