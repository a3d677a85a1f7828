package email

import (
	"bytes"
	"fmt"
	"go-interview-portal/config"
	"html/template"
	"net/smtp"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// InvitationEmailData holds the data for interview invitation emails
type InvitationEmailData struct {
	CandidateName  string
	CandidateEmail string
	InterviewLink  string
	ExpiresAt      string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// invitationEmailTemplate is the HTML template for interview invitations
const invitationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Interview Invitation</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 12px 24px; background: #0066cc; color: white; text-decoration: none; border-radius: 4px; margin-top: 15px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>You're Invited to Interview</h1>
        </div>
        <div class="content">
            <p>Hi {{.CandidateName}},</p>
            <p>You have been invited to complete our candidate interview questionnaire.
            Your answers are saved automatically as you type, so you can leave and
            come back at any time before the invitation expires.</p>
            <p><a class="button" href="{{.InterviewLink}}">Start the Interview</a></p>
            <p>Or paste this link into your browser:</p>
            <p>{{.InterviewLink}}</p>
        </div>
        <div class="footer">
            <p>This invitation was sent to {{.CandidateEmail}} and expires on {{.ExpiresAt}}.</p>
            <p>If you were not expecting this email, you can safely ignore it.</p>
        </div>
    </div>
</body>
</html>`

// SendInvitationEmail sends an interview invitation to the candidate
func (s *EmailService) SendInvitationEmail(data InvitationEmailData) error {
	tmpl, err := template.New("invitation").Parse(invitationEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := "Your Interview Invitation"

	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		data.CandidateEmail,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{data.CandidateEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
