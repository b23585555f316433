package service

import (
	"context"
	"fmt"
	"strings"

	"crewvar-backend/internal/config"
	"crewvar-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	cfg config.SendGridConfig
}

func NewEmailService(cfg config.SendGridConfig) EmailService {
	return &sendGridEmailService{cfg: cfg}
}

func (s *sendGridEmailService) SendVerificationEmail(ctx context.Context, email, name, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", strings.TrimRight(s.cfg.BaseURL, "/"), token)
	subject := "Verify your Crewvar email"
	plain := fmt.Sprintf("Hi %s,\n\nPlease verify your email address by opening this link:\n%s\n\nThe link expires in 48 hours.", name, link)
	html := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Please verify your email address to continue setting up your Crewvar profile.</p>
<p><a href="%s">Verify my email</a></p>
<p>The link expires in 48 hours. If you did not sign up, you can ignore this email.</p>
</body></html>`, name, link)
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendOnboardingReminder(ctx context.Context, email, name string, missing []string) error {
	subject := "Finish setting up your Crewvar profile"
	list := strings.Join(missing, ", ")
	plain := fmt.Sprintf("Hi %s,\n\nYour Crewvar profile is almost ready. Still missing: %s.\n\nComplete it to start connecting with crew on board.", name, list)

	var items strings.Builder
	for _, m := range missing {
		fmt.Fprintf(&items, "<li>%s</li>", m)
	}
	html := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Your Crewvar profile is almost ready. A few steps remain:</p>
<ul>%s</ul>
<p>Complete them to start connecting with crew on board.</p>
</body></html>`, name, items.String())
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *sendGridEmailService) send(ctx context.Context, to, toName, subject, plain, html string) error {
	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plain, html)

	logger.ExternalServiceCall("sendgrid", "send", "subject", subject)
	client := sendgrid.NewSendClient(s.cfg.APIKey)
	response, err := client.SendWithContext(ctx, message)
	logger.ExternalServiceResult("sendgrid", "send", err, "subject", subject)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
