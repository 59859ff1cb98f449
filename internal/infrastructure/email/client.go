// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/resendlabs/resend-go"

	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/email/templates"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendPublishNotification(toEmail string, props templates.PublishEmailProps) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

// NewService creates a Resend-backed email service.
func NewService(apiKey, fromEmail, fromName string) (Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is required")
	}
	if fromEmail == "" {
		fromEmail = "noreply@tractstack.com"
	}
	if fromName == "" {
		fromName = "Hero Blocks"
	}
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// SendPublishNotification composes and sends the publish notification.
func (c *ResendClient) SendPublishNotification(toEmail string, props templates.PublishEmailProps) error {
	params := BuildPublishEmail(c.fromName, c.fromEmail, toEmail, props)

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send publish email via Resend: %w", err)
	}
	return nil
}

// BuildPublishEmail assembles the request without sending it.
func BuildPublishEmail(fromName, fromEmail, toEmail string, props templates.PublishEmailProps) *resend.SendEmailRequest {
	props.Heading = strings.TrimSpace(tagPattern.ReplaceAllString(props.Heading, ""))

	subject := "Hero block published"
	if props.Heading != "" {
		subject = fmt.Sprintf("Hero block published: %s", props.Heading)
	}

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader: subject,
		Content:   templates.GetPublishEmailContent(props),
	})

	return &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", fromName, fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    htmlContent,
	}
}
