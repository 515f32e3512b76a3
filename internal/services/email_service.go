package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/bagaswara/porto/internal/models"
)

// EmailService defines the interface for sending emails
type EmailService interface {
	SendContactEmail(ctx context.Context, msg models.ContactMessage) error
}

// AWSSESEmailService sends emails using AWS SES
type AWSSESEmailService struct {
	sesClient   *ses.Client
	fromAddress string
	toAddress   string
	logger      *slog.Logger
}

// NewAWSSESEmailService creates a new AWS SES email service
func NewAWSSESEmailService(region, fromAddress, toAddress string, logger *slog.Logger) (*AWSSESEmailService, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESEmailService{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		toAddress:   toAddress,
		logger:      logger,
	}, nil
}

// SendContactEmail forwards a contact form submission to the site owner.
// The visitor's address goes in Reply-To so the owner can answer directly.
func (s *AWSSESEmailService) SendContactEmail(ctx context.Context, msg models.ContactMessage) error {
	safeName := html.EscapeString(msg.Name)
	safeEmail := html.EscapeString(msg.Email)
	safeSubject := html.EscapeString(msg.Subject)
	safeMessage := html.EscapeString(msg.Message)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #f8f9fa; padding: 20px; text-align: center; border-radius: 4px; }
        .field { margin: 12px 0; }
        .label { font-weight: bold; color: #555; }
        .message { background-color: #f8f9fa; padding: 16px; border-left: 4px solid #0066cc; white-space: pre-wrap; }
        .footer { color: #666; font-size: 12px; margin-top: 20px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Contact Message</h1>
        </div>
        <div class="field"><span class="label">From:</span> %s &lt;%s&gt;</div>
        <div class="field"><span class="label">Subject:</span> %s</div>
        <div class="message">%s</div>
        <div class="footer">
            <p>Sent from the portfolio contact form. Reply to this email to answer the sender.</p>
        </div>
    </div>
</body>
</html>
`, safeName, safeEmail, safeSubject, safeMessage)

	textBody := fmt.Sprintf(`New Contact Message

From: %s <%s>
Subject: %s

%s

Sent from the portfolio contact form. Reply to this email to answer the sender.
`, msg.Name, msg.Email, msg.Subject, msg.Message)

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		ReplyToAddresses: []string{msg.Email},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(fmt.Sprintf("Portfolio contact: %s", msg.Subject)),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send contact email via SES",
			slog.String("sender", msg.Email),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("contact email sent",
		slog.String("sender", msg.Email),
		slog.String("message_id", *result.MessageId))

	return nil
}
