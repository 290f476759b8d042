package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends operator notifications via Amazon SES. It is
// disabled when no sender address is configured, in which case every send
// is a logged no-op.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	toEmail   string
	enabled   bool
	debug     bool
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service.
func NewEmailService(awsRegion, fromEmail, toEmail string, debug bool) (*EmailService, error) {
	if fromEmail == "" || toEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)
	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		toEmail:   toEmail,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled.
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendRegistrationNotice notifies the operator address that a new account
// registered.
func (s *EmailService) SendRegistrationNotice(ctx context.Context, name, mobile string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): registration of %s", mobile)
		return nil
	}
	if s.debug {
		log.Printf("[DEBUG] SendRegistrationNotice: name=%s, mobile=%s", name, mobile)
	}

	subject := "New typedrill registration"
	body := fmt.Sprintf("A new account was registered.\n\nName: %s\nMobile: %s\n", name, mobile)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{s.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send registration notice: %w", err)
	}
	return nil
}
