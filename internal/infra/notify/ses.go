package notify

import (
	"context"
	"fmt"
	"strings"

	"court-scheduler/internal/usecase/shared"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

type EmailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Mailer emails the booking contact. Events without a contact address are skipped.
type Mailer struct {
	client EmailSender
	sender string
}

func NewSESMailer(ctx context.Context, accessKeyID, secretAccessKey, region, sender string) (*Mailer, error) {
	if region == "" {
		return nil, fmt.Errorf("ses region is required")
	}
	if sender == "" {
		return nil, fmt.Errorf("ses sender is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKeyID != "" && secretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewMailer(sesv2.NewFromConfig(awsCfg), sender), nil
}

func NewMailer(client EmailSender, sender string) *Mailer {
	return &Mailer{client: client, sender: sender}
}

func (m *Mailer) Notify(ctx context.Context, ev shared.ReservationEvent) error {
	recipient := strings.TrimSpace(ev.ContactEmail)
	if recipient == "" {
		return nil
	}

	subject, body := renderEmail(ev)
	input := &sesv2.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
		FromEmailAddress: aws.String(m.sender),
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send ses email: %w", err)
	}
	return nil
}

func renderEmail(ev shared.ReservationEvent) (string, string) {
	when := fmt.Sprintf("%s %s-%s", ev.Date, ev.StartTime, ev.EndTime)

	switch ev.Type {
	case shared.EventReservationCancelled:
		body := "Your reservation for " + when + " was cancelled."
		if ev.Reason != nil {
			body += "\nReason: " + *ev.Reason
		}
		return "Reservation cancelled", body
	case shared.EventReservationConfirmed:
		return "Reservation confirmed", "Your reservation for " + when + " is confirmed."
	case shared.EventReservationCompleted:
		return "Thanks for playing", "Your reservation for " + when + " is complete."
	default:
		body := fmt.Sprintf("Your reservation for %s was received.\nStatus: %s\nPrice: %d.%02d",
			when, ev.Status, ev.PriceCents/100, ev.PriceCents%100)
		return "Reservation received", body
	}
}
