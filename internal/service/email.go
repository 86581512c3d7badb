package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, toEmail, toName, assetName string, res *domain.Reservation) error {
	subject := fmt.Sprintf("Reservation %s received", res.Code)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation for %s has been received.\n\n"+
			"Reservation code: %s\nFrom: %s\nTo: %s\nTotal: %s\n\n"+
			"We will confirm your booking shortly.",
		toName, assetName, res.Code,
		res.StartDate.Format("02 Jan 2006"), res.EndDate.Format("02 Jan 2006"),
		formatCents(res.TotalPriceCents),
	)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) SendCancellationNotice(ctx context.Context, toEmail, toName, assetName string, res *domain.Reservation) error {
	subject := fmt.Sprintf("Reservation %s cancelled", res.Code)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation %s for %s (%s to %s) has been cancelled.",
		toName, res.Code, assetName,
		res.StartDate.Format("02 Jan 2006"), res.EndDate.Format("02 Jan 2006"),
	)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, toEmail, toName, assetName string, res *domain.Reservation) error {
	subject := fmt.Sprintf("Return reminder for %s", assetName)
	body := fmt.Sprintf(
		"Hello %s,\n\nA reminder that your reservation %s for %s ends on %s.",
		toName, res.Code, assetName, res.EndDate.Format("02 Jan 2006"),
	)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) send(toEmail, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d", response.StatusCode)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func formatCents(cents int32) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
