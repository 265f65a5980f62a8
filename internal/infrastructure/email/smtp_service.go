package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"awards-backend/pkg/logger"
)

var ErrNoRecipients = errors.New("email has no recipients")

type EmailService interface {
	SendEmail(ctx context.Context, req EmailRequest) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
	send     sendFunc
}

// NewSMTPEmailService sends unauthenticated SMTP, which is what the local
// mail catcher and the relay in front of production both accept.
func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
		send:     smtp.SendMail,
	}
}

func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if len(req.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(s.smtpFrom, req)
	if err := s.send(s.smtpAddr, nil, s.smtpFrom, req.To, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        strings.Join(req.To, ","),
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(from string, req EmailRequest) []byte {
	contentType := "text/plain; charset=UTF-8"
	if req.IsHTML {
		contentType = "text/html; charset=UTF-8"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(req.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", req.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n\r\n", contentType)
	b.WriteString(req.Body)
	return []byte(b.String())
}
