package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-backend/internal/shared"
)

func TestSendEmail_BuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	svc := &smtpEmailService{
		smtpAddr: "localhost:1025",
		smtpFrom: "noreply@impactawards.dev",
		send: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		},
	}

	err := svc.SendEmail(context.Background(), EmailRequest{
		To:      []string{"voter@example.com"},
		Subject: "Hello",
		Body:    "Body text",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:1025", gotAddr)
	assert.Equal(t, "noreply@impactawards.dev", gotFrom)
	assert.Equal(t, []string{"voter@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Hello\r\n")
	assert.Contains(t, string(gotMsg), "Content-Type: text/plain; charset=UTF-8")
	assert.True(t, len(gotMsg) > 0 && string(gotMsg[len(gotMsg)-9:]) == "Body text")
}

func TestSendEmail_Errors(t *testing.T) {
	svc := &smtpEmailService{
		smtpAddr: "localhost:1025",
		send: func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		},
	}

	err := svc.SendEmail(context.Background(), EmailRequest{})
	assert.ErrorIs(t, err, ErrNoRecipients)

	err = svc.SendEmail(context.Background(), EmailRequest{To: []string{"a@b.co"}})
	assert.ErrorContains(t, err, "connection refused")
}

func TestVoteConfirmationEmail(t *testing.T) {
	req := VoteConfirmationEmail(shared.VoteConfirmationPayload{
		VoteID: "v-1",
		Email:  "voter@example.com",
		Selections: []shared.SelectionLine{
			{Category: "Business Award", Nominee: "John Smith"},
		},
		SubmittedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, []string{"voter@example.com"}, req.To)
	assert.Contains(t, req.Body, "Business Award: John Smith")
	assert.Contains(t, req.Body, "1 March 2026")
	assert.Contains(t, req.Body, "v-1")
}
