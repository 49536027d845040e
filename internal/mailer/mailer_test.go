package mailer

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibhanwork/hiresight/internal/types"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestMailer(t *testing.T, capture *[]sentMail, fail map[string]error) *Mailer {
	t.Helper()
	m, err := New("smtp.example.com", 2525, "bot", "secret", "recruiting@example.com", nil)
	require.NoError(t, err)
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if err, ok := fail[to[0]]; ok {
			return err
		}
		*capture = append(*capture, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return m
}

func inviteRequest() *types.InviteRequest {
	return &types.InviteRequest{
		Candidates: []types.InviteCandidate{
			{Name: "Jane Doe", Email: "jane@example.com"},
			{Name: "John Roe", Email: "john@example.com"},
		},
		Role:        "Backend Engineer",
		Company:     "Acme",
		ScheduleURL: "https://cal.example.com/acme",
	}
}

func TestSendInvites(t *testing.T) {
	var sent []sentMail
	m := newTestMailer(t, &sent, nil)

	result := m.SendInvites(inviteRequest())

	assert.Equal(t, []string{"jane@example.com", "john@example.com"}, result.Sent)
	assert.Empty(t, result.Failed)
	require.Len(t, sent, 2)
	assert.Equal(t, "smtp.example.com:2525", sent[0].addr)
	assert.Equal(t, "recruiting@example.com", sent[0].from)
	assert.Equal(t, []string{"jane@example.com"}, sent[0].to)
}

func TestSendInvitesPartialFailure(t *testing.T) {
	var sent []sentMail
	m := newTestMailer(t, &sent, map[string]error{
		"john@example.com": errors.New("550 mailbox unavailable"),
	})

	result := m.SendInvites(inviteRequest())

	assert.Equal(t, []string{"jane@example.com"}, result.Sent)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "john@example.com", result.Failed[0].Email)
	assert.Contains(t, result.Failed[0].Reason, "550")
}

func TestSendInvitesRejectsBadAddress(t *testing.T) {
	var sent []sentMail
	m := newTestMailer(t, &sent, nil)

	result := m.SendInvites(&types.InviteRequest{
		Candidates: []types.InviteCandidate{{Name: "X", Email: "not-an-email"}},
		Role:       "Backend Engineer",
		Company:    "Acme",
	})

	assert.Empty(t, result.Sent)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "invalid email address", result.Failed[0].Reason)
	assert.Empty(t, sent)
}

func TestBuildMessage(t *testing.T) {
	m, err := New("smtp.example.com", 0, "", "", "recruiting@example.com", nil)
	require.NoError(t, err)

	req := inviteRequest()
	msg := string(m.buildMessage(req.Candidates[0], req))

	assert.Contains(t, msg, "To: jane@example.com")
	assert.Contains(t, msg, "MIME-Version: 1.0")
	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8")
	assert.Contains(t, msg, "Hi Jane Doe,")
	assert.Contains(t, msg, "<strong>Backend Engineer</strong>")
	assert.Contains(t, msg, "https://cal.example.com/acme")
	// closing boundary terminates the message
	assert.Contains(t, msg, "--"+multipartBoundary+"--")
}

func TestNewValidation(t *testing.T) {
	_, err := New("", 587, "", "", "from@example.com", nil)
	assert.Error(t, err)

	_, err = New("smtp.example.com", 587, "", "", "", nil)
	assert.Error(t, err)
}
