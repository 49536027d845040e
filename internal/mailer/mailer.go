// Package mailer sends interview invitation emails over SMTP.
package mailer

import (
	"fmt"
	"html"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/types"
)

const multipartBoundary = "hiresight-invite-boundary"

// Mailer sends candidate invitations through a configured SMTP relay.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
	log  *zap.Logger

	// send is swapped out in tests
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a Mailer. host, port and from are required; user/pass enable
// PLAIN auth and may be empty for open relays.
func New(host string, port int, user, pass, from string, log *zap.Logger) (*Mailer, error) {
	if host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if from == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	if port == 0 {
		port = 587
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Mailer{
		host: host,
		port: port,
		user: user,
		pass: pass,
		from: from,
		log:  log,
		send: smtp.SendMail,
	}, nil
}

// SendInvites delivers one invitation per candidate. Delivery failures for
// individual candidates are recorded rather than aborting the batch.
func (m *Mailer) SendInvites(req *types.InviteRequest) *types.InviteResult {
	result := &types.InviteResult{}
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := m.auth()

	for _, cand := range req.Candidates {
		if !strings.Contains(cand.Email, "@") {
			result.Failed = append(result.Failed, types.InviteFailure{
				Email:  cand.Email,
				Reason: "invalid email address",
			})
			continue
		}
		msg := m.buildMessage(cand, req)
		if err := m.send(addr, auth, m.from, []string{cand.Email}, msg); err != nil {
			m.log.Warn("invite delivery failed",
				zap.String("email", cand.Email),
				zap.Error(err))
			result.Failed = append(result.Failed, types.InviteFailure{
				Email:  cand.Email,
				Reason: err.Error(),
			})
			continue
		}
		result.Sent = append(result.Sent, cand.Email)
	}
	return result
}

func (m *Mailer) auth() smtp.Auth {
	if m.user == "" {
		return nil
	}
	return smtp.PlainAuth("", m.user, m.pass, m.host)
}

// buildMessage assembles a multipart/alternative message with plain-text and
// HTML bodies so the invite renders in any mail client.
func (m *Mailer) buildMessage(cand types.InviteCandidate, req *types.InviteRequest) []byte {
	subject := fmt.Sprintf("Interview Invitation: %s at %s", req.Role, req.Company)

	var sb strings.Builder
	sb.WriteString("From: " + m.from + "\r\n")
	sb.WriteString("To: " + cand.Email + "\r\n")
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: multipart/alternative; boundary=" + multipartBoundary + "\r\n")
	sb.WriteString("\r\n")

	sb.WriteString("--" + multipartBoundary + "\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody(cand, req))
	sb.WriteString("\r\n")

	sb.WriteString("--" + multipartBoundary + "\r\n")
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody(cand, req))
	sb.WriteString("\r\n")

	sb.WriteString("--" + multipartBoundary + "--\r\n")
	return []byte(sb.String())
}

func plainBody(cand types.InviteCandidate, req *types.InviteRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\r\n\r\n", cand.Name)
	fmt.Fprintf(&sb, "Thank you for applying for the %s position at %s.\r\n", req.Role, req.Company)
	sb.WriteString("We were impressed by your profile and would like to invite you to an interview.\r\n\r\n")
	if req.ScheduleURL != "" {
		fmt.Fprintf(&sb, "Please pick a time that works for you: %s\r\n\r\n", req.ScheduleURL)
	}
	fmt.Fprintf(&sb, "Best regards,\r\n%s Recruiting\r\n", req.Company)
	return sb.String()
}

func htmlBody(cand types.InviteCandidate, req *types.InviteRequest) string {
	name := html.EscapeString(cand.Name)
	role := html.EscapeString(req.Role)
	company := html.EscapeString(req.Company)

	var sb strings.Builder
	sb.WriteString("<html><body>")
	fmt.Fprintf(&sb, "<p>Hi %s,</p>", name)
	fmt.Fprintf(&sb, "<p>Thank you for applying for the <strong>%s</strong> position at %s. ", role, company)
	sb.WriteString("We were impressed by your profile and would like to invite you to an interview.</p>")
	if req.ScheduleURL != "" {
		fmt.Fprintf(&sb, "<p><a href=\"%s\">Pick a time that works for you</a></p>", html.EscapeString(req.ScheduleURL))
	}
	fmt.Fprintf(&sb, "<p>Best regards,<br>%s Recruiting</p>", company)
	sb.WriteString("</body></html>")
	return sb.String()
}
