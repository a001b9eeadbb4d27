package mailer

import (
	"bytes"
	"html/template"
	"time"

	mail "github.com/go-mail/mail/v2"
	"go.uber.org/zap"
)

// Mailer sends outbound email.
type Mailer interface {
	SendPasswordReset(to, resetURL string, expiresAt time.Time) error
}

const resetTemplate = `
{{define "subject"}}Reset your password{{end}}

{{define "plainBody"}}
Hi,

A password reset was requested for your account. Open the link below to
choose a new password:

{{.ResetURL}}

The link expires at {{.ExpiresAt}}. If you did not request a reset, you can
ignore this email.
{{end}}

{{define "htmlBody"}}
<p>Hi,</p>
<p>A password reset was requested for your account. Click the link below to choose a new password:</p>
<p><a href="{{.ResetURL}}">Reset password</a></p>
<p>The link expires at {{.ExpiresAt}}. If you did not request a reset, you can ignore this email.</p>
{{end}}
`

var resetTmpl = template.Must(template.New("reset").Parse(resetTemplate))

type smtpMailer struct {
	dialer *mail.Dialer
	sender string
}

// New creates an SMTP-backed mailer
func New(host string, port int, username, password, sender string) Mailer {
	return &smtpMailer{
		dialer: mail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

// SendPasswordReset emails a reset link to the recipient
func (m *smtpMailer) SendPasswordReset(to, resetURL string, expiresAt time.Time) error {
	data := struct {
		ResetURL  string
		ExpiresAt string
	}{
		ResetURL:  resetURL,
		ExpiresAt: expiresAt.UTC().Format(time.RFC1123),
	}

	var subject, plainBody, htmlBody bytes.Buffer
	if err := resetTmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return err
	}
	if err := resetTmpl.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return err
	}
	if err := resetTmpl.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	// SMTP hiccups are common enough to warrant a couple of retries.
	var err error
	for i := 0; i < 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
	}
	return err
}

type disabledMailer struct {
	logger *zap.Logger
}

// NewDisabled creates a mailer that only logs the reset link. Used when
// SMTP is not configured, so local development does not require a mail
// server.
func NewDisabled(logger *zap.Logger) Mailer {
	return &disabledMailer{logger: logger}
}

func (m *disabledMailer) SendPasswordReset(to, resetURL string, expiresAt time.Time) error {
	m.logger.Info("mailer disabled, password reset link not sent",
		zap.String("to", to),
		zap.String("reset_url", resetURL),
		zap.Time("expires_at", expiresAt),
	)
	return nil
}
