package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/sony/gobreaker/v2"
	"gopkg.in/gomail.v2"
)

// Sender delivers account mail. The SMTP relay is an external collaborator;
// callers decide what a delivery failure means.
type Sender interface {
	SendPasswordReset(to, resetURL string) error
}

type resetMailData struct {
	ResetURL    string
	ExpiryHours int
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	cb     *gobreaker.CircuitBreaker[struct{}]
	tmpl   *template.Template
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	settings := gobreaker.Settings{
		Name:    "smtp",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}

	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		cb:     gobreaker.NewCircuitBreaker[struct{}](settings),
		tmpl:   template.Must(template.New("reset").Parse(resetMailTemplate)),
	}
}

func (s *SMTPSender) SendPasswordReset(to, resetURL string) error {
	var body bytes.Buffer
	err := s.tmpl.Execute(&body, resetMailData{ResetURL: resetURL, ExpiryHours: 1})
	if err != nil {
		return fmt.Errorf("failed to render reset mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset")
	msg.SetBody("text/html", body.String())

	_, err = s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, s.dialer.DialAndSend(msg)
	})
	if err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}

const resetMailTemplate = `<!DOCTYPE html>
<html>
<body>
    <p>You requested to reset your password.</p>
    <p>Click <a href="{{.ResetURL}}">here</a> to reset your password.</p>
    <p>This link will expire in {{.ExpiryHours}} hour.</p>
</body>
</html>`
