package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"time"
)

const loginSubject = "CashLog Email Login Link"

// SMTPMailer sends login links as plaintext email through an SMTP relay.
type SMTPMailer struct {
	addr string // host:port of the relay
	from string
}

// NewSMTPMailer constructs a mailer that relays through addr with the given
// envelope sender.
func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

// sendMail is a seam for testing without a live SMTP server.
var sendMail = smtp.SendMail

func (m *SMTPMailer) SendLoginLink(ctx context.Context, email, url string) error {
	msg := buildLoginMessage(m.from, email, url)
	if err := sendMail(m.addr, nil, m.from, []string{email}, msg); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", email, err)
	}
	return nil
}

func buildLoginMessage(from, to, url string) []byte {
	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", from)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", loginSubject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("\r\n")
	write("Click this link to login to CashLog: %s\r\n", url)

	return msg.Bytes()
}
