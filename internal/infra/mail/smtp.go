package mail

import (
	"context"
	"fmt"
	"net/smtp"
)

// SMTPMailer sends the OTP and confirmation mails through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, username: username, password: password, from: from}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, email, code string) error {
	subject := "Password Reset OTP"
	body := fmt.Sprintf("Your password reset code is %s. It expires in 10 minutes.", code)
	return m.send(email, subject, body)
}

func (m *SMTPMailer) SendPasswordResetSuccess(ctx context.Context, email, name string) error {
	subject := "Password Reset Successful"
	body := fmt.Sprintf("Hi %s, your password was reset successfully. If this wasn't you, contact support immediately.", name)
	return m.send(email, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}
