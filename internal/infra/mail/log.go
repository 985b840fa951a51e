package mail

import (
	"context"
	"log"
)

// LogMailer prints instead of sending. Used in development where no SMTP
// relay is configured; the OTP still ends up somewhere a tester can read it.
type LogMailer struct{}

func NewLogMailer() *LogMailer { return &LogMailer{} }

func (LogMailer) SendOTP(ctx context.Context, email, code string) error {
	log.Printf("[mail] OTP for %s: %s", email, code)
	return nil
}

func (LogMailer) SendPasswordResetSuccess(ctx context.Context, email, name string) error {
	log.Printf("[mail] password reset confirmation for %s (%s)", email, name)
	return nil
}
