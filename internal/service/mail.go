package service

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"accountd/internal/config"
)

type smtpSender struct {
	cfg config.MailConfig
	ttl time.Duration
}

func NewEmailSender(cfg config.MailConfig, ttl time.Duration) EmailSender {
	return &smtpSender{cfg: cfg, ttl: ttl}
}

func (s *smtpSender) Send(to, link string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your email address")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Verify your email address to complete the signup and sign in to your account.</p>"+
			"<p>This link <b>expires in %d hours</b>.</p>"+
			"<p>Press <a href=%q>here</a> to proceed.</p>",
		int(s.ttl.Hours()), link))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
