package mailer

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Gateway sends transactional email
type Gateway interface {
	Send(to, subject, body string) error
}

// SMTPConfig holds configuration for the SMTP gateway
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// SMTPGateway sends email through an SMTP server
type SMTPGateway struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPGateway creates a new SMTP gateway
func NewSMTPGateway(config SMTPConfig) *SMTPGateway {
	return &SMTPGateway{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

// Send delivers one message via SMTP
func (g *SMTPGateway) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", g.config.Username, g.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := g.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

// DevGateway logs email instead of sending it, for local development
type DevGateway struct {
	logger *logrus.Logger
}

// NewDevGateway creates a new dev gateway
func NewDevGateway(logger *logrus.Logger) *DevGateway {
	return &DevGateway{logger: logger}
}

// Send logs the message and reports success
func (g *DevGateway) Send(to, subject, body string) error {
	g.logger.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"body":    body,
	}).Info("DEV MODE: email not sent")
	return nil
}
