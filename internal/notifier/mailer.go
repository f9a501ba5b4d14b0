// Package notifier sends boundary-violation alerts to the station admin.
package notifier

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"station-attendance-backend/config"
	"station-attendance-backend/internal/model"
)

type Mailer struct {
	from string
	to   string

	// send defaults to DialAndSend on the configured dialer.
	send func(...*gomail.Message) error
}

// NewMailerFromEnv builds the alert mailer from SMTP_* env vars. Returns nil
// when SMTP_HOST is unset so callers can wire alerts as optional.
func NewMailerFromEnv() *Mailer {
	host := config.GetEnv("SMTP_HOST", "")
	if host == "" {
		return nil
	}
	dialer := gomail.NewDialer(
		host,
		config.GetEnvAsInt("SMTP_PORT", 587),
		config.GetEnv("SMTP_USER", ""),
		config.GetEnv("SMTP_PASSWORD", ""),
	)
	return &Mailer{
		from: config.GetEnv("SMTP_FROM", "attendance@localhost"),
		to:   config.GetEnv("ADMIN_EMAIL", ""),
		send: dialer.DialAndSend,
	}
}

// ViolationRecorded mails the admin about a fresh violation. The SMTP dial
// runs on its own goroutine and failures are logged only, so a slow or dead
// mail server never delays the punch flow.
func (m *Mailer) ViolationRecorded(v *model.BoundaryViolation) {
	if m == nil || m.to == "" {
		return
	}

	body := fmt.Sprintf(
		"Officer %d was detected outside every active geofence during an open shift.\n\nCoordinates: %.6f, %.6f\n",
		v.OfficerID, v.Latitude, v.Longitude,
	)
	if v.DistanceMeter != nil {
		body += fmt.Sprintf("Distance to nearest boundary center: %.0f m\n", *v.DistanceMeter)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("Boundary violation: officer %d", v.OfficerID))
	msg.SetBody("text/plain", body)

	go func() {
		if err := m.send(msg); err != nil {
			log.Printf("notifier: send violation alert: %v", err)
		}
	}()
}
