package mail

import (
	"fmt"

	mailv2 "gopkg.in/mail.v2"

	intconfig "reservas/internal/config"
	"reservas/internal/utils"
)

// Mailer sends outbound mail over authenticated SMTP submission. Delivery is
// best-effort everywhere it is used: callers log errors and move on.
type Mailer struct {
	SMTP intconfig.SMTP

	// send is swapped in tests.
	send func(m *mailv2.Message) error
}

func New(cfg intconfig.SMTP) *Mailer {
	ml := &Mailer{SMTP: cfg}
	ml.send = func(m *mailv2.Message) error {
		d := mailv2.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		return d.DialAndSend(m)
	}
	return ml
}

// Send delivers a plain-text message, with an optional HTML alternative.
func (ml *Mailer) Send(to, subject, textBody, htmlBody string) error {
	if !ml.SMTP.Configured() {
		utils.LogEvent("", "mail", "skip", "transporte SMTP sin configurar, correo descartado para "+to)
		return nil
	}

	m := mailv2.NewMessage()
	m.SetHeader("From", ml.SMTP.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := ml.send(m); err != nil {
		return fmt.Errorf("error al enviar correo: %w", err)
	}
	return nil
}
