// Package mail implementa el envío de correos transaccionales vía SMTP:
// el código de verificación del registro y la bienvenida tras crear el negocio.
package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Embudos-api/internal/application/registration"
	"github.com/jhoicas/Embudos-api/pkg/config"
)

var (
	_ registration.CodeMailer    = (*SMTPSender)(nil)
	_ registration.WelcomeMailer = (*SMTPSender)(nil)
)

// SMTPSender envía correos usando gomail sobre SMTP.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender construye el sender con la configuración SMTP de la app.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

var codeTmpl = template.Must(template.New("code").Parse(`
<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Tu código de verificación</h2>
  <p>Usa este código para continuar con tu registro. Vence en 30 minutos.</p>
  <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold;">{{.Code}}</p>
  <p style="color: #888; font-size: 12px;">Si no solicitaste este código, ignora este correo.</p>
</div>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>¡Bienvenido, {{.Name}}!</h2>
  <p>Tu empresa <strong>{{.BusinessName}}</strong> quedó registrada y tu cuenta está activa.</p>
  <p>Ya puedes crear tus embudos de venta y empezar a gestionar prospectos.</p>
</div>`))

// SendVerificationCode envía el código de 6 dígitos al correo indicado.
func (s *SMTPSender) SendVerificationCode(email, code string) error {
	var body bytes.Buffer
	if err := codeTmpl.Execute(&body, struct{ Code string }{Code: code}); err != nil {
		return fmt.Errorf("mail: renderizar plantilla de código: %w", err)
	}
	return s.send(email, "Tu código de verificación", body.String())
}

// SendWelcome envía el correo de bienvenida tras completar el registro del negocio.
func (s *SMTPSender) SendWelcome(email, name, businessName string) error {
	var body bytes.Buffer
	data := struct{ Name, BusinessName string }{Name: name, BusinessName: businessName}
	if err := welcomeTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("mail: renderizar plantilla de bienvenida: %w", err)
	}
	return s.send(email, fmt.Sprintf("¡Bienvenido, %s!", name), body.String())
}

func (s *SMTPSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", to, err)
	}
	return nil
}
