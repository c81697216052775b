// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/munidigital/habilitaciones-backend/internal/config"
	"github.com/munidigital/habilitaciones-backend/internal/models"
)

// NotificationService sends best-effort applicant emails on workflow
// decisions. Delivery failures are logged, never surfaced to the workflow.
type NotificationService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{
		db:  db,
		cfg: cfg,
	}
}

var aprobadaTemplate = template.Must(template.New("aprobada").Parse(`
<h2>Habilitación Precaria N° {{.Numero}} aprobada</h2>
<p>Hola {{.Nombre}},</p>
<p>Tu solicitud de Habilitación Precaria para el local de
{{.Calle}} {{.Altura}}, {{.Localidad}} fue <strong>aprobada</strong>.</p>
<p>El certificado tiene carácter precario y una vigencia de 30 días,
hasta el {{.Vencimiento}}.</p>
<p>Podés verificar el certificado en
<a href="{{.VerificarURL}}">{{.VerificarURL}}</a>.</p>
`))

var rechazadaTemplate = template.Must(template.New("rechazada").Parse(`
<h2>Habilitación Precaria N° {{.Numero}} rechazada</h2>
<p>Hola {{.Nombre}},</p>
<p>Tu solicitud de Habilitación Precaria para el local de
{{.Calle}} {{.Altura}}, {{.Localidad}} fue <strong>rechazada</strong>.</p>
<p>Motivo: {{.Observaciones}}</p>
<p>Podés presentar una nueva solicitud corrigiendo las observaciones.</p>
`))

func (s *NotificationService) SendSolicitudAprobada(solicitud *models.Solicitud) {
	vencimiento := ""
	if solicitud.FechaVencimiento != nil {
		vencimiento = solicitud.FechaVencimiento.Format("02/01/2006")
	}

	data := map[string]interface{}{
		"Numero":       solicitud.Numero,
		"Nombre":       solicitud.SolicitanteNombre,
		"Calle":        solicitud.DomicilioCalle,
		"Altura":       solicitud.DomicilioAltura,
		"Localidad":    solicitud.DomicilioLocalidad,
		"Vencimiento":  vencimiento,
		"VerificarURL": fmt.Sprintf("%s/verificar/%s", s.cfg.Frontend.BaseURL, solicitud.ID),
	}

	subject := fmt.Sprintf("Habilitación Precaria N° %d aprobada", solicitud.Numero)
	s.send(solicitud.SolicitanteEmail, subject, aprobadaTemplate, data)
}

func (s *NotificationService) SendSolicitudRechazada(solicitud *models.Solicitud) {
	data := map[string]interface{}{
		"Numero":        solicitud.Numero,
		"Nombre":        solicitud.SolicitanteNombre,
		"Calle":         solicitud.DomicilioCalle,
		"Altura":        solicitud.DomicilioAltura,
		"Localidad":     solicitud.DomicilioLocalidad,
		"Observaciones": solicitud.Observaciones,
	}

	subject := fmt.Sprintf("Habilitación Precaria N° %d rechazada", solicitud.Numero)
	s.send(solicitud.SolicitanteEmail, subject, rechazadaTemplate, data)
}

func (s *NotificationService) send(to, subject string, tmpl *template.Template, data map[string]interface{}) {
	if to == "" || s.cfg.Email.SMTPUsername == "" {
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		logrus.WithError(err).Error("Failed to render notification template")
		return
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.cfg.Email.FromName, s.cfg.Email.FromEmail, to, subject, body.String())

	addr := fmt.Sprintf("%s:%s", s.cfg.Email.SMTPHost, s.cfg.Email.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.Email.SMTPUsername, s.cfg.Email.SMTPPassword, s.cfg.Email.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.Email.FromEmail, []string{to}, []byte(msg)); err != nil {
		logrus.WithError(err).WithField("to", to).Error("Failed to send notification email")
	}
}
