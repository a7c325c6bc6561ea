package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"automotora-api/config"
	"automotora-api/models"
)

// EmailService notifies staff when a new customer inquiry arrives.
// When SMTP is not configured the service stays disabled and every
// notification is a no-op.
type EmailService struct {
	cfg    *config.Config
	dialer *gomail.Dialer
	log    *logrus.Logger
}

func NewEmailService(cfg *config.Config, log *logrus.Logger) *EmailService {
	service := &EmailService{cfg: cfg, log: log}
	if cfg.SMTPHost != "" && cfg.NotifyEmail != "" {
		service.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	return service
}

func (es *EmailService) Enabled() bool {
	return es != nil && es.dialer != nil
}

// NotifyNewInquiry sends the staff notification. Callers fire it from a
// goroutine; a failed send is logged and never affects the request.
func (es *EmailService) NotifyNewInquiry(inquiry *models.Inquiry, vehicle *models.Vehicle) {
	if !es.Enabled() {
		return
	}

	subject := "Nueva consulta recibida"
	if vehicle != nil {
		subject = fmt.Sprintf("Nueva consulta: %s %s %d", vehicle.Brand, vehicle.Model, vehicle.Year)
	}

	body := fmt.Sprintf(
		"<h2>Nueva consulta</h2>"+
			"<p><strong>Nombre:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Teléfono:</strong> %s</p>"+
			"<p><strong>Mensaje:</strong></p><p>%s</p>",
		inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Message,
	)
	if vehicle != nil {
		body += fmt.Sprintf("<p><strong>Vehículo:</strong> %s %s %d</p>", vehicle.Brand, vehicle.Model, vehicle.Year)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", es.cfg.FromEmail)
	m.SetHeader("To", es.cfg.NotifyEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		es.log.WithField("inquiry_id", inquiry.ID).Warnf("failed to send inquiry notification: %v", err)
	}
}
