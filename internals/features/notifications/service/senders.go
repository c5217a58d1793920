// internals/features/notifications/service/senders.go
package service

import (
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
	pusher "github.com/pusher/pusher-http-go/v5"
	gomail "gopkg.in/gomail.v2"

	"smartvisit_backend/internals/configs"
)

/* ==========================
   Sender interfaces
========================== */

type EmailSender interface {
	SendEmail(to, subject, body string) error
}

type SMSSender interface {
	SendSMS(phone, message string) error
}

type WhatsAppSender interface {
	SendWhatsApp(phone, message string) error
}

type RealtimeSender interface {
	Trigger(channel, event string, payload map[string]any) error
}

/* ==========================
   Email (gomail SMTP)
========================== */

type GomailSender struct {
	cfg configs.SMTPConfig
}

func NewGomailSender(cfg configs.SMTPConfig) *GomailSender {
	return &GomailSender{cfg: cfg}
}

func (s *GomailSender) SendEmail(to, subject, body string) error {
	if s.cfg.Host == "" || s.cfg.From == "" {
		return fmt.Errorf("smtp not configured")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}

/* ==========================
   Pusher client (realtime + SMS bridge)
========================== */

// PusherClient serves two channels: app realtime events and the SMS
// bridge, which is a worker subscribed to sms_channel that relays
// new_sms events to the SMS gateway.
type PusherClient struct {
	client *pusher.Client
}

func NewPusherClient(cfg configs.PusherConfig) *PusherClient {
	return &PusherClient{
		client: &pusher.Client{
			AppID:   cfg.AppID,
			Key:     cfg.Key,
			Secret:  cfg.Secret,
			Cluster: cfg.Cluster,
		},
	}
}

func (p *PusherClient) Trigger(channel, event string, payload map[string]any) error {
	if p.client.AppID == "" {
		return fmt.Errorf("pusher not configured")
	}
	return p.client.Trigger(channel, event, payload)
}

func (p *PusherClient) SendSMS(phone, message string) error {
	return p.Trigger("sms_channel", "new_sms", map[string]any{
		"phone":   phone,
		"message": message,
	})
}

/* ==========================
   WhatsApp (Graph API via resty)
========================== */

type WhatsAppClient struct {
	cfg  configs.WhatsAppConfig
	http *resty.Client
}

func NewWhatsAppClient(cfg configs.WhatsAppConfig) *WhatsAppClient {
	return &WhatsAppClient{
		cfg:  cfg,
		http: resty.New(),
	}
}

func (w *WhatsAppClient) SendWhatsApp(phone, message string) error {
	if w.cfg.PhoneID == "" || w.cfg.AccessToken == "" {
		return fmt.Errorf("whatsapp not configured")
	}

	url := fmt.Sprintf("https://graph.facebook.com/v18.0/%s/messages", w.cfg.PhoneID)
	resp, err := w.http.R().
		SetAuthToken(w.cfg.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"messaging_product": "whatsapp",
			"to":                phone,
			"type":              "text",
			"text":              map[string]string{"body": message},
		}).
		Post(url)
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		log.Printf("[ERROR] whatsapp send to %s: status=%d body=%s", phone, resp.StatusCode(), resp.String())
		return fmt.Errorf("whatsapp API returned %d", resp.StatusCode())
	}
	return nil
}
