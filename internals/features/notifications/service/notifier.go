// internals/features/notifications/service/notifier.go
package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "smartvisit_backend/internals/features/notifications/model"
	userModel "smartvisit_backend/internals/features/users/user/model"
	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
)

/* ==========================
   RecipientContact
========================== */

// RecipientContact is the one place recipient coordinates are
// assembled; senders never look at model structs.
type RecipientContact struct {
	Name     string
	Email    string
	Phone    string
	Whatsapp string

	UserID    *uuid.UUID
	VisitorID *uuid.UUID
}

func ContactFromUser(u *userModel.UserModel) RecipientContact {
	id := u.ID
	return RecipientContact{
		Name:     u.FullName(),
		Email:    u.Email,
		Phone:    u.Phone,
		Whatsapp: u.WhatsappNumber,
		UserID:   &id,
	}
}

func ContactFromVisitor(v *visitorModel.VisitorModel) RecipientContact {
	id := v.ID
	return RecipientContact{
		Name:      v.FullName(),
		Email:     v.Email,
		Phone:     v.Phone,
		Whatsapp:  v.Phone,
		VisitorID: &id,
	}
}

/* ==========================
   Notifier
========================== */

// Notifier fans a message out across channels. Each channel attempt is
// isolated: one failing channel never prevents the others, and every
// attempt leaves a notifications row.
type Notifier struct {
	DB       *gorm.DB
	Email    EmailSender
	SMS      SMSSender
	WhatsApp WhatsAppSender
	Realtime RealtimeSender
}

func NewNotifier(db *gorm.DB, email EmailSender, sms SMSSender, wa WhatsAppSender, rt RealtimeSender) *Notifier {
	return &Notifier{DB: db, Email: email, SMS: sms, WhatsApp: wa, Realtime: rt}
}

// ChannelResult reports one channel's outcome.
type ChannelResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// expandChannels resolves "all" and drops unknown names.
func expandChannels(channels []string) []string {
	out := make([]string, 0, 3)
	seen := map[string]bool{}
	add := func(ch string) {
		if !seen[ch] {
			seen[ch] = true
			out = append(out, ch)
		}
	}
	for _, ch := range channels {
		switch ch {
		case notifModel.ChannelAll:
			add(notifModel.ChannelEmail)
			add(notifModel.ChannelSMS)
			add(notifModel.ChannelApp)
		case notifModel.ChannelEmail, notifModel.ChannelSMS, notifModel.ChannelApp:
			add(ch)
		}
	}
	return out
}

// Send delivers message to the recipient over the requested channels
// and returns a per-channel result map. Channels with no eligible
// recipient coordinate are omitted from the map.
func (n *Notifier) Send(contact RecipientContact, subject, message string, channels []string) map[string]ChannelResult {
	results := make(map[string]ChannelResult)

	for _, ch := range expandChannels(channels) {
		var err error
		attempted := false

		switch ch {
		case notifModel.ChannelEmail:
			if contact.Email != "" && n.Email != nil {
				attempted = true
				err = safeSend(func() error { return n.Email.SendEmail(contact.Email, subject, message) })
			}
		case notifModel.ChannelSMS:
			if contact.Phone != "" && n.SMS != nil {
				attempted = true
				err = safeSend(func() error { return n.SMS.SendSMS(contact.Phone, message) })
			}
		case notifModel.ChannelApp:
			if contact.UserID != nil && n.Realtime != nil {
				attempted = true
				err = safeSend(func() error {
					return n.Realtime.Trigger("user_"+contact.UserID.String(), "notification", map[string]any{
						"subject": subject,
						"message": message,
					})
				})
			}
		}

		if !attempted {
			continue
		}

		if err != nil {
			log.Printf("[ERROR] notify %s via %s failed: %v", contact.Name, ch, err)
			results[ch] = ChannelResult{OK: false, Error: err.Error()}
		} else {
			results[ch] = ChannelResult{OK: true}
		}
		n.record(contact, message, ch, err)
	}

	return results
}

// SendWhatsApp is a dedicated path used by the host check-in alert;
// whatsapp is not part of Send's requestable channel set.
func (n *Notifier) SendWhatsApp(contact RecipientContact, message string) ChannelResult {
	if contact.Whatsapp == "" || n.WhatsApp == nil {
		return ChannelResult{OK: false, Error: "no whatsapp number"}
	}
	err := safeSend(func() error { return n.WhatsApp.SendWhatsApp(contact.Whatsapp, message) })
	n.record(contact, message, notifModel.ChannelWhatsApp, err)
	if err != nil {
		return ChannelResult{OK: false, Error: err.Error()}
	}
	return ChannelResult{OK: true}
}

// TriggerRealtime fires a raw realtime event (reception desk board,
// host live panel). No notifications row, it is transient signalling.
func (n *Notifier) TriggerRealtime(channel, event string, payload map[string]any) error {
	if n.Realtime == nil {
		return nil
	}
	return safeSend(func() error { return n.Realtime.Trigger(channel, event, payload) })
}

// NotifyBulk sends to many staff ids, continuing past per-user
// failures, and returns the count of users fully delivered.
func (n *Notifier) NotifyBulk(userIDs []uuid.UUID, subject, message string, channels []string) (sent int, failed []uuid.UUID) {
	for _, uid := range userIDs {
		var user userModel.UserModel
		if err := n.DB.First(&user, "id = ?", uid).Error; err != nil {
			failed = append(failed, uid)
			continue
		}
		results := n.Send(ContactFromUser(&user), subject, message, channels)
		ok := len(results) > 0
		for _, r := range results {
			if !r.OK {
				ok = false
			}
		}
		if ok {
			sent++
		} else {
			failed = append(failed, uid)
		}
	}
	return sent, failed
}

// record writes the notifications row for one attempt. Audit failure
// is logged, never propagated.
func (n *Notifier) record(contact RecipientContact, message, channel string, sendErr error) {
	row := notifModel.NotificationModel{
		UserID:    contact.UserID,
		VisitorID: contact.VisitorID,
		Message:   message,
		Channel:   channel,
		Status:    notifModel.StatusSent,
	}
	if sendErr != nil {
		row.Status = notifModel.StatusFailed
	} else {
		now := time.Now().UTC()
		row.SentAt = &now
	}
	if err := n.DB.Create(&row).Error; err != nil {
		log.Printf("[WARN] notification record failed: %v", err)
	}
}

// safeSend shields the fan-out from a panicking sender.
func safeSend(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &senderPanicError{value: r}
		}
	}()
	return fn()
}

type senderPanicError struct{ value any }

func (e *senderPanicError) Error() string {
	return "sender panicked"
}
