// internals/features/visitors/visitor/service/lifecycle_service.go
package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	notifModel "smartvisit_backend/internals/features/notifications/model"
	notifService "smartvisit_backend/internals/features/notifications/service"
	userModel "smartvisit_backend/internals/features/users/user/model"
	logModel "smartvisit_backend/internals/features/visitors/logs/model"
	settingModel "smartvisit_backend/internals/features/visitors/settings/model"
	visitorDTO "smartvisit_backend/internals/features/visitors/visitor/dto"
	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
	helper "smartvisit_backend/internals/helpers"
)

/* ==========================
   Sentinel errors
========================== */

var (
	ErrHostNotFound      = errors.New("Host not found")
	ErrAlreadyCheckedOut = errors.New("Visitor is already checked out.")
	ErrInvalidQRCode     = errors.New("Invalid QR code or already checked in")
	ErrNotPreRegistered  = errors.New("Visitor not found or already checked in")
)

const badgeNumberStart = 1000

// LifecycleService owns every visitor state transition. Each
// persistence path runs in one transaction; notifications fire
// strictly after commit.
type LifecycleService struct {
	DB        *gorm.DB
	Notifier  *notifService.Notifier
	MediaRoot string
}

func NewLifecycleService(db *gorm.DB, notifier *notifService.Notifier, mediaRoot string) *LifecycleService {
	return &LifecycleService{DB: db, Notifier: notifier, MediaRoot: mediaRoot}
}

/* ==========================
   Shared internals
========================== */

func (s *LifecycleService) resolveHost(hostID uuid.UUID) (*userModel.UserModel, error) {
	var host userModel.UserModel
	if err := s.DB.First(&host, "id = ? AND is_active = true", hostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, err
	}
	return &host, nil
}

func (s *LifecycleService) writeLog(tx *gorm.DB, action string, visitorID *uuid.UUID, userID *uuid.UUID, details string) error {
	return tx.Create(&logModel.VisitorLogModel{
		VisitorID: visitorID,
		Action:    action,
		Details:   details,
		UserID:    userID,
	}).Error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// createWithBadge inserts the visitor with badge number MAX+1
// (starting at 1000). The unique index on badge_number catches a
// concurrent allocation; one retry recomputes and reinserts. Each
// insert runs under a savepoint: Postgres aborts the whole
// transaction on the unique violation otherwise, and the retry's
// statements would be rejected.
func (s *LifecycleService) createWithBadge(tx *gorm.DB, v *visitorModel.VisitorModel) error {
	for attempt := 0; attempt < 2; attempt++ {
		var next int
		if err := tx.Raw(`SELECT COALESCE(MAX(badge_number), ?) + 1 FROM visitors`, badgeNumberStart-1).
			Scan(&next).Error; err != nil {
			return err
		}
		v.BadgeNumber = &next

		if err := tx.SavePoint("badge_alloc").Error; err != nil {
			return err
		}
		err := tx.Create(v).Error
		if err == nil {
			return nil
		}
		if isUniqueViolation(err) && attempt == 0 {
			if rbErr := tx.RollbackTo("badge_alloc").Error; rbErr != nil {
				return rbErr
			}
			log.Printf("[WARN] badge number %d collided, retrying", next)
			v.ID = uuid.Nil
			continue
		}
		return err
	}
	return fmt.Errorf("badge allocation failed after retry")
}

// generateQRAssets renders the token PNG and stores it under media;
// runs after commit and never fails the check-in.
func (s *LifecycleService) generateQRAssets(v *visitorModel.VisitorModel) {
	png, err := helper.RenderQRPNG(v.QRCode)
	if err != nil {
		log.Printf("[ERROR] qr render for %s: %v", v.ID, err)
		return
	}
	url, err := helper.SavePNG(s.MediaRoot, "qr_codes", v.QRCode, png)
	if err != nil {
		log.Printf("[ERROR] qr save for %s: %v", v.ID, err)
		return
	}
	if err := s.DB.Model(v).Update("qr_image_url", url).Error; err != nil {
		log.Printf("[WARN] qr url update for %s: %v", v.ID, err)
		return
	}
	v.QRImageURL = url
}

// warnIfBlacklisted logs a warning when a checked-in visitor matches a
// blacklist entry. It never blocks the check-in.
func (s *LifecycleService) warnIfBlacklisted(v *visitorModel.VisitorModel) {
	if v.Email == "" && v.Phone == "" {
		return
	}
	var count int64
	err := s.DB.Model(&settingModel.BlacklistModel{}).
		Joins("JOIN visitors ON visitors.id = blacklists.visitor_id").
		Where("(visitors.email = ? AND visitors.email <> '') OR (visitors.phone = ? AND visitors.phone <> '')", v.Email, v.Phone).
		Count(&count).Error
	if err != nil {
		log.Printf("[WARN] blacklist lookup for %s: %v", v.ID, err)
		return
	}
	if count > 0 {
		log.Printf("[WARNING] checked-in visitor %s (%s) matches a blacklist entry", v.FullName(), v.ID)
	}
}

// notifyCheckIn fans out after commit: host gets realtime + email +
// SMS, plus WhatsApp when a number is on file; the reception board
// gets a live event.
func (s *LifecycleService) notifyCheckIn(v *visitorModel.VisitorModel, host *userModel.UserModel) {
	if s.Notifier == nil {
		return
	}
	if host != nil {
		msg := fmt.Sprintf("%s has checked in to see you. Purpose: %s", v.FullName(), v.Purpose)
		contact := notifService.ContactFromUser(host)
		s.Notifier.Send(contact, "Visitor arrived", msg,
			[]string{notifModel.ChannelApp, notifModel.ChannelEmail, notifModel.ChannelSMS})
		if contact.Whatsapp != "" {
			s.Notifier.SendWhatsApp(contact, msg)
		}
	}
	_ = s.Notifier.TriggerRealtime("reception", "visitor_checked_in", map[string]any{
		"visitor_id": v.ID.String(),
		"name":       v.FullName(),
		"company":    v.Company,
		"status":     v.Status,
	})
}

/* ==========================
   CHECK-IN (reception desk)
========================== */

func (s *LifecycleService) CheckIn(req *visitorDTO.CheckInRequest, actorID *uuid.UUID) (*visitorModel.VisitorModel, error) {
	host, err := s.resolveHost(req.HostID)
	if err != nil {
		return nil, err
	}

	v := req.ToModel()
	now := time.Now().UTC()
	v.Status = visitorModel.StatusCheckedIn
	v.CheckInTime = &now

	if req.PhotoData != "" && helper.IsDataURI(req.PhotoData) {
		if url, err := helper.SaveBase64Image(s.MediaRoot, "visitor_photos", v.FirstName, req.PhotoData); err == nil {
			v.PhotoURL = url
		} else {
			log.Printf("[WARN] photo save: %v", err)
		}
	}
	if req.SignatureData != "" && helper.IsDataURI(req.SignatureData) {
		if url, err := helper.SaveBase64Image(s.MediaRoot, "signatures", v.FirstName, req.SignatureData); err == nil {
			v.SignatureURL = url
		} else {
			log.Printf("[WARN] signature save: %v", err)
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.createWithBadge(tx, v); err != nil {
			return err
		}
		return s.writeLog(tx, logModel.ActionCheckIn, &v.ID, actorID,
			fmt.Sprintf("Checked in to see %s", host.FullName()))
	})
	if err != nil {
		return nil, err
	}

	s.generateQRAssets(v)
	s.warnIfBlacklisted(v)
	s.notifyCheckIn(v, host)

	return v, nil
}

/* ==========================
   KIOSK CHECK-IN
========================== */

func (s *LifecycleService) KioskCheckIn(req *visitorDTO.KioskCheckInRequest) (*visitorModel.VisitorModel, error) {
	host, err := s.resolveHost(req.HostID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	hostID := req.HostID
	v := &visitorModel.VisitorModel{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Purpose:     req.Purpose,
		Plate:       req.Plate,
		VisitorType: req.VisitorType,
		HostID:      &hostID,
		Status:      visitorModel.StatusCheckedIn,
		CheckInTime: &now,
	}

	if url, err := helper.SaveBase64Image(s.MediaRoot, "visitor_photos", v.FirstName, req.PhotoData); err == nil {
		v.PhotoURL = url
	} else {
		log.Printf("[WARN] kiosk photo save: %v", err)
	}
	if url, err := helper.SaveBase64Image(s.MediaRoot, "signatures", v.FirstName, req.SignatureData); err == nil {
		v.SignatureURL = url
	} else {
		log.Printf("[WARN] kiosk signature save: %v", err)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.createWithBadge(tx, v); err != nil {
			return err
		}
		return s.writeLog(tx, logModel.ActionKioskCheckIn, &v.ID, nil,
			fmt.Sprintf("Kiosk check-in to see %s", host.FullName()))
	})
	if err != nil {
		return nil, err
	}

	s.generateQRAssets(v)
	s.warnIfBlacklisted(v)
	s.notifyCheckIn(v, host)

	return v, nil
}

/* ==========================
   QR CHECK-IN
========================== */

// QRCheckIn transitions a pre_registered visit to checked_in when the
// visitor scans at the door. Any other state answers as not found.
func (s *LifecycleService) QRCheckIn(visitorID uuid.UUID, deviceID string) (*visitorModel.VisitorModel, error) {
	var v visitorModel.VisitorModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, "id = ? AND status = ?", visitorID, visitorModel.StatusPreRegistered).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotPreRegistered
			}
			return err
		}

		now := time.Now().UTC()
		v.Status = visitorModel.StatusCheckedIn
		v.CheckInTime = &now
		v.CheckInDevice = deviceID
		if err := tx.Save(&v).Error; err != nil {
			return err
		}
		return s.writeLog(tx, logModel.ActionQRCheckIn, &v.ID, nil, "QR check-in from device "+deviceID)
	})
	if err != nil {
		return nil, err
	}

	if v.HostID != nil && s.Notifier != nil {
		if host, err := s.resolveHost(*v.HostID); err == nil {
			_ = s.Notifier.TriggerRealtime("user_"+host.ID.String(), "visitor_arrived", map[string]any{
				"visitor_id": v.ID.String(),
				"name":       v.FullName(),
			})
		}
	}

	return &v, nil
}

/* ==========================
   OFFLINE RECONCILIATION
========================== */

// OfflineCheckIn reconciles a check-in captured while the kiosk was
// offline, keyed by the printed QR token.
func (s *LifecycleService) OfflineCheckIn(qrToken string) (*visitorModel.VisitorModel, error) {
	var v visitorModel.VisitorModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, "qr_code = ? AND status = ?", qrToken, visitorModel.StatusPreRegistered).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidQRCode
			}
			return err
		}

		now := time.Now().UTC()
		v.Status = visitorModel.StatusCheckedIn
		v.CheckInTime = &now
		v.OfflineCheckin = true
		if err := tx.Save(&v).Error; err != nil {
			return err
		}
		return s.writeLog(tx, logModel.ActionOfflineCheckIn, &v.ID, nil, "Offline check-in reconciled")
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

/* ==========================
   CHECK-OUT
========================== */

func (s *LifecycleService) CheckOut(visitorID uuid.UUID, actorID *uuid.UUID) (*visitorModel.VisitorModel, error) {
	var v visitorModel.VisitorModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, "id = ?", visitorID).Error; err != nil {
			return err
		}
		if v.Status == visitorModel.StatusCheckedOut {
			return ErrAlreadyCheckedOut
		}

		now := time.Now().UTC()
		v.Status = visitorModel.StatusCheckedOut
		v.CheckOutTime = &now
		if err := tx.Save(&v).Error; err != nil {
			return err
		}

		return s.writeLog(tx, logModel.ActionCheckOut, &v.ID, actorID,
			"Checked out after "+helper.FormatDurationHM(v.VisitDuration()))
	})
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		if v.HostID != nil {
			if host, err := s.resolveHost(*v.HostID); err == nil {
				msg := fmt.Sprintf("%s has checked out. Visit duration: %s", v.FullName(), helper.FormatDurationHM(v.VisitDuration()))
				s.Notifier.Send(notifService.ContactFromUser(host), "Visitor checked out", msg,
					[]string{notifModel.ChannelApp})
			}
		}
		_ = s.Notifier.TriggerRealtime("reception", "visitor_checked_out", map[string]any{
			"visitor_id": v.ID.String(),
			"name":       v.FullName(),
		})
	}

	return &v, nil
}

/* ==========================
   PRE-REGISTRATION
========================== */

func (s *LifecycleService) PreRegister(req *visitorDTO.PreRegisterRequest, actorID *uuid.UUID) (*visitorModel.VisitorModel, error) {
	host, err := s.resolveHost(req.HostID)
	if err != nil {
		return nil, err
	}

	v := req.ToModel()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}
		return s.writeLog(tx, logModel.ActionPreRegister, &v.ID, actorID,
			fmt.Sprintf("Pre-registered to see %s", host.FullName()))
	})
	if err != nil {
		return nil, err
	}

	s.generateQRAssets(v)

	// Invite carries the QR token the door scanner expects
	if s.Notifier != nil && v.Email != "" {
		msg := fmt.Sprintf("You are pre-registered to visit %s. Present code %s at the entrance.", host.FullName(), v.QRCode)
		s.Notifier.Send(notifService.ContactFromVisitor(v), "Your visit is scheduled", msg,
			[]string{notifModel.ChannelEmail})
	}

	return v, nil
}

/* ==========================
   STATUS CHANGE (PATCH path)
========================== */

// ChangeStatus applies a direct status transition (e.g. in_meeting)
// and records a status_change log row. checked_out never silently
// reverts.
func (s *LifecycleService) ChangeStatus(visitorID uuid.UUID, newStatus string, actorID *uuid.UUID) (*visitorModel.VisitorModel, error) {
	if !visitorModel.IsValidStatus(newStatus) {
		return nil, fmt.Errorf("invalid status %q", newStatus)
	}

	var v visitorModel.VisitorModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, "id = ?", visitorID).Error; err != nil {
			return err
		}
		if v.Status == visitorModel.StatusCheckedOut && newStatus != visitorModel.StatusCheckedOut {
			return ErrAlreadyCheckedOut
		}
		if v.Status == newStatus {
			return nil
		}

		old := v.Status
		v.Status = newStatus
		if newStatus == visitorModel.StatusCheckedOut && v.CheckOutTime == nil {
			now := time.Now().UTC()
			v.CheckOutTime = &now
		}
		if err := tx.Save(&v).Error; err != nil {
			return err
		}
		return s.writeLog(tx, logModel.ActionStatusChange, &v.ID, actorID,
			fmt.Sprintf("Status changed from %s to %s", old, newStatus))
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}
