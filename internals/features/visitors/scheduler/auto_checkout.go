package scheduler

import (
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	logModel "smartvisit_backend/internals/features/visitors/logs/model"
	settingModel "smartvisit_backend/internals/features/visitors/settings/model"
	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
)

// StartAutoCheckoutScheduler checks once a minute whether auto
// checkout is enabled and due, then checks out everyone still on
// premises. The HH:MM comparison makes the job idempotent within the
// minute it fires.
func StartAutoCheckoutScheduler(c *cron.Cron, db *gorm.DB) {
	_, err := c.AddFunc("* * * * *", func() {
		runAutoCheckout(db, time.Now().UTC())
	})
	if err != nil {
		log.Printf("[ERROR] failed to register auto-checkout job: %v", err)
	}
}

func runAutoCheckout(db *gorm.DB, now time.Time) {
	var settings settingModel.VisitorSettingModel
	if err := db.First(&settings, "id = 1").Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ERROR] auto-checkout settings load: %v", err)
		}
		return
	}
	if !settings.EnableAutoCheckout {
		return
	}
	if now.Format("15:04") != settings.AutoCheckoutTime {
		return
	}

	var onPremises []visitorModel.VisitorModel
	if err := db.Where("status IN ?", []string{
		visitorModel.StatusCheckedIn, visitorModel.StatusInMeeting,
	}).Find(&onPremises).Error; err != nil {
		log.Printf("[ERROR] auto-checkout lookup: %v", err)
		return
	}
	if len(onPremises) == 0 {
		return
	}

	checkedOut := 0
	for i := range onPremises {
		v := &onPremises[i]
		err := db.Transaction(func(tx *gorm.DB) error {
			v.Status = visitorModel.StatusCheckedOut
			v.CheckOutTime = &now
			if err := tx.Save(v).Error; err != nil {
				return err
			}
			return tx.Create(&logModel.VisitorLogModel{
				VisitorID: &v.ID,
				Action:    logModel.ActionCheckOut,
				Details:   "auto check-out",
			}).Error
		})
		if err != nil {
			log.Printf("[ERROR] auto-checkout for %s: %v", v.ID, err)
			continue
		}
		checkedOut++
	}
	log.Printf("[INFO] auto-checkout completed: %d visitors checked out", checkedOut)
}
