// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	configs "smartvisit_backend/internals/configs"
	notifService "smartvisit_backend/internals/features/notifications/service"
	visitorService "smartvisit_backend/internals/features/visitors/visitor/service"
	routeDetails "smartvisit_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== SHARED SERVICES =====================
	log.Println("[INFO] Wiring notification senders...")
	pusherClient := notifService.NewPusherClient(configs.LoadPusherConfig())
	notifier := notifService.NewNotifier(db,
		notifService.NewGomailSender(configs.LoadSMTPConfig()),
		pusherClient,
		notifService.NewWhatsAppClient(configs.LoadWhatsAppConfig()),
		pusherClient,
	)

	lifecycle := visitorService.NewLifecycleService(db, notifier, configs.MediaRoot())

	// ===================== STATIC MEDIA =====================
	app.Static("/media", configs.MediaRoot())

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	log.Println("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(app, db)

	log.Println("[INFO] Setting up VisitorRoutes...")
	routeDetails.VisitorRoutes(app, db, lifecycle)

	log.Println("[INFO] Setting up NotificationRoutes...")
	routeDetails.NotificationRoutes(app, db, notifier)

	log.Println("[INFO] Setting up SettingsRoutes...")
	routeDetails.SettingsRoutes(app, db)

	log.Println("[INFO] Setting up AnalyticsRoutes...")
	routeDetails.AnalyticsRoutes(app, db)
}
