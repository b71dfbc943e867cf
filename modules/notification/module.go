package notification

import (
	"castle-admin/core/database"
	"castle-admin/core/mailer"
	"castle-admin/core/middleware"
	"castle-admin/core/queue"
	"castle-admin/modules/notification/controller"
	"castle-admin/modules/notification/repository"
	"castle-admin/modules/notification/router"
	"castle-admin/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(api *echo.Group, db database.Database, q queue.Enqueuer, sender mailer.Sender, businessName string, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, q, sender, businessName)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(api, mw)

	return svc
}
