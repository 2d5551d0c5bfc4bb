package apiv1

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"mail-approval-backend/controllers"
	"mail-approval-backend/db"
	apimodels "mail-approval-backend/models/api"
)

type healthApiController struct {
	controllers.BaseAPIController
}

func InitHealthApiRouters(app *fiber.App) {
	controller := healthApiController{}
	app.Get("health", controller.health)
}

// @Summary Проверка состояния сервиса
// @Tags Сервис
// @Description Проверка доступности сервиса и базы данных
// @Success 200 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /health [get]
func (c *healthApiController) health(ctx *fiber.Ctx) error {
	if err := db.PingDB(); err != nil {
		log.WithError(err).Error("база данных недоступна")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("база данных недоступна"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("ok"))
}
