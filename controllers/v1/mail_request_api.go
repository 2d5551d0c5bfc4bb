package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"mail-approval-backend/controllers"
	mailrequesthandler "mail-approval-backend/lib/mail-request"
	"mail-approval-backend/middleware"
	apimodels "mail-approval-backend/models/api"
	mailrequestapimodels "mail-approval-backend/models/api/mailrequest"
)

type mailRequestApiController struct {
	controllers.BaseAPIController
}

func InitMailRequestApiRouters(app *fiber.App) {
	controller := mailRequestApiController{}
	app.Route("mail_requests", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Post("", controller.create)
		router.Post("review", controller.review)
		router.Get("my", controller.listMy)
		router.Get("my/with_comments", controller.listMyWithComments)
		router.Get("pending", controller.listPending)
		router.Get("pending/action_required", controller.listActionRequired)
		router.Get("approved", controller.listApproved)
		router.Get("approved/export", controller.exportApproved)
		router.Get("leader/pending_approval", controller.listEscalatedToManager)
		router.Route("help_desk", func(hdRouter fiber.Router) {
			hdRouter.Post("review", controller.reviewHelpDesk)
			hdRouter.Get("pending_approval", controller.listEscalatedToHelpDesk)
		})
		router.Get("details/:id", controller.details)
		router.Get(":id/history", controller.history)
		router.Get(":id", controller.get)
	})
}

// @Summary Создать заявку
// @Tags Заявки на отправку писем
// @Description Создать заявку на отправку письма. Заявка создается в статусе HD_REQ
// @Param   Authorization		header		string									true	"Authorization token"
// @Param	body				body		mailrequestapimodels.MailRequestData	true	"request body"
// @Success 201 {object} apimodels.Response{data=mailrequestapimodels.MailRequestView}
// @Failure 400 {object} apimodels.ValidationResponse
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests [post]
func (c *mailRequestApiController) create(ctx *fiber.Ctx) error {
	var payload mailrequestapimodels.MailRequestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := mailrequesthandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Рассмотреть заявку
// @Tags Заявки на отправку писем
// @Description Решение руководителя группы, менеджера или службы поддержки по заявке
// @Param   Authorization		header		string								true	"Authorization token"
// @Param	body				body		mailrequestapimodels.ReviewRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=mailrequestapimodels.MailRequestView}
// @Failure 400 {object} apimodels.ValidationResponse
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/review [post]
func (c *mailRequestApiController) review(ctx *fiber.Ctx) error {
	var payload mailrequestapimodels.ReviewRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := mailrequesthandler.Instance.Review(ctx.UserContext(), middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка рассмотрения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Рассмотреть заявку службой поддержки
// @Tags Заявки на отправку писем
// @Description Решение службы поддержки. Пустое решение возвращает заявку в статус HD_REQ
// @Param   Authorization		header		string								true	"Authorization token"
// @Param	body				body		mailrequestapimodels.ReviewRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=mailrequestapimodels.MailRequestView}
// @Failure 400 {object} apimodels.ValidationResponse
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/help_desk/review [post]
func (c *mailRequestApiController) reviewHelpDesk(ctx *fiber.Ctx) error {
	var payload mailrequestapimodels.ReviewRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := mailrequesthandler.Instance.ReviewHelpDesk(ctx.UserContext(), middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка рассмотрения заявки службой поддержки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Мои заявки
// @Tags Заявки на отправку писем
// @Description Заявки текущего пользователя, кроме ожидающих службу поддержки и отклоненных менеджером
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]mailrequestapimodels.MailRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/my [get]
func (c *mailRequestApiController) listMy(ctx *fiber.Ctx) error {
	resp, err := mailrequesthandler.Instance.ListForRequester(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Мои заявки с комментариями
// @Tags Заявки на отправку писем
// @Description Заявки текущего пользователя вместе с комментариями проверяющих
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]mailrequestapimodels.MailRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/my/with_comments [get]
func (c *mailRequestApiController) listMyWithComments(ctx *fiber.Ctx) error {
	resp, err := mailrequesthandler.Instance.ListForRequester(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Заявки подчиненных на рассмотрении
// @Tags Заявки на отправку писем
// @Description Ожидающие решения заявки прямых подчиненных
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]mailrequestapimodels.MailRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/pending [get]
func (c *mailRequestApiController) listPending(ctx *fiber.Ctx) error {
	resp, err := mailrequesthandler.Instance.ListPendingForSupervisor(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок на рассмотрении")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Заявки, требующие внимания
// @Tags Заявки на отправку писем
// @Description Заявки подчиненных, отклоненные менеджером или возвращенные в службу поддержки
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]mailrequestapimodels.MailRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/pending/action_required [get]
func (c *mailRequestApiController) listActionRequired(ctx *fiber.Ctx) error {
	resp, err := mailrequesthandler.Instance.ListActionRequired(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок, требующих внимания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Согласованные заявки
// @Tags Заявки на отправку писем
// @Description Все заявки, одобренные менеджером
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]mailrequestapimodels.MailRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/approved [get]
func (c *mailRequestApiController) listApproved(ctx *fiber.Ctx) error {
	resp, err := mailrequesthandler.Instance.ListAllApproved(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка согласованных заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузка согласованных заявок
// @Tags Заявки на отправку писем
// @Description Выгрузка согласованных заявок в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/approved/export [get]
func (c *mailRequestApiController) exportApproved(ctx *fiber.Ctx) error {
	data, err := mailrequesthandler.Instance.ExportApproved(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки согласованных заявок в Excel")
	}
	fileName := fmt.Sprintf("mail-requests-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Просроченные заявки для менеджера
// @Tags Заявки на отправку писем
// @Description Заявки без решения менеджера, созданные раньше порога эскалации
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]mailrequestapimodels.MailRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/leader/pending_approval [get]
func (c *mailRequestApiController) listEscalatedToManager(ctx *fiber.Ctx) error {
	resp, err := mailrequesthandler.Instance.ListAllPendingEscalatedManager(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения просроченных заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Просроченные заявки для службы поддержки
// @Tags Заявки на отправку писем
// @Description Заявки без решения менеджера, созданные раньше порога эскалации службы поддержки
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]mailrequestapimodels.MailRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/help_desk/pending_approval [get]
func (c *mailRequestApiController) listEscalatedToHelpDesk(ctx *fiber.Ctx) error {
	resp, err := mailrequesthandler.Instance.ListAllPendingEscalatedHelpDesk(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения просроченных заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получить заявку
// @Tags Заявки на отправку писем
// @Description Получить заявку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=mailrequestapimodels.MailRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/{id} [get]
func (c *mailRequestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := mailrequesthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Подробности заявки
// @Tags Заявки на отправку писем
// @Description Доступно автору заявки и последнему проверяющему
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=mailrequestapimodels.MailRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/details/{id} [get]
func (c *mailRequestApiController) details(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := mailrequesthandler.Instance.GetDetails(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения подробностей заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary История рассмотрения заявки
// @Tags Заявки на отправку писем
// @Description История решений по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]mailrequestapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/mail_requests/{id}/history [get]
func (c *mailRequestApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := mailrequesthandler.Instance.History(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
