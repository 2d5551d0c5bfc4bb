package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"mail-approval-backend/controllers"
	usershandler "mail-approval-backend/lib/users"
	"mail-approval-backend/middleware"
	apimodels "mail-approval-backend/models/api"
	userapimodels "mail-approval-backend/models/api/user"
)

type usersApiController struct {
	controllers.BaseAPIController
}

func InitUsersApiRouters(app *fiber.App) {
	controller := usersApiController{}
	app.Route("users", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Route("managers", func(managerRouter fiber.Router) {
			managerRouter.Post("leaders", controller.createTeamLeader)
			managerRouter.Get("leaders", controller.listTeamLeaders)
			managerRouter.Post("help_desks", controller.createHelpDesk)
		})
		router.Route("leaders", func(leaderRouter fiber.Router) {
			leaderRouter.Post("employees", controller.createEmployee)
			leaderRouter.Get("employees", controller.listEmployees)
		})
		router.Get(":id", controller.get)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Создать руководителя группы
// @Tags Пользователи
// @Description Создать руководителя группы, подчиненного текущему менеджеру
// @Param   Authorization		header		string						true	"Authorization token"
// @Param	body				body		userapimodels.CreateUser	true	"request body"
// @Success 201 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 400 {object} apimodels.ValidationResponse
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/managers/leaders [post]
func (c *usersApiController) createTeamLeader(ctx *fiber.Ctx) error {
	var payload userapimodels.CreateUser
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := usershandler.Instance.CreateTeamLeader(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания руководителя группы")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Список руководителей групп
// @Tags Пользователи
// @Description Руководители групп текущего менеджера
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]userapimodels.UserView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/managers/leaders [get]
func (c *usersApiController) listTeamLeaders(ctx *fiber.Ctx) error {
	resp, err := usershandler.Instance.ListTeamLeaders(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка руководителей групп")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создать сотрудника службы поддержки
// @Tags Пользователи
// @Description Создать сотрудника службы поддержки
// @Param   Authorization		header		string						true	"Authorization token"
// @Param	body				body		userapimodels.CreateUser	true	"request body"
// @Success 201 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 400 {object} apimodels.ValidationResponse
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/managers/help_desks [post]
func (c *usersApiController) createHelpDesk(ctx *fiber.Ctx) error {
	var payload userapimodels.CreateUser
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := usershandler.Instance.CreateHelpDesk(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания сотрудника службы поддержки")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Создать сотрудника
// @Tags Пользователи
// @Description Создать сотрудника в группе текущего руководителя
// @Param   Authorization		header		string						true	"Authorization token"
// @Param	body				body		userapimodels.CreateUser	true	"request body"
// @Success 201 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 400 {object} apimodels.ValidationResponse
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/leaders/employees [post]
func (c *usersApiController) createEmployee(ctx *fiber.Ctx) error {
	var payload userapimodels.CreateUser
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := usershandler.Instance.CreateEmployee(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания сотрудника")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Список сотрудников
// @Tags Пользователи
// @Description Сотрудники группы текущего руководителя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]userapimodels.UserView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/leaders/employees [get]
func (c *usersApiController) listEmployees(ctx *fiber.Ctx) error {
	resp, err := usershandler.Instance.ListEmployees(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получить пользователя
// @Tags Пользователи
// @Description Получить пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id} [get]
func (c *usersApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := usershandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удалить пользователя
// @Tags Пользователи
// @Description Удалить пользователя. Подчиненные открепляются, пользователь с заявками не удаляется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"rec ID"
// @Success 204
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id} [delete]
func (c *usersApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = usershandler.Instance.Delete(middleware.GetUserID(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления пользователя")
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
