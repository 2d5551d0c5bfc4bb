package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	apperrors "mail-approval-backend/lib/utils/app-errors"
	authutils "mail-approval-backend/lib/utils/auth-utils"
	apimodels "mail-approval-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("не указан параметр %v", key)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.Errorf("параметр %v имеет неправильный формат", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	claims := authutils.GetClaims(ctx)
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if userID := authutils.GetUserID(claims); userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

// SendError отвечает статусом по виду ошибки, неклассифицированные ошибки логируются и скрываются за msg
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	if fields, ok := apperrors.AsValidation(err); ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewValidationError("ошибка валидации", fields))
	}
	switch {
	case apperrors.IsNotFound(err):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(apperrors.Message(err)))
	case apperrors.IsForbidden(err):
		return ctx.SendStatus(fiber.StatusForbidden)
	case apperrors.IsConflict(err):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(apperrors.Message(err)))
	case apperrors.IsUnauthorized(err):
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(apperrors.Message(err)))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}
