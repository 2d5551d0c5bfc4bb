package middleware

import (
	"github.com/gofiber/fiber/v2"
	authutils "mail-approval-backend/lib/utils/auth-utils"
	"mail-approval-backend/models"
)

func GetUserID(ctx *fiber.Ctx) string {
	return authutils.GetUserID(authutils.GetClaims(ctx))
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return authutils.GetRole(authutils.GetClaims(ctx))
}
