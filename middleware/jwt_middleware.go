package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"mail-approval-backend/config"
	tokenblacklist "mail-approval-backend/lib/token-blacklist"
	authutils "mail-approval-backend/lib/utils/auth-utils"
	apimodels "mail-approval-backend/models/api"
)

func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		SuccessHandler: checkToken,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return unauthorized(ctx, "требуется авторизация")
		},
	})
}

// checkToken отсекает refresh-токены и отозванные после выхода токены
func checkToken(ctx *fiber.Ctx) error {
	claims := authutils.GetClaims(ctx)
	if authutils.GetTokenType(claims) == authutils.TokenTypeRefresh {
		return unauthorized(ctx, "refresh token не может использоваться для доступа")
	}
	if jti := authutils.GetTokenID(claims); jti != "" && tokenblacklist.Instance != nil {
		revoked, err := tokenblacklist.Instance.IsRevoked(ctx.UserContext(), jti)
		if err != nil {
			log.WithError(err).Error("ошибка проверки отозванного токена")
			return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("ошибка проверки токена"))
		}
		if revoked {
			return unauthorized(ctx, "токен отозван")
		}
	}
	return ctx.Next()
}

func unauthorized(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(msg))
}
