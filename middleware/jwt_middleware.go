package middleware

import (
	"strings"

	"hr-suite-backend/config"
	authutils "hr-suite-backend/lib/utils/auth-utils"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const bearerScheme = "Bearer"

// SessionClaims разбирает токен сессии из заголовка Authorization или cookie.
// Запрос без токена или с негодным токеном не отклоняется, а идет дальше анонимным:
// решение принимает AccessControl.
func SessionClaims() fiber.Handler {
	secret := config.Conf.Auth.JWTSecret
	if strings.TrimSpace(secret) == "" {
		// пустым ключом подпись подделывается тривиально, все запросы считаем анонимными
		log.Error("не задан ключ подписи сессии, все запросы обрабатываются как анонимные")
		return func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(secret),
		},
		ContextKey: authutils.ClaimsLocalsKey,
		// при своем TokenLookup схема по умолчанию не подставляется
		TokenLookup: "header:" + fiber.HeaderAuthorization + ",cookie:" + config.Conf.Auth.SessionCookie,
		AuthScheme:  bearerScheme,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			if !errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				log.WithError(err).WithField("path", ctx.Path()).Debug("токен сессии не прошел проверку")
			}
			return ctx.Next()
		},
	})
}
