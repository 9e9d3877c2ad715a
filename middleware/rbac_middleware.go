package middleware

import (
	"hr-suite-backend/lib/claims"
	"hr-suite-backend/lib/guard"
	"hr-suite-backend/lib/metrics"
	"hr-suite-backend/lib/rbac"
	apimodels "hr-suite-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// RequireAccess проверка прав на уровне обработчика, дополняет проверку раздела
func RequireAccess(requirement guard.Requirement) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		subject := guard.Loading()
		if identity, found := GetIdentity(ctx); found {
			if identity == nil {
				// аноним: пользователь определен, но роли нет
				identity = &claims.Identity{}
			}
			subject = guard.Resolved(*identity)
		}

		result := guard.New(rbac.Instance).Check(subject, requirement)
		metrics.Instance.ObserveGuard(string(result.Status))

		switch result.Status {
		case guard.AllowedStatus:
			return ctx.Next()
		case guard.LoadingStatus:
			// сюда попадаем только если AccessControl не подключен перед обработчиком
			log.WithField("path", ctx.Path()).Error("пользователь не определен к моменту проверки прав")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("пользователь не определен"))
		default:
			log.WithField("path", ctx.Path()).
				WithField("user_id", GetUserID(ctx)).
				WithField("role", result.Detail.Role).
				WithField("reason", result.Detail.Reason).
				Info("недостаточно прав")
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewFailure("операция недоступна", result.Detail))
		}
	}
}
