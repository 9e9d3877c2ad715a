package middleware

import (
	"strings"

	"hr-suite-backend/lib/access"
	"hr-suite-backend/lib/metrics"
	apimodels "hr-suite-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const (
	decisionLocalsKey = "access_decision"
	apiPrefix         = "/api/"
)

// AccessControl определяет пользователя по утверждениям сессии и применяет решение о доступе.
// Для страниц отказ превращается в 302, для /api/ в JSON 401/403 с теми же метаданными.
func AccessControl() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Method() == fiber.MethodOptions {
			return ctx.Next()
		}
		identity := resolveIdentity(ctx)
		ctx.Locals(identityLocalsKey, identity)

		decision := access.Instance.Evaluate(access.Request{
			Path:     ctx.Path(),
			Identity: identity,
		})
		ctx.Locals(decisionLocalsKey, decision)
		metrics.Instance.ObserveDecision(string(decision.Outcome), string(decision.Reason))

		if decision.Allowed() {
			return ctx.Next()
		}

		logger := log.WithField("path", ctx.Path()).
			WithField("reason", decision.Reason).
			WithField("target", decision.Target)
		if identity != nil {
			logger = logger.WithField("user_id", identity.UserID).WithField("role", identity.Role)
		}
		logger.Info("доступ к разделу перенаправлен")

		if isAPIPath(ctx.Path()) {
			status := fiber.StatusForbidden
			if decision.Reason == access.UnauthenticatedReason {
				status = fiber.StatusUnauthorized
			}
			return ctx.Status(status).JSON(apimodels.NewFailure(string(decision.Reason), decision.Metadata))
		}
		return ctx.Redirect(decision.Location(), fiber.StatusFound)
	}
}

// GetDecision решение, принятое AccessControl для текущего запроса
func GetDecision(ctx *fiber.Ctx) (access.Decision, bool) {
	decision, ok := ctx.Locals(decisionLocalsKey).(access.Decision)
	return decision, ok
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, apiPrefix)
}
