package middleware

import (
	"hr-suite-backend/lib/claims"
	authutils "hr-suite-backend/lib/utils/auth-utils"
	"hr-suite-backend/models"

	"github.com/gofiber/fiber/v2"
)

const identityLocalsKey = "identity"

// resolveIdentity nil означает анонимный запрос
func resolveIdentity(ctx *fiber.Ctx) *claims.Identity {
	raw := authutils.GetClaims(ctx)
	if len(raw) == 0 {
		return nil
	}
	identity := claims.Normalize(raw)
	return &identity
}

// GetIdentity пользователь, определенный AccessControl; found=false если проверка еще не выполнялась
func GetIdentity(ctx *fiber.Ctx) (identity *claims.Identity, found bool) {
	value := ctx.Locals(identityLocalsKey)
	if value == nil {
		return nil, false
	}
	identity, ok := value.(*claims.Identity)
	return identity, ok
}

func GetUserID(ctx *fiber.Ctx) string {
	identity, _ := GetIdentity(ctx)
	if identity == nil {
		return ""
	}
	return identity.UserID
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	identity, _ := GetIdentity(ctx)
	if identity == nil {
		return ""
	}
	return identity.Role
}
