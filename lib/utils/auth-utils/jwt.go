package authutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsLocalsKey ключ, под которым jwt middleware кладет токен в контекст
const ClaimsLocalsKey = "user"

// GetClaims утверждения сессии или пустой набор, если токена нет или он не прошел проверку
func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals(ClaimsLocalsKey).(*jwt.Token)
	if !ok || token == nil || !token.Valid {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}
