package views

import (
	"hr-suite-backend/controllers"
	"hr-suite-backend/lib/access"
	"hr-suite-backend/lib/rbac"
	"hr-suite-backend/middleware"
	"hr-suite-backend/models"
	apimodels "hr-suite-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// PageView данные для отрисовки страницы. Сама отрисовка выполняется фронтом.
type PageView struct {
	Path        string              `json:"path"`
	Role        models.UserRole     `json:"role,omitempty"`
	RoleName    string              `json:"role_name,omitempty"`
	Landing     string              `json:"landing,omitempty"`
	Permissions []models.Permission `json:"permissions,omitempty"`
	// параметры, с которыми пришел редирект на служебную страницу
	ReturnPath    string `json:"return_path,omitempty"`
	RequiredRoles string `json:"required_roles,omitempty"`
	CurrentRole   string `json:"current_role,omitempty"`
}

type pageController struct {
	controllers.BaseAPIController
}

func InitPageRouters(app fiber.Router) {
	controller := pageController{}
	app.Get("/health", controller.Health)
	app.Get("/*", controller.Page)
}

func (c *pageController) Health(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *pageController) Page(ctx *fiber.Ctx) error {
	view := PageView{
		Path:          rbac.NormalizePath(ctx.Path()),
		ReturnPath:    ctx.Query(access.PathParam),
		RequiredRoles: ctx.Query(access.RequiredParam),
		CurrentRole:   ctx.Query(access.CurrentParam),
	}
	if identity, _ := middleware.GetIdentity(ctx); identity != nil && identity.HasRole() {
		view.Role = identity.Role
		view.RoleName = identity.Role.ToHuman()
		view.Landing = access.Instance.Landing(identity.Role)
		view.Permissions = rbac.Instance.PermissionsOf(identity.Role)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
