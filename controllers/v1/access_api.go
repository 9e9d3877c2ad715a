package apiv1

import (
	"hr-suite-backend/controllers"
	"hr-suite-backend/lib/access"
	approvalhandler "hr-suite-backend/lib/approval"
	"hr-suite-backend/lib/guard"
	"hr-suite-backend/lib/rbac"
	"hr-suite-backend/middleware"
	"hr-suite-backend/models"
	apimodels "hr-suite-backend/models/api"
	accessapimodels "hr-suite-backend/models/api/access"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type accessApiController struct {
	controllers.BaseAPIController
}

func InitAccessApiRouters(app fiber.Router) {
	controller := accessApiController{}
	app.Route("access", func(router fiber.Router) {
		router.Get("me", controller.Me)
		router.Get("approval-status", controller.ApprovalStatus)
		router.Post("role-setup", controller.RoleSetup)
		router.Route("accounts", func(accountsRoute fiber.Router) {
			accountsRoute.Use(middleware.RequireAccess(guard.Permission(models.ApproveUsersPermission)))
			accountsRoute.Get("pending", controller.ListPending)
			accountsRoute.Put(":id/approve", controller.Approve)
		})
	})
}

// @Summary Текущий пользователь
// @Tags Доступ
// @Description Роль, стартовая страница и разрешения текущего пользователя, сгруппированные по модулям
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=accessapimodels.Me}
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @router /api/v1/access/me [get]
func (c *accessApiController) Me(ctx *fiber.Ctx) error {
	identity, _ := middleware.GetIdentity(ctx)
	if identity == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
	}
	result := accessapimodels.Me{
		UserID:      identity.UserID,
		Role:        identity.Role,
		RoleName:    identity.Role.ToHuman(),
		Landing:     access.Instance.Landing(identity.Role),
		Permissions: rbac.Instance.PermissionsByModule(identity.Role),
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Статус подтверждения роли
// @Tags Доступ
// @Description Статус запроса роли. Если учетной записи еще нет, статус берется из утверждений сессии
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=accessapimodels.ApprovalStatus}
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/access/approval-status [get]
func (c *accessApiController) ApprovalStatus(ctx *fiber.Ctx) error {
	identity, _ := middleware.GetIdentity(ctx)
	if identity == nil || identity.UserID == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
	}
	status, err := approvalhandler.Instance.Status(identity.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if status == (accessapimodels.ApprovalStatus{}) {
		status = accessapimodels.ApprovalStatus{
			Role:          identity.Role,
			RequestedRole: identity.RequestedRole,
			IsApproved:    identity.HasRole() && !identity.PendingApproval(),
		}
		if status.IsApproved {
			status.Landing = access.Instance.Landing(identity.Role)
		}
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(approvalhandler.ForSession(status, *identity)))
}

// @Summary Запросить роль
// @Tags Доступ
// @Description Запрос роли пользователем без роли. Роль становится активной после подтверждения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		accessapimodels.RoleSetupRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=accessapimodels.ApprovalStatus}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/access/role-setup [post]
func (c *accessApiController) RoleSetup(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
	}
	var payload accessapimodels.RoleSetupRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	status, err := approvalhandler.Instance.RequestRole(userID, models.ParseRole(payload.Role))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(status))
}

// @Summary Пользователи, ожидающие подтверждения
// @Tags Доступ
// @Description Список пользователей, запросивших роль
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	page				query		int		false	"Страница (1,2,3..)"
// @Param	limit				query		int		false	"Записей на странице"
// @Success 200 {object} apimodels.Response{data=[]accessapimodels.AccessAccount}
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/access/accounts/pending [get]
func (c *accessApiController) ListPending(ctx *fiber.Ctx) error {
	page, limit := apimodels.Pagination{
		Page:  c.QueryInt(ctx, "page", 1),
		Limit: c.QueryInt(ctx, "limit", 10),
	}.GetPage()
	list, err := approvalhandler.Instance.ListPending(page, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Подтвердить роль
// @Tags Доступ
// @Description Подтвердить запрошенную пользователем роль. Роль выше собственной назначить нельзя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"идентификатор пользователя (sub)"
// @Success 200 {object} apimodels.Response{data=accessapimodels.AccessAccount}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/access/accounts/{id}/approve [put]
func (c *accessApiController) Approve(ctx *fiber.Ctx) error {
	externalID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	approver := approvalhandler.Approver{
		UserID: middleware.GetUserID(ctx),
		Role:   middleware.GetUserRole(ctx),
	}
	account, err := approvalhandler.Instance.Approve(externalID, approver)
	if err != nil {
		if errors.Is(err, approvalhandler.ErrAccountNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		if errors.Is(err, approvalhandler.ErrRoleNotGrantable) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(account))
}
