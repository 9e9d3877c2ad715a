package ws

import (
	"context"
	"time"

	approvalhandler "hr-suite-backend/lib/approval"
	"hr-suite-backend/lib/claims"
	"hr-suite-backend/lib/metrics"
	wsclient "hr-suite-backend/lib/ws/client"
	connectionhub "hr-suite-backend/lib/ws/hub/connection-hub"
	"hr-suite-backend/middleware"
	apimodels "hr-suite-backend/models/api"
	accessapimodels "hr-suite-backend/models/api/access"
	wsmodels "hr-suite-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const identityLocalsKey = "wsIdentity"

var serverCtx = context.Background()

// InitWs ctx - контекст сервера, при его отмене останавливаются все отслеживания статуса
func InitWs(ctx context.Context, router fiber.Router) {
	serverCtx = ctx
	router.Get("/approval-status/ws", upgradeRequired, websocket.New(approvalStatusHandler))
}

func upgradeRequired(ctx *fiber.Ctx) error {
	identity, _ := middleware.GetIdentity(ctx)
	if identity == nil || identity.UserID == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
	}
	if !websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Status(fiber.StatusUpgradeRequired).JSON(apimodels.NewError("требуется websocket соединение"))
	}
	ctx.Locals(identityLocalsKey, *identity)
	return ctx.Next()
}

// @Summary Статус подтверждения роли
// @Tags Websocket Доступ
// @Description Отправляет статус подтверждения при подключении и при каждом изменении, пока роль не подтверждена
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 401 {object} apimodels.Response
// @Failure 426 {object} apimodels.Response
// @router /api/v1/access/approval-status/ws [get]
func approvalStatusHandler(c *websocket.Conn) {
	identity, _ := c.Locals(identityLocalsKey).(claims.Identity)
	userID := identity.UserID
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	metrics.Instance.WatcherStarted()

	watch := approvalhandler.Instance.Watch(serverCtx, userID, func(status accessapimodels.ApprovalStatus) {
		connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
			ToUserID: userID,
			Time:     time.Now().Format("02.01.2006 15:04:05"),
			Code:     wsmodels.ApprovalStatusCode,
			Data:     approvalhandler.ForSession(status, identity),
		})
	})
	defer func() {
		watch.Stop()
		metrics.Instance.WatcherStopped()
		connectionhub.Instance.DeleteClient(userID, c)
	}()
	client.Dispatch()
}
