package initializers

import (
	"context"
	"time"

	"hr-suite-backend/config"
	"hr-suite-backend/db"
	"hr-suite-backend/fiberlog"
	"hr-suite-backend/lib/access"
	approvalhandler "hr-suite-backend/lib/approval"
	"hr-suite-backend/lib/metrics"
	"hr-suite-backend/lib/rbac"
	initchecker "hr-suite-backend/lib/utils/init-checker"
	connectionhub "hr-suite-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitMetrics()
	InitDBConnection()
	rbac.NewHandler()
	access.NewHandler(AccessPaths(), rbac.DefaultRoutePolicy())
	approvalhandler.NewHandler(approvalPollInterval())
	connectionhub.Init()

	initchecker.CheckInit(
		"db", db.DB,
		"metrics", metrics.Instance,
		"rbac", rbac.Instance,
		"access", access.Instance,
		"approval", approvalhandler.Instance,
		"connection hub", connectionhub.Instance,
	)
}

func AccessPaths() access.Paths {
	return access.Paths{
		SignIn:          config.Conf.Access.SignInPath,
		SignUp:          config.Conf.Access.SignUpPath,
		RoleSetup:       config.Conf.Access.RoleSetupPath,
		PendingApproval: config.Conf.Access.PendingApprovalPath,
		Unauthorized:    config.Conf.Access.UnauthorizedPath,
		Public:          config.Conf.Access.PublicPaths,
	}
}

func approvalPollInterval() time.Duration {
	interval := config.Conf.Access.ApprovalPollIntervalSec
	if interval <= 0 {
		interval = 5
	}
	return time.Duration(interval) * time.Second
}
