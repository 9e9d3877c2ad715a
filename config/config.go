package config

import (
	"strings"

	"github.com/gotify/configor"
	"github.com/pkg/errors"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BodyLimit  int64  `default:"1048576" env:"APP_BODY_LIMIT"`
	}
	Log struct {
		Level        string `default:"info" env:"LOG_LEVEL"`
		ErrNotifyURL string `default:"" env:"LOG_ERR_NOTIFY_URL"`
	}
	Auth struct {
		JWTSecret     string `default:"" env:"JWT_SECRET"`
		SessionCookie string `default:"__session" env:"AUTH_SESSION_COOKIE"`
	}
	Access struct {
		SignInPath              string   `default:"/sign-in" env:"ACCESS_SIGN_IN_PATH"`
		SignUpPath              string   `default:"/sign-up" env:"ACCESS_SIGN_UP_PATH"`
		RoleSetupPath           string   `default:"/role-setup" env:"ACCESS_ROLE_SETUP_PATH"`
		PendingApprovalPath     string   `default:"/pending-approval" env:"ACCESS_PENDING_APPROVAL_PATH"`
		UnauthorizedPath        string   `default:"/unauthorized" env:"ACCESS_UNAUTHORIZED_PATH"`
		PublicPaths             []string `env:"ACCESS_PUBLIC_PATHS"`
		ApprovalPollIntervalSec int      `default:"5" env:"ACCESS_APPROVAL_POLL_INTERVAL_SEC"`
	}
	Admin struct {
		ExternalID string `default:"" env:"ADMIN_EXTERNAL_ID"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"hr-suite" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
}

// DefaultPublicPaths разделы, доступные без проверок в дополнение к страницам настройки роли и ожидания
var DefaultPublicPaths = []string{
	"/health",
	"/metrics",
	"/swagger",
	"/api/webhooks",
	"/api/v1/access/role-setup",
	"/api/v1/access/approval-status",
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	if len(conf.Access.PublicPaths) == 0 {
		conf.Access.PublicPaths = DefaultPublicPaths
	}
	if err = conf.Validate(); err != nil {
		panic(err)
	}
	Conf = conf
}

// Validate настройки, без которых сервис не должен стартовать
func (c *Configuration) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("не задан ключ подписи сессии (JWT_SECRET)")
	}
	if strings.TrimSpace(c.Auth.SessionCookie) == "" {
		return errors.New("не задано имя cookie сессии (AUTH_SESSION_COOKIE)")
	}
	return nil
}
