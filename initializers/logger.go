package initializers

import (
	"hr-suite-backend/config"
	"hr-suite-backend/fiberlog"
	"hr-suite-backend/middleware"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func InitLogger() *fiberlog.Config {
	level, err := log.ParseLevel(config.Conf.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetFormatter(&log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	})
	log.SetLevel(level)
	if err != nil {
		log.WithError(err).Warn("неизвестный уровень логирования, используется info")
	}

	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	})
	logger.SetLevel(level)

	fiberlog.UserIDResolver = middleware.GetUserID
	fiberlog.DecisionResolver = func(c *fiber.Ctx) string {
		decision, ok := middleware.GetDecision(c)
		if !ok {
			return ""
		}
		return string(decision.Reason)
	}
	return &fiberlog.Config{
		Logger: logger,
		Tags: []string{
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagUserID,
			fiberlog.TagDecision,
			fiberlog.RequestID,
		},
		SkipPaths: []string{"/health", "/metrics"},
	}
}
