package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	_, withRequestID := ftm[RequestID]
	return func(c *fiber.Ctx) error {
		d := &data{pid: pid, start: time.Now()}
		if withRequestID {
			// идентификатор нужен в ответе и при ошибке обработчика
			requestID(c)
		}
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}
		if skip(cfg, c) {
			return err
		}

		message := getMessage(c)
		fields := getLogrusFields(ftm, c, d)
		var entity *log.Entry
		if cfg.Logger == nil {
			entity = log.WithFields(fields)
		} else {
			entity = cfg.Logger.WithFields(fields)
		}
		if err != nil {
			entity = entity.WithError(err)
		}
		status := c.Response().StatusCode()
		switch {
		case err != nil || status >= fiber.StatusInternalServerError:
			entity.Error(message)
		case status >= fiber.StatusMultipleChoices:
			entity.Warn(message)
		default:
			entity.Info(message)
		}

		return err
	}
}

func skip(cfg Config, c *fiber.Ctx) bool {
	for _, path := range cfg.SkipPaths {
		if c.Path() == path {
			return true
		}
	}
	return false
}

func getMessage(c *fiber.Ctx) string {
	return "запрос api"
}
