package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TagPid      = "pid"
	TagLatency  = "latency"
	TagStatus   = "status"
	TagMethod   = "method"
	TagPath     = "path"
	TagURL      = "url"
	TagIP       = "ip"
	TagBody     = "body"
	TagResBody  = "resBody"
	TagUserID   = "user_id"
	TagDecision = "access_decision"
	RequestID   = "request_id"
)

// RequestIDHeader заголовок, из которого берется идентификатор запроса, если клиент его передал
const RequestIDHeader = fiber.HeaderXRequestID

// UserIDResolver и DecisionResolver задаются снаружи, чтобы пакет не зависел от middleware
var (
	UserIDResolver   func(c *fiber.Ctx) string
	DecisionResolver func(c *fiber.Ctx) string
)

const maxBodyLen = 2048

// FuncTag вычисляет значение поля лога
type FuncTag func(c *fiber.Ctx, d *data) interface{}

// data состояние одного запроса
type data struct {
	pid   int
	start time.Time
	end   time.Time
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(_ *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Response().StatusCode()
		},
		TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Path()
		},
		TagURL: func(c *fiber.Ctx, _ *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, _ *data) interface{} {
			return c.IP()
		},
		TagBody: func(c *fiber.Ctx, _ *data) interface{} {
			return truncate(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, _ *data) interface{} {
			return truncate(c.Response().Body())
		},
		TagUserID: func(c *fiber.Ctx, _ *data) interface{} {
			if UserIDResolver == nil {
				return ""
			}
			return UserIDResolver(c)
		},
		TagDecision: func(c *fiber.Ctx, _ *data) interface{} {
			if DecisionResolver == nil {
				return ""
			}
			return DecisionResolver(c)
		},
		RequestID: func(c *fiber.Ctx, _ *data) interface{} {
			return requestID(c)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

// requestID берется из заголовка или генерируется и возвращается клиенту
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestID).(string); ok {
		return id
	}
	id := c.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals(RequestID, id)
	c.Set(RequestIDHeader, id)
	return id
}

func truncate(body []byte) string {
	if len(body) > maxBodyLen {
		return string(body[:maxBodyLen]) + "..."
	}
	return string(body)
}
