package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type errNotification struct {
	Code   int    `json:"code"`
	Method string `json:"method"`
	Path   string `json:"path"`
	UserID string `json:"user_id,omitempty"`
	Error  string `json:"error"`
}

var notifyClient = &http.Client{Timeout: 5 * time.Second}

// ErrNotify отправляет сведения об ответах 5xx на addr. Пустой addr отключает отправку.
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if addr == "" {
			return err
		}
		statusCode := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				statusCode = fiberErr.Code
			} else {
				statusCode = fiber.StatusInternalServerError
			}
		}
		if statusCode < http.StatusInternalServerError {
			return err
		}

		var data struct {
			Message string `json:"message"`
		}
		if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr != nil {
			log.WithError(unmErr).Debug("ответ с ошибкой не в формате api")
		}
		msg := data.Message
		if msg == "" && err != nil {
			msg = err.Error()
		}

		notification := errNotification{
			Code:   statusCode,
			Method: c.Method(),
			Path:   c.OriginalURL(),
			UserID: GetUserID(c),
			Error:  msg,
		}
		if r := c.Route(); r != nil {
			notification.Path = r.Path
		}

		go sendErrNotification(addr, notification)
		return err
	}
}

func sendErrNotification(addr string, notification errNotification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		log.WithError(err).Warn("ошибка формирования уведомления об ошибке")
		return
	}
	resp, err := notifyClient.Post(addr, fiber.MIMEApplicationJSON, strings.NewReader(string(payload)))
	if err != nil {
		log.WithError(err).Warn("ошибка отправки уведомления об ошибке")
		return
	}
	_ = resp.Body.Close()
}
