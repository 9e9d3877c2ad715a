package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.DebugLevel)
	return logger
}

func readEntries(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger(t *testing.T) {
	t.Run(`fields and level by status`, func(t *testing.T) {
		buf := new(bytes.Buffer)
		app := fiber.New()
		app.Use(New(Config{
			Logger:    newTestLogger(buf),
			Tags:      []string{TagMethod, TagPath, TagStatus, RequestID},
			SkipPaths: []string{"/health"},
		}))
		app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
		app.Get("/moved", func(c *fiber.Ctx) error { return c.Redirect("/sign-in", fiber.StatusFound) })
		app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		for _, path := range []string{"/ok", "/moved", "/health"} {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
			require.NoError(t, err)
			require.NotEmpty(t, resp.Header.Get(RequestIDHeader))
		}

		entries := readEntries(t, buf)
		require.Len(t, entries, 2)
		require.Equal(t, "/ok", entries[0][TagPath])
		require.Equal(t, "info", entries[0]["level"])
		require.EqualValues(t, fiber.StatusOK, entries[0][TagStatus])
		require.NotEmpty(t, entries[0][RequestID])
		require.Equal(t, "/moved", entries[1][TagPath])
		require.Equal(t, "warning", entries[1]["level"])
	})

	t.Run(`request id taken from header`, func(t *testing.T) {
		buf := new(bytes.Buffer)
		app := fiber.New()
		app.Use(New(Config{Logger: newTestLogger(buf), Tags: []string{RequestID}}))
		app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		req := httptest.NewRequest(fiber.MethodGet, "/ok", nil)
		req.Header.Set(RequestIDHeader, "req-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, "req-1", resp.Header.Get(RequestIDHeader))
		require.Equal(t, "req-1", readEntries(t, buf)[0][RequestID])
	})

	t.Run(`resolvers`, func(t *testing.T) {
		UserIDResolver = func(c *fiber.Ctx) string { return "user-1" }
		DecisionResolver = func(c *fiber.Ctx) string { return "authorized" }
		defer func() {
			UserIDResolver = nil
			DecisionResolver = nil
		}()

		buf := new(bytes.Buffer)
		app := fiber.New()
		app.Use(New(Config{Logger: newTestLogger(buf), Tags: []string{TagUserID, TagDecision}}))
		app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
		require.NoError(t, err)
		entry := readEntries(t, buf)[0]
		require.Equal(t, "user-1", entry[TagUserID])
		require.Equal(t, "authorized", entry[TagDecision])
	})
}
