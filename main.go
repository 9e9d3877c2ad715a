package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"hr-suite-backend/config"
	apiv1 "hr-suite-backend/controllers/v1"
	"hr-suite-backend/controllers/views"
	"hr-suite-backend/fiberlog"
	"hr-suite-backend/initializers"
	"hr-suite-backend/lib/ws"
	"hr-suite-backend/middleware"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.Conf.App.BodyLimit),
	})
	app.Use(fiberRecover.New())
	app.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Use(middleware.ErrNotify(config.Conf.Log.ErrNotifyURL))

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(initializers.MetricsRegistry, promhttp.HandlerOpts{})))

	// все остальное проходит через проверку доступа
	app.Use(middleware.SessionClaims())
	app.Use(middleware.AccessControl())

	//api
	apiV1 := app.Group("/api/v1")
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(config.Conf.App.BodyLimit, "/api/v1/access/approval-status/ws"))
	apiv1.InitAccessApiRouters(apiV1)
	ws.InitWs(ctx, apiV1.Group("/access"))

	//страницы
	views.InitPageRouters(app)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
			return
		}
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.WithError(err).Error("HTTP server stopped with error")
		cancel()
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
