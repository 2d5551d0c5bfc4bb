package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"mail-approval-backend/config"
	apiv1 "mail-approval-backend/controllers/v1"
	"mail-approval-backend/fiberlog"
	"mail-approval-backend/initializers"
	"mail-approval-backend/lib/metrics"
	"mail-approval-backend/middleware"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.Conf.App.BodyLimit),
	})
	app.Use(fiberRecover.New())

	if _, err := os.Stat(config.Conf.App.SwaggerFile); err == nil {
		swaggerCfg := swagger.Config{
			Path:     "/swagger",
			FilePath: config.Conf.App.SwaggerFile,
		}
		app.Use(swagger.New(swaggerCfg))
	} else {
		log.WithField("file", config.Conf.App.SwaggerFile).Warn("файл swagger не найден, документация API отключена")
	}

	//service
	apiv1.InitHealthApiRouters(app)
	if *config.Conf.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE",
	}))
	apiV1.Use(middleware.WithBodyLimit(config.Conf.App.BodyLimit))
	if config.Conf.App.ErrNotifyAddr != "" {
		apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyAddr))
	}
	apiv1.InitAuthApiRouters(apiV1)
	apiv1.InitUsersApiRouters(apiV1)
	apiv1.InitMailRequestApiRouters(apiV1)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-c
		log.Info("Завершение работы сервиса...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Ошибка при завершении работы сервиса")
		}
		if initializers.RedisClient != nil {
			if err := initializers.RedisClient.Close(); err != nil {
				log.WithError(err).Error("Ошибка закрытия соединения с redis")
			}
		}
		time.Sleep(time.Second)
		log.Info("Завершение работы сервиса выполнено")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP сервер остановлен")
}
