package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	inhttp "github.com/easyconsult/consult-service/internal/adapters/in/http"
	"github.com/easyconsult/consult-service/internal/adapters/out/cache"
	"github.com/easyconsult/consult-service/internal/adapters/out/events"
	"github.com/easyconsult/consult-service/internal/adapters/out/logger"
	"github.com/easyconsult/consult-service/internal/adapters/out/postgres"
	"github.com/easyconsult/consult-service/internal/config"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
	"github.com/easyconsult/consult-service/internal/core/services/consult_service"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"cacheEnabled":    cfg.Cache.Enabled,
		"cacheBackend":    cfg.Cache.Backend,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.Connect(cfg, log.WithModule("Postgres"))
	if err != nil {
		os.Exit(1)
	}
	if err := postgres.Migrate(db, log.WithModule("Postgres")); err != nil {
		os.Exit(1)
	}

	repository := postgres.NewConsultRepository(db, log)

	var cachePort out.CachePort
	if cfg.Cache.Enabled {
		switch cfg.Cache.Backend {
		case config.CacheBackendRedis:
			adapter, err := cache.NewRedisCacheAdapter(cfg, log)
			if err != nil {
				log.Error("app.cache.init_failed", out.LogFields{
					"error": err.Error(),
				})
				os.Exit(1)
			}
			cachePort = adapter
			defer adapter.Close()
		default:
			adapter, err := cache.NewMemoryCacheAdapter(cfg, log)
			if err != nil {
				log.Error("app.cache.init_failed", out.LogFields{
					"error": err.Error(),
				})
				os.Exit(1)
			}
			cachePort = adapter
		}
	}

	var publisher out.EventPublisherPort
	if cfg.RabbitMQ.Enabled {
		rabbitPublisher, err := events.NewRabbitMqPublisher(cfg, log)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		publisher = rabbitPublisher
		defer func() {
			if err := rabbitPublisher.Close(); err != nil {
				log.Error("app.rabbitmq.close_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	service := consult_service.NewConsultService(repository, cachePort, publisher, cfg, log)

	router := gin.Default()
	controller := inhttp.NewConsultController(service, service, cfg)
	controller.RegisterRoutes(router)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
