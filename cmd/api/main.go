package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/backoffice-console/internal/application/ports"
	"github.com/jhoicas/backoffice-console/internal/application/session"
	"github.com/jhoicas/backoffice-console/internal/infrastructure/cache"
	"github.com/jhoicas/backoffice-console/internal/infrastructure/restapi"
	httpRouter "github.com/jhoicas/backoffice-console/internal/interfaces/http"
	"github.com/jhoicas/backoffice-console/pkg/config"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Caché de listas de referencia: Redis si está configurado, si no en memoria
	var store ports.Cache = cache.NewMemory()
	if cfg.Cache.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		store = cache.NewRedis(rdb, cfg.App.Name)
	}
	lookups := cache.NewLookupService(store, cfg.Cache.LookupTTL, log).WithFetchTimeout(cfg.API.Timeout)

	// Un único cliente del API; cada sesión lo copia con su token
	apiClient := restapi.NewClient(restapi.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})
	sessions := session.NewRegistry(func(token string) *session.Session {
		return session.New(apiClient, token, lookups, log)
	}, log)
	go sessions.Run(ctx, cfg.Session.SweepInterval, cfg.Session.TTL)

	// Immutable: tokens y filtros de la petición quedan guardados en las sesiones
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.API.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Backoffice Console API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sessions": sessions.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:  sessions,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log,
		Now:       time.Now,
		PerPage:   cfg.API.PerPage,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// cierra las sesiones activas y limpia su caché
	stop()
	sessions.CloseAll(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}
