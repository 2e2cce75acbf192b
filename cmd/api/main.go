package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/invoice-renderer/docs"

	"github.com/jhoicas/invoice-renderer/internal/application/invoice"
	"github.com/jhoicas/invoice-renderer/internal/infrastructure/metrics"
	"github.com/jhoicas/invoice-renderer/internal/infrastructure/render"
	httpRouter "github.com/jhoicas/invoice-renderer/internal/interfaces/http"
	"github.com/jhoicas/invoice-renderer/pkg/config"
	"github.com/jhoicas/invoice-renderer/pkg/logger"
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
		Str("engine", cfg.Render.Engine).
		Msg("iniciando aplicación")

	renderer, err := render.New(cfg.Render, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("renderizador de PDF")
	}

	m := metrics.New()
	invoiceUC := invoice.NewUseCase(invoice.SystemClock, renderer, m)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Render.Timeout() + time.Second*10,
		IdleTimeout:  time.Second * 60,
	}, httpRouter.RouterDeps{
		Invoice:    invoiceUC,
		Metrics:    m,
		Log:        log,
		Env:        cfg.App.Env,
		Service:    cfg.App.Name,
		CORSOrigin: cfg.HTTP.CORSOrigin,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Invoice Renderer API",
		}))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Render.Timeout()+5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
