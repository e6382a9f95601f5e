package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/common/llm"
	"inkwire.app/newsroom/common/logger"
	"inkwire.app/newsroom/common/otel"
	"inkwire.app/newsroom/core/config"
	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/generate"
	"inkwire.app/newsroom/internal/http/middleware"
	httprouter "inkwire.app/newsroom/internal/http/router"
	"inkwire.app/newsroom/internal/mailer"
	"inkwire.app/newsroom/internal/queue"
	"inkwire.app/newsroom/internal/service"
	"inkwire.app/newsroom/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// slog is not configured yet at this point
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "newsroom starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Queue.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Queue.RedisStream)

	taskProducer := queue.NewRedisProducer(redisClient, cfg.Queue.RedisStream, nil)
	defer taskProducer.Close()

	variantLLM, err := llm.New(llmConfig(cfg.VariantLLM))
	if err != nil {
		slog.ErrorContext(ctx, "failed to create variant llm client", "error", err)
		os.Exit(1)
	}
	titleLLM, err := llm.New(llmConfig(cfg.TitleLLM))
	if err != nil {
		slog.ErrorContext(ctx, "failed to create title llm client", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "llm clients ready",
		"variant_model", variantLLM.Model(),
		"title_model", titleLLM.Model())

	stores := store.NewStores(database.Querier())
	mail := mailer.New(mailer.NewLogSender(nil), cfg.Mail.FromName, cfg.Mail.FromAddress)

	services := service.NewServices(service.ServicesConfig{
		Stores:          stores,
		TxRunner:        service.NewTxRunner(database),
		Producer:        taskProducer,
		Debouncer:       queue.NewRedisDebouncer(redisClient),
		Mailer:          mail,
		DashboardURL:    cfg.DashboardURL,
		ClientPortalURL: cfg.ClientPortalURL,
	})

	gen := generate.NewService(variantLLM, titleLLM)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, gen)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, gen generate.Service) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics →
	// RequestID tags the request → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, gen, httprouter.RouterConfig{
		AdminAPIKey: cfg.AdminAPIKey,
	})

	return router
}

func llmConfig(cfg config.LLMConfig) llm.Config {
	return llm.Config{
		Provider:  cfg.Provider,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
	}
}

const banner = `
███╗   ██╗███████╗██╗    ██╗███████╗██████╗  ██████╗  ██████╗ ███╗   ███╗
████╗  ██║██╔════╝██║    ██║██╔════╝██╔══██╗██╔═══██╗██╔═══██╗████╗ ████║
██╔██╗ ██║█████╗  ██║ █╗ ██║███████╗██████╔╝██║   ██║██║   ██║██╔████╔██║
██║╚██╗██║██╔══╝  ██║███╗██║╚════██║██╔══██╗██║   ██║██║   ██║██║╚██╔╝██║
██║ ╚████║███████╗╚███╔███╔╝███████║██║  ██║╚██████╔╝╚██████╔╝██║ ╚═╝ ██║
╚═╝  ╚═══╝╚══════╝ ╚══╝╚══╝ ╚══════╝╚═╝  ╚═╝ ╚═════╝  ╚═════╝ ╚═╝     ╚═╝
`
