package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diplomacy_replay/internal/bot"
	"diplomacy_replay/internal/config"
	"diplomacy_replay/internal/db"
	"diplomacy_replay/internal/domain"
	httpServer "diplomacy_replay/internal/http"
	"diplomacy_replay/internal/http/middleware"
	"diplomacy_replay/internal/logger"
	"diplomacy_replay/internal/mapdata"
	"diplomacy_replay/internal/repository"
	"diplomacy_replay/internal/service"
	"diplomacy_replay/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version устанавливается при сборке
var Version = "dev"

func main() {
	cfg := config.Load()

	// Инициализация структурированного логгера
	jsonLogs := os.Getenv("LOG_FORMAT") == "json"
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(logLevel, jsonLogs)
	log := logger.Get()

	service.InitJWT()

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	archive := repository.NewArchiveRepository(dbPool)
	events := repository.NewEventRepository(dbPool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := archive.EnsureSchema(ctx); err != nil {
		cancel()
		logger.Fatal("schema init failed", "error", err)
	}
	if err := events.EnsureSchema(ctx); err != nil {
		cancel()
		logger.Fatal("schema init failed", "error", err)
	}

	// импорт игровых файлов с диска в архив
	importer := service.NewImporter(archive)
	if n, err := importer.ImportDir(ctx, cfg.GamesDir); err != nil {
		log.Warn("import skipped", "dir", cfg.GamesDir, "error", err)
	} else if n > 0 {
		log.Info("games imported", "count", n)
	}
	cancel()

	// файлы координат карт
	maps := mapdata.NewStore()
	if err := maps.LoadDir(cfg.MapDataDir); err != nil {
		log.Warn("map data unavailable", "dir", cfg.MapDataDir, "error", err)
	}

	hub := ws.NewHub()

	theater := service.NewTheater(service.TheaterConfig{
		AdvanceInterval: cfg.AdvanceInterval,
		FrameInterval:   cfg.FrameInterval,
		VictoryDwell:    cfg.VictoryDwell,
		VictoryPhrases:  cfg.VictoryPhrases,
		Autoplay:        cfg.Autoplay,
		MapVariant:      cfg.MapVariant,
	}, archive, hub, maps, nil)
	theater.SetEventRecorder(events)

	r := gin.Default()

	// CORS для прода и связи фронта с бэкендом (разные домены)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, theater, archive, events, hub, cfg.OperatorKey)

	// Запуск админ бота ПЕРЕД движком, чтобы уведомления были подхвачены
	var adminBot *bot.AdminBot
	if cfg.AdminBotEnabled && len(cfg.AdminTelegramIDs) > 0 {
		var err error
		adminBot, err = bot.NewAdminBot(cfg.BotToken, theater, cfg.AdminTelegramIDs)
		if err != nil {
			log.Error("failed to start admin bot", "error", err)
		} else {
			go adminBot.Start()
			theater.SetNotifier(adminBot)
			log.Info("admin bot started", "admin_ids", cfg.AdminTelegramIDs)
		}
	}

	// запуск движка воспроизведения
	if err := theater.Start(context.Background()); err != nil {
		if errors.Is(err, domain.ErrNoMoreGames) {
			log.Warn("archive is empty, waiting for games to be imported")
		} else {
			logger.Fatal("theater start failed", "error", err)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Info("server started", "port", cfg.AppPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	theater.Shutdown()
	if adminBot != nil {
		adminBot.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
}
