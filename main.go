package main

import (
	"context"
	"log"

	"campustalk/server/internal/chat"
	"campustalk/server/internal/config"
	"campustalk/server/internal/database"
	"campustalk/server/internal/handlers"
	"campustalk/server/internal/presence"
	"campustalk/server/internal/routes"
	"campustalk/server/internal/store"
	"campustalk/server/internal/utils"
	ws "campustalk/server/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("schema bootstrap failed", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}
	defer rdb.Close()

	users := store.NewUserStore(pool)
	friends := store.NewFriendStore(pool)
	messages := store.NewMessageStore(pool)

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	broker := presence.NewBroker(rdb, logger)
	typing := presence.NewTyping(broker, presence.DefaultTimeout)
	defer typing.Close()
	go func() {
		if err := broker.Relay(ctx, hub); err != nil && ctx.Err() == nil {
			logger.Error("typing relay stopped", zap.Error(err))
		}
	}()

	friendSvc := chat.NewFriendService(users, friends, messages, hub, logger)
	messageSvc := chat.NewMessageService(users, friends, messages, hub, typing, logger)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	app := fiber.New(fiber.Config{
		AppName: "CampusTalk API v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Auth:     handlers.NewAuthHandler(users, tokens, cfg.TokenTTL, logger),
		Friends:  handlers.NewFriendHandler(friendSvc, logger),
		Messages: handlers.NewMessageHandler(messageSvc, logger),
		WS:       handlers.NewWSHandler(hub, typing, logger),
		Tokens:   tokens,
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
