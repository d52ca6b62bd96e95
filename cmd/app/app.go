package app

import (
	"context"
	"log"

	"github.com/Kiranpjk/RapidGigs-sub001/configs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/handlers"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/hub"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/repositories"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/servers/database"
	httpServer "github.com/Kiranpjk/RapidGigs-sub001/internal/servers/http"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/services"

	"github.com/redis/go-redis/v9"
)

// App wires the messaging core together. Every dependency is constructed
// explicitly and passed down so each piece can be substituted in tests.
type App struct {
	ctx     context.Context
	configs *configs.Config
	redis   *redis.Client
}

func New() *App {
	return &App{}
}

func (app *App) Run() {
	app.ctx = context.Background()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load configs: %v", err)
	}
	app.configs = cfg

	app.redis = redis.NewClient(&redis.Options{
		Addr: cfg.Viper.GetString("redis.addr"),
	})

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	socketHub := hub.NewHub(app.ctx, app.redis)
	if err := socketHub.Run(); err != nil {
		log.Fatalf("Failed to start fan-out loop: %v", err)
	}

	chatRepo := repositories.NewChatRepository(db)
	presenceRepo := repositories.NewPresenceRepository(db)
	typingRepo := repositories.NewTypingRepository(db)
	directoryRepo := repositories.NewDirectoryRepository(db)

	chatService := services.NewChatService(chatRepo, directoryRepo, socketHub)
	presenceService := services.NewPresenceService(app.ctx, presenceRepo, socketHub, app.redis)
	typingService := services.NewTypingService(typingRepo, chatRepo, socketHub)

	restHandler := handlers.NewRestHandler(chatService, presenceService)
	socketHandler := handlers.NewSocketHandler(socketHub, chatService, presenceService, typingService, cfg.JwtKey())

	httpServer.NewHttpServer(
		app.ctx,
		cfg.Viper.GetString("server.port"),
		cfg.JwtKey(),
		restHandler,
		socketHandler,
		socketHub,
	).Run()
}
