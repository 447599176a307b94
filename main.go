package main

import (
	"context"
	"log"
	"net/http"

	"kesher_server/config"
	"kesher_server/controllers"
	"kesher_server/events"
	"kesher_server/metrics"
	"kesher_server/middleware"
	"kesher_server/models"
	"kesher_server/repositories"
	"kesher_server/routes"
	"kesher_server/services"
	"kesher_server/socket"
	"kesher_server/utils"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("❌ failed to init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	client, err := repositories.InitializeDynamoDBClient(cfg.AWSRegion)
	if err != nil {
		zap.S().Fatalf("❌ failed to initialize DynamoDB client: %v", err)
	}
	dynamo := &repositories.DynamoService{Client: client}

	profileRepo := repositories.NewDynamoProfileRepository(dynamo)
	matchRepo := repositories.NewDynamoMatchRepository(dynamo)
	messageRepo := repositories.NewDynamoMessageRepository(dynamo)
	starterRepo := repositories.NewDynamoStarterRepository(dynamo)

	dispatcher, err := events.NewDispatcher(cfg.EventPoolSize)
	if err != nil {
		zap.S().Fatalf("❌ failed to create event dispatcher: %v", err)
	}
	defer dispatcher.Close()

	moderationService := services.NewModerationService()
	profileService := services.NewProfileService(profileRepo, dispatcher)
	candidateService := services.NewCandidateService(profileRepo)
	scoreService := services.NewScoreService(profileRepo)
	matchService := services.NewMatchService(matchRepo, profileRepo, dispatcher)
	chatService := services.NewChatService(messageRepo, matchRepo, moderationService, dispatcher)
	starterService := services.NewStarterService(starterRepo, profileRepo)
	pushService := services.NewPushService(services.NewHTTPSender(cfg.PushGatewayURL), profileRepo)

	socketServer := socket.NewServer()

	dispatcher.OnMatchCreated(func(ctx context.Context, match models.Match) {
		if err := starterService.GenerateStarters(ctx, match); err != nil {
			zap.S().Errorf("🔥 starter generation failed for match %s: %v", match.MatchID, err)
		}
	})
	dispatcher.OnMatchCreated(func(ctx context.Context, match models.Match) {
		socketServer.BroadcastNewMatch(match)
	})
	dispatcher.OnMessageCreated(func(ctx context.Context, match models.Match, message models.Message) {
		if err := chatService.SyncMatchActivity(ctx, message); err != nil {
			zap.S().Errorf("🔥 lastMessageAt refresh failed for match %s: %v", message.MatchID, err)
		}
	})
	dispatcher.OnMessageCreated(func(ctx context.Context, match models.Match, message models.Message) {
		socketServer.BroadcastNewMessage(match, message)
	})
	if cfg.PushGatewayURL != "" {
		dispatcher.OnMessageCreated(func(ctx context.Context, match models.Match, message models.Message) {
			pushService.NotifyNewMessage(ctx, match, message)
		})
	}
	dispatcher.OnProfileWritten(func(ctx context.Context, userID string, profile *models.UserProfile) {
		if err := profileService.SyncPublicProfile(ctx, userID, profile); err != nil {
			zap.S().Errorf("🔥 public profile sync failed for %s: %v", userID, err)
		}
	})

	profileController := controllers.NewProfileController(profileService)
	discoveryController := controllers.NewDiscoveryController(candidateService, scoreService)
	matchController := controllers.NewMatchController(matchService, starterService)
	chatController := controllers.NewChatController(chatService, moderationService)

	go func() {
		if err := socketServer.IO().Serve(); err != nil {
			zap.S().Errorf("🔥 socket server error: %v", err)
		}
	}()
	defer socketServer.IO().Close()

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.Handle("/socket.io/", socketServer.IO())

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))
	api.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	routes.RegisterProfileRoutes(api, profileController)
	routes.RegisterDiscoveryRoutes(api, discoveryController)
	routes.RegisterMatchRoutes(api, matchController)
	routes.RegisterChatRoutes(api, chatController)

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	zap.S().Infof("🚀 server listening on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		zap.S().Fatalf("❌ server stopped: %v", err)
	}
}
