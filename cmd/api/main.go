package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arbitrum1984/Arbitron-Systems/db"
	"github.com/arbitrum1984/Arbitron-Systems/internal/advisor"
	"github.com/arbitrum1984/Arbitron-Systems/internal/config"
	"github.com/arbitrum1984/Arbitron-Systems/internal/handler"
	"github.com/arbitrum1984/Arbitron-Systems/internal/intel"
	"github.com/arbitrum1984/Arbitron-Systems/internal/occupancy"
	"github.com/arbitrum1984/Arbitron-Systems/internal/quant"
	"github.com/arbitrum1984/Arbitron-Systems/internal/repository"
	"github.com/arbitrum1984/Arbitron-Systems/pkg/llm"
	"github.com/arbitrum1984/Arbitron-Systems/pkg/market"
	"github.com/arbitrum1984/Arbitron-Systems/pkg/search"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

type queuePublisher struct{}

func (queuePublisher) Publish(ctx context.Context, msg string) error {
	return db.PushToQueue(ctx, db.IntelQueueKey, msg)
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("error ensuring schema: %v", err)
	}

	var queue intel.Publisher
	if err := db.ConnectRedis(); err != nil {
		slog.Warn("redis unavailable, intel queue disabled", "error", err)
	} else if db.Redis != nil {
		queue = queuePublisher{}
		defer db.CloseRedis()
	}

	chatRepo := repository.NewChatRepository(db.DB)
	favoriteRepo := repository.NewFavoriteRepository(db.DB)

	var llmClient llm.Client
	if cfg.LLMProvider == "anthropic" && cfg.AnthropicKey != "" {
		llmClient = llm.NewAnthropicClient(cfg.AnthropicKey)
	} else {
		if cfg.OpenAIKey == "" {
			log.Fatalf("OPENAI_API_KEY is not set")
		}
		llmClient = llm.NewOpenAIClient(cfg.OpenAIKey)
	}

	marketData := market.NewFinnhubClient(cfg.FinnhubKey)
	newsSearch := search.NewAlphaVantageClient(cfg.AlphaVantageKey)

	engine := advisor.New(llmClient, marketData, newsSearch, chatRepo)
	surfaceEngine := quant.NewEngine(marketData)
	occupancyEngine := occupancy.NewEngine()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background ingestion loops. Each owns its own dedup ledger and
	// stops when the shutdown context is cancelled.
	if cfg.ApifyToken != "" {
		socialLoop := intel.NewLoop(
			"social",
			[]intel.Source{intel.NewSocialSource(cfg.ApifyToken, cfg.ApifyTaskID)},
			cfg.SocialInterval,
			intel.SocialPolicy,
			intel.FormatSocialItem,
			intel.NewLedger(cfg.DedupCapacity),
			chatRepo,
			queue,
		)
		go socialLoop.Run(ctx)
	} else {
		slog.Info("APIFY_API_KEY not set, social ingestion disabled")
	}

	rssSources := make([]intel.Source, 0, len(cfg.RSSFeeds))
	for _, feed := range cfg.RSSFeeds {
		rssSources = append(rssSources, intel.NewRSSSource(feed))
	}
	rssLoop := intel.NewLoop(
		"rss",
		rssSources,
		cfg.RSSInterval,
		intel.RSSPolicy,
		intel.FormatRSSItem,
		intel.NewLedger(cfg.DedupCapacity),
		chatRepo,
		queue,
	)
	go rssLoop.Run(ctx)

	chatHandler := handler.NewChatHandler(engine, chatRepo)
	favoriteHandler := handler.NewFavoriteHandler(favoriteRepo)
	quantHandler := handler.NewQuantHandler(surfaceEngine)
	occupancyHandler := handler.NewOccupancyHandler(occupancyEngine)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/api/query", chatHandler.HandleQuery)
	r.GET("/api/chats", chatHandler.GetSessions)
	r.GET("/api/chats/:id/messages", chatHandler.GetMessages)
	r.DELETE("/api/chats/:id", chatHandler.DeleteSession)
	r.GET("/api/favorites", favoriteHandler.GetFavorites)
	r.POST("/api/favorites", favoriteHandler.AddFavorite)
	r.DELETE("/api/favorites/:ticker", favoriteHandler.RemoveFavorite)
	r.GET("/api/quant/surface", quantHandler.GetSurface)
	r.GET("/api/pizza", occupancyHandler.GetIndex)
	r.GET("/health", chatHandler.GetHealth)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	slog.Info("all systems online", "port", cfg.Port)

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
}
