package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/tyche/internal/auth"
	"github.com/XavierBriggs/tyche/internal/cache"
	"github.com/XavierBriggs/tyche/internal/config"
	"github.com/XavierBriggs/tyche/internal/db"
	"github.com/XavierBriggs/tyche/internal/handlers"
	"github.com/XavierBriggs/tyche/internal/llm"
	"github.com/XavierBriggs/tyche/internal/metrics"
	"github.com/XavierBriggs/tyche/internal/middleware"
	"github.com/XavierBriggs/tyche/internal/providers/balldontlie"
	"github.com/XavierBriggs/tyche/internal/providers/nhle"
	"github.com/XavierBriggs/tyche/internal/providers/theodds"
	"github.com/XavierBriggs/tyche/internal/suggest"
)

func main() {
	fmt.Println("=== Tyche Parlay API ===")

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// Connect to Postgres
	store, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		fmt.Printf("❌ Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Ping(ctx); err != nil {
		cancel()
		fmt.Printf("❌ Failed to ping database: %v\n", err)
		os.Exit(1)
	}
	if err := store.InitSchema(ctx); err != nil {
		cancel()
		fmt.Printf("❌ Failed to init schema: %v\n", err)
		os.Exit(1)
	}
	cancel()
	fmt.Println("✓ Connected to Postgres")

	// Connect to Redis (sessions + odds cache)
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		fmt.Printf("❌ Failed to parse Redis URL: %v\n", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("❌ Failed to connect to Redis: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Connected to Redis")

	// Providers
	oddsClient := theodds.New(cfg.Providers.OddsAPIKey, cfg.Providers.OddsAPIBase)
	if oddsClient.Configured() {
		fmt.Println("✓ Odds provider configured")
	} else {
		fmt.Println("⚠️  ODDS_API_KEY not set, serving mock odds")
	}

	gateway := llm.NewAnthropic(cfg.Providers.AnthropicAPIKey, cfg.Providers.AnthropicModel)
	if gateway.Available() {
		fmt.Println("✓ Model gateway configured")
	} else {
		fmt.Println("⚠️  ANTHROPIC_API_KEY not set, serving fallback suggestions")
	}

	sessions := auth.NewSessions(redisClient)
	oddsCache := cache.NewOddsCache(redisClient)
	nbaClient := balldontlie.New(cfg.Providers.BalldontlieAPIKey)
	nhlClient := nhle.New()
	reconciler := suggest.NewReconciler(gateway)
	apiMetrics := metrics.New()

	handler := handlers.NewHandler(store, sessions, oddsClient, oddsCache, nbaClient, nhlClient, reconciler, apiMetrics)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(apiMetrics.Instrument)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)
	r.Method("GET", "/metrics", apiMetrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handler.Register)
			r.Post("/login", handler.Login)
			r.Post("/logout", handler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(sessions.RequireAuth)
				r.Get("/me", handler.Me)
				r.Put("/preferences", handler.UpdatePreferences)
			})
		})

		// Odds
		r.Group(func(r chi.Router) {
			r.Use(sessions.OptionalAuth)
			r.Get("/odds/{sport}", handler.GetOdds)
			r.Get("/odds/{sport}/{eventId}/props", handler.GetPlayerProps)
		})

		// Stats
		r.Get("/stats/nba/teams", handler.GetNBATeams)
		r.Get("/stats/nba/players", handler.SearchNBAPlayers)
		r.Get("/stats/nba/players/{playerId}", handler.GetNBAPlayerStats)
		r.Get("/stats/nhl/standings", handler.GetNHLStandings)
		r.Get("/stats/nhl/teams/{abbr}", handler.GetNHLTeamStats)

		// Parlays
		r.Route("/parlays", func(r chi.Router) {
			r.Use(sessions.RequireAuth)
			r.Get("/", handler.ListParlays)
			r.Post("/", handler.CreateParlay)
			r.Put("/{id}", handler.UpdateParlay)
			r.Delete("/{id}", handler.DeleteParlay)
		})

		// Suggestions
		r.Group(func(r chi.Router) {
			r.Use(sessions.OptionalAuth)
			r.Get("/suggestions/daily", handler.DailySuggestions)
			r.Post("/suggestions/analyze", handler.AnalyzeParlay)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Parlay API listening on %s\n", cfg.Server.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("⚠️  Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("❌ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Shutdown complete")
}
