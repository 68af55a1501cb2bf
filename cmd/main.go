package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"watchlist-foodlens-service/internal/cache"
	"watchlist-foodlens-service/internal/config"
	"watchlist-foodlens-service/internal/database"
	"watchlist-foodlens-service/internal/handler"
	"watchlist-foodlens-service/internal/nutrition"
	"watchlist-foodlens-service/internal/repository"
	"watchlist-foodlens-service/internal/service"
	"watchlist-foodlens-service/internal/vision"
	"watchlist-foodlens-service/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
		rdb = nil
	}
	c := cache.New(rdb)

	labeler, closeLabeler, err := newLabeler(ctx, cfg.Vision)
	if err != nil {
		slog.Error("failed to initialize vision provider", "provider", cfg.Vision.Provider, "error", err)
		os.Exit(1)
	}
	defer closeLabeler()

	provider := nutrition.NewCachedProvider(newProvider(cfg.Nutrition), c)

	var recipes nutrition.RecipeFinder
	if cfg.Nutrition.RecipesEnabled {
		ninjas := nutrition.NewNinjasClient(cfg.Nutrition.NinjasAPIKey, cfg.Nutrition.NinjasBaseURL)
		recipes = nutrition.NewCachedRecipeFinder(ninjas, c)
	}

	selector := service.NewLabelSelector(cfg.Labels.Generic, service.SelectionMode(cfg.Labels.Selection), cfg.Labels.ContinueOnMiss)

	// Initialize layers
	movies := handler.NewMovieHandler(service.NewMovieService(repo, c))
	analysis := handler.NewAnalysisHandler(
		service.NewAnalysisService(labeler, provider, recipes, selector),
		cfg.Server.UploadDir,
	)

	// Swagger docs
	swaggerYAML, err := os.ReadFile(cfg.Server.SwaggerPath)
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "path", cfg.Server.SwaggerPath, "error", err)
		swaggerYAML = nil
	}

	app := handler.NewApp(handler.AppOptions{
		BodyLimit:   cfg.Server.UploadMaxBytes,
		AccessLog:   true,
		SwaggerYAML: swaggerYAML,
		Assets:      web.Assets(),
	}, movies, analysis)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		slog.Info("shutting down watchlist service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	slog.Info("starting watchlist service", "addr", addr, "store", cfg.Store.Driver,
		"vision", cfg.Vision.Provider, "nutrition", cfg.Nutrition.Provider, "cache", c.Enabled())
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openStore connects the configured watchlist store and returns a func that releases it.
func openStore(ctx context.Context, cfg *config.Config) (repository.MovieRepository, func(), error) {
	switch cfg.Store.Driver {
	case "mongo":
		client, coll, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				slog.Error("failed to disconnect MongoDB", "error", err)
			}
		}
		return repository.NewMongoMovieRepository(coll), closeFn, nil
	case "postgres":
		db, err := database.NewPostgres(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresMovieRepository(db), func() { db.Close() }, nil
	case "memory":
		slog.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryMovieRepository(), func() {}, nil
	}
	return nil, nil, errors.New("unknown store driver " + cfg.Store.Driver)
}

func newLabeler(ctx context.Context, cfg config.VisionConfig) (vision.Labeler, func(), error) {
	if cfg.Provider == "rekognition" {
		client, err := vision.NewRekognitionClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, nil, err
		}
		return vision.NewRekognitionLabeler(client, cfg.MaxLabels, cfg.MinConfidence), func() {}, nil
	}

	g, err := vision.NewGoogleLabeler(ctx, cfg.GoogleCredentialsJSON, cfg.MaxLabels)
	if err != nil {
		return nil, nil, err
	}
	return g, func() { g.Close() }, nil
}

func newProvider(cfg config.NutritionConfig) nutrition.Provider {
	switch cfg.Provider {
	case "ninjas":
		return nutrition.NewNinjasClient(cfg.NinjasAPIKey, cfg.NinjasBaseURL)
	case "edamam":
		return nutrition.NewEdamamClient(cfg.EdamamAppID, cfg.EdamamAppKey, cfg.EdamamBaseURL)
	default:
		return nutrition.NewUSDAClient(cfg.USDAAPIKey, cfg.USDABaseURL)
	}
}
