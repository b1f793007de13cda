// Command api serves the problemhub REST API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/api"
	"github.com/codeforge/problemhub/internal/api/handler"
	"github.com/codeforge/problemhub/internal/core/ports"
	"github.com/codeforge/problemhub/internal/core/service"
	"github.com/codeforge/problemhub/internal/infrastructure/config"
	"github.com/codeforge/problemhub/internal/infrastructure/db/memory"
	mongodb "github.com/codeforge/problemhub/internal/infrastructure/db/mongo"
	redisdb "github.com/codeforge/problemhub/internal/infrastructure/db/redis"
	"github.com/codeforge/problemhub/internal/infrastructure/queue"
	"github.com/codeforge/problemhub/internal/infrastructure/storage"
	"github.com/codeforge/problemhub/pkg/logger"
)

const (
	serviceName     = "problemhub-api"
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
	adminUsername   = "admin"
)

type repositories struct {
	users    ports.UserRepository
	problems ports.ProblemRepository
	tags     ports.TagRepository
	comments ports.CommentRepository
	ratings  ports.RatingRepository
	files    ports.FileRepository
}

// pingable is satisfied by every blob store backend.
type pingable interface {
	Ping(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{Service: serviceName})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
		Version: serviceVersion,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	secret, err := cfg.SigningSecret()
	if err != nil {
		// Still served so a misconfigured deployment is visible rather than down.
		if cfg.IsProduction() {
			log.Error().Err(err).Msg("tokens are signed with a public secret")
		} else {
			log.Warn().Err(err).Msg("tokens are signed with a public secret")
		}
	}

	readiness := map[string]handler.DependencyCheck{}

	// --- Persistence ---
	var repos repositories
	switch cfg.Store.Driver {
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		counters := mongodb.NewCounters(db)
		repos = repositories{
			users:    mongodb.NewUserRepository(db, counters),
			problems: mongodb.NewProblemRepository(db, counters),
			tags:     mongodb.NewTagRepository(db, counters),
			comments: mongodb.NewCommentRepository(db, counters),
			ratings:  mongodb.NewRatingRepository(db, counters),
			files:    mongodb.NewFileRepository(db, counters),
		}
		readiness["mongodb"] = func(ctx context.Context) error { return mongodb.Ping(ctx, db) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")
	default:
		store := memory.NewStore()
		repos = repositories{
			users:    store.Users(),
			problems: store.Problems(),
			tags:     store.Tags(),
			comments: store.Comments(),
			ratings:  store.Ratings(),
			files:    store.Files(),
		}
		log.Info().Msg("using in-memory store, data is lost on restart")
	}

	// --- Stats cache ---
	var statsCache ports.StatsCache
	if cfg.Redis.Enabled {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		statsCache = redisdb.NewStatsCache(client)
		readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	// --- Blob storage ---
	var blobs interface {
		ports.BlobStore
		pingable
	}
	switch cfg.Uploads.Driver {
	case "s3":
		blobs, err = storage.NewS3Store(ctx, storage.S3Config{
			Bucket:       cfg.S3.Bucket,
			Region:       cfg.S3.Region,
			Endpoint:     cfg.S3.Endpoint,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
	default:
		blobs, err = storage.NewLocalStore(cfg.Uploads.Dir)
	}
	if err != nil {
		return err
	}
	readiness["blobs"] = blobs.Ping

	cleanerCtx, stopCleaner := context.WithCancel(context.Background())
	cleaner := queue.NewDispatcher(cfg.Uploads.CleanupWorkers, blobs, log)
	cleaner.Start(cleanerCtx)
	defer func() {
		stopCleaner()
		cleaner.Wait()
	}()

	// --- Services ---
	tokens := service.NewTokenService(secret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(repos.users, service.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, log)
	problemService := service.NewProblemService(repos.problems, repos.ratings, statsCache, cfg.Redis.StatsTTL, log)
	tagService := service.NewTagService(repos.tags, repos.problems, log)

	admin, err := authService.EnsureAdmin(ctx, adminUsername, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}
	if cfg.Seed.DemoData {
		if err := service.SeedDemoData(ctx, tagService, problemService, admin.ID, log); err != nil {
			return err
		}
	}

	router := api.NewRouter(api.Services{
		Auth:     authService,
		Users:    service.NewUserService(repos.users, log),
		Problems: problemService,
		Tags:     tagService,
		Comments: service.NewCommentService(repos.comments, repos.problems, repos.users, log),
		Ratings:  service.NewRatingService(repos.ratings, repos.problems, log),
		Files:    service.NewFileService(repos.files, repos.problems, blobs, cleaner, cfg.Uploads.MaxBytes, log),
	}, api.Options{
		Log:       log,
		Readiness: readiness,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
