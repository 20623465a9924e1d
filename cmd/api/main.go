package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"persona-match/internal/compatibility"
	"persona-match/internal/config"
	"persona-match/internal/db"
	apihttp "persona-match/internal/http"
	"persona-match/internal/personality"
	"persona-match/internal/realtime"
	"persona-match/internal/repository"
	"persona-match/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("ensure schema", zap.Error(err))
		}
		logger.Info("schema ensured")
	}

	table, err := compatibility.LoadAffinityFile(cfg.AffinityTablePath)
	if err != nil {
		logger.Fatal("load affinity table", zap.Error(err), zap.String("path", cfg.AffinityTablePath))
	}
	if asym := table.Asymmetries(); len(asym) > 0 {
		logger.Info("affinity table is directional", zap.String("version", table.Version()), zap.Int("asymmetric_pairs", len(asym)))
	}
	normalizer, err := personality.NormalizerFor(cfg.InterestNormalizer)
	if err != nil {
		logger.Fatal("interest normalizer", zap.Error(err))
	}

	var (
		locker  service.UserLocker         = service.NewMemoryUserLocker(0)
		cache   service.CompatibilityCache = service.NewMemoryCompatibilityCache(cfg.CompatCacheTTL)
		limiter service.RateLimiter        = service.NewMemoryRateLimiter(cfg.WriteRateWindow, cfg.WriteRateLimit)
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory lock, cache and limiter", zap.Error(err))
		} else {
			locker = service.NewRedisUserLocker(redisClient, cfg.UserLockTTL, 0, logger)
			cache = service.NewRedisCompatibilityCache(redisClient, cfg.CompatCacheTTL)
			limiter = service.NewRedisRateLimiter(redisClient, cfg.WriteRateWindow, cfg.WriteRateLimit, logger)
		}
		cancel()
	}

	profileRepo := repository.NewPgProfileRepository(pool)
	postRepo := repository.NewPgPostRepository(pool)
	historyRepo := repository.NewPgHistoryRepository(pool)
	compatRepo := repository.NewPgCompatibilityRepository(pool)

	vocab := compatibility.DefaultVocabulary
	personalitySvc := service.NewPersonalityService(
		profileRepo, postRepo, historyRepo,
		normalizer, vocab, locker, cache,
		cfg.HistoryLimit, logger,
	)
	compatSvc := service.NewCompatibilityService(
		profileRepo, compatRepo,
		compatibility.NewScorer(table, vocab), cache,
		cfg.RecommendationLimit, cfg.CandidatePoolSize, cfg.RankingWorkers,
		logger,
	)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	router := apihttp.NewRouter(
		logger,
		jwtSvc,
		limiter,
		func(ctx context.Context) error { return db.Ping(ctx, pool) },
		apihttp.NewPersonalityHandler(logger, personalitySvc),
		apihttp.NewCompatibilityHandler(logger, compatSvc),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if cfg.RealtimeEnabled {
		g.Go(func() error {
			return newListener(pool, personalitySvc, logger).Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newListener(pool *pgxpool.Pool, svc *service.PersonalityService, logger *zap.Logger) *realtime.Listener {
	return realtime.NewListener(
		realtime.NewPgSource(pool),
		func(ctx context.Context, userID string) error {
			_, _, err := svc.Sync(ctx, userID)
			return err
		},
		logger.Named("realtime"),
	)
}
