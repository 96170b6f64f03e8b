package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"internport-backend/config"
	v1 "internport-backend/internal/delivery/http/v1"
	"internport-backend/internal/domain"
	"internport-backend/internal/repository/postgres"
	"internport-backend/internal/usecase"
	"internport-backend/pkg/auth"
	"internport-backend/pkg/logger"
	"internport-backend/pkg/metrics"
	"internport-backend/pkg/redis"
	"internport-backend/pkg/security"
	"internport-backend/pkg/security/antivirus"
	"internport-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API and accept requests until SIGINT or SIGTERM.

Examples:
  internport serve
  internport serve --port 9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port; overrides PORT")
}

func runServer() error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("starting internport api", "port", cfg.Port, "storage", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := "development"
	if cfg.IsProduction() {
		env = "production"
	}
	audit := security.InitSecurityLogger("internport-api", env)
	defer audit.Sync()

	metrics.Init()

	pool, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	go metrics.NewDBCollector(pool).Start(ctx, 15*time.Second)

	var redisCheck func(context.Context) error
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("redis unavailable, using in-memory limits", "error", err)
	} else {
		redisCheck = redis.HealthCheck
		defer redis.Close()
	}

	store, err := newFileStore(ctx, cfg)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	internshipRepo := postgres.NewInternshipRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool)
	adminRepo := postgres.NewAdminRepository(pool)

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	scanner := antivirus.New(cfg.ClamAVAddr)
	logger.Log.Info("upload scanner configured", "scanner", scanner.Name())

	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, audit)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        usecase.NewAuthUsecase(userRepo, profileRepo, tokens),
		ProfileUC:     usecase.NewProfileUsecase(userRepo, profileRepo),
		InternshipUC:  usecase.NewInternshipUsecase(internshipRepo, profileRepo),
		ApplicationUC: usecase.NewApplicationUsecase(applicationRepo, internshipRepo, profileRepo),
		UploadUC: usecase.NewUploadUsecase(store, profileRepo, scanner,
			security.NewUploadLimiter(cfg.UploadsPerMin, cfg.UploadsPerDay), audit, cfg.MaxUploadSize),
		AdminUC:    usecase.NewAdminUsecase(adminRepo),
		HealthUC:   usecase.NewHealthUsecase(pool, redisCheck),
		Tokens:     tokens,
		LoginGuard: loginTracker,
		Audit:      audit,
		Config:     cfg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	logger.Log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server forced to shutdown", "error", err)
	}
	logger.Log.Info("server exiting")
	return nil
}

func newFileStore(ctx context.Context, cfg *config.Config) (domain.FileStore, error) {
	if cfg.StorageDriver == "s3" {
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		store := storage.NewS3Store(client, cfg.S3Bucket, "resumes/")
		if err := store.CheckBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}
