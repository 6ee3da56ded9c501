package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"advertBack/internal/cache"
	"advertBack/internal/config"
	"advertBack/internal/events"
	"advertBack/internal/logger"
	"advertBack/internal/notify"
	"advertBack/internal/repositories"
	"advertBack/internal/seed"
	"advertBack/utils"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	defer logger.Install(log)()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repositories.OpenDB(cfg.Database.Driver, cfg.Database.URL, cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns)
	if err != nil {
		return err
	}
	defer db.Close()

	dialect := repositories.DialectFor(cfg.Database.Driver)
	if cfg.Bootstrap.ReferenceOnStart {
		if err := repositories.Migrate(ctx, db, dialect); err != nil {
			return err
		}
		seeder := seed.New(
			&repositories.RegionRepository{DB: db, Dialect: dialect},
			&repositories.CategoryRepository{DB: db, Dialect: dialect},
			&repositories.UserRepository{DB: db, Dialect: dialect},
			&repositories.AdvertisementRepository{DB: db, Dialect: dialect},
			log,
		)
		if err := seeder.Reference(ctx); err != nil {
			return fmt.Errorf("seed reference data: %w", err)
		}
	}

	tokens, err := utils.NewManager(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}

	comps, cleanup, err := buildComponents(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	app := initializeApp(cfg, db, tokens, comps, log)
	go app.wsManager.Run(ctx)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		ErrorLog:     zap.NewStdLog(log),
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.Server.Address), zap.String("db", dialect.String()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildComponents connects the optional backends that are configured. The
// returned cleanup closes whatever was opened.
func buildComponents(ctx context.Context, cfg config.Config, log *zap.Logger) (components, func(), error) {
	var (
		comps   components
		closers []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Storage.Driver {
	case "s3":
		client, err := utils.NewS3Client(utils.S3Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			return comps, cleanup, err
		}
		comps.photos = utils.NewS3PhotoStore(client, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	default:
		comps.photos = &utils.LocalPhotoStore{Root: cfg.Storage.WebRoot}
	}

	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			cleanup()
			return comps, func() {}, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		comps.cache = cache.NewListingCache(rdb, cfg.Redis.ListingTTL)
		log.Info("listing cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	if cfg.NATS.URL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATS.URL, log)
		if err != nil {
			cleanup()
			return comps, func() {}, err
		}
		closers = append(closers, pub.Close)
		comps.events = pub
	}

	if cfg.FCM.CredentialsFile != "" {
		client, err := notify.NewFCMClient(ctx, cfg.FCM.CredentialsFile)
		if err != nil {
			cleanup()
			return comps, func() {}, err
		}
		comps.notifier = notify.NewFCMNotifier(client, log)
	}

	return comps, cleanup, nil
}
