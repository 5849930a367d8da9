// Package server wires the travelboard components together and runs the
// HTTP API and the gRPC health endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/dbx"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/auth"
	"github.com/dmitrijs2005/travelboard/internal/server/config"
	"github.com/dmitrijs2005/travelboard/internal/server/credentials"
	"github.com/dmitrijs2005/travelboard/internal/server/media"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/users"
	"github.com/dmitrijs2005/travelboard/internal/server/rest"
	"github.com/dmitrijs2005/travelboard/internal/server/seed"
	"github.com/dmitrijs2005/travelboard/internal/server/services"
	"github.com/dmitrijs2005/travelboard/internal/server/store"

	gs "github.com/dmitrijs2005/travelboard/internal/server/grpc"
)

// Startup connectivity check: one retry after two seconds.
var (
	pingAttempts = 2
	pingDelay    = 2 * time.Second
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	restServer *rest.Server
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, c.Env))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	app := &App{config: c, logger: logger}

	rm := repomanager.NewPostgresRepositoryManager()
	app.db = app.openDatabase(ctx, rm)

	var primaryUsers users.Repository
	if app.db != nil {
		primaryUsers = rm.Users(app.db)
	}
	userRepo := users.NewFallbackRepository(primaryUsers, users.NewMemoryRepository(), c.DatabaseTimeout, logger)

	dir, err := credentials.New(credentials.Options{
		Policy:         c.AuthPolicy,
		AdminEmail:     c.AdminEmail,
		AdminPassword:  c.AdminPassword,
		UserDomain:     c.UserDomain,
		SharedPassword: c.SharedPassword,
	}, userRepo, logger)
	if err != nil {
		return nil, err
	}

	secret, demo := c.SigningSecret()
	if demo {
		logger.Warn(ctx, "using the built-in demo signing secret; never run this configuration in production")
	}
	issuer, err := auth.NewIssuer(secret, c.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	uploader, err := app.newUploader(ctx)
	if err != nil {
		return nil, err
	}

	var (
		expDB store.Store[*models.Experience]
		itnDB store.Store[*models.Itinerary]
		imgDB store.Store[*models.Image]
		updDB store.Store[*models.Update]
	)
	if app.db != nil {
		expDB, itnDB = rm.Experiences(app.db), rm.Itineraries(app.db)
		imgDB, updDB = rm.Images(app.db), rm.Updates(app.db)
	}

	set := seed.Sample(time.Now().UTC())
	timeout := c.DatabaseTimeout
	svc := rest.Services{
		Auth:        services.NewAuthService(dir, issuer, logger),
		Experiences: contentService(services.ExperienceKind(), expDB, set.Experiences, uploader, timeout, logger),
		Itineraries: contentService(services.ItineraryKind(), itnDB, set.Itineraries, uploader, timeout, logger),
		Images:      contentService(services.ImageKind(), imgDB, set.Images, uploader, timeout, logger),
		Updates:     contentService(services.UpdateKind(), updDB, set.Updates, uploader, timeout, logger),
	}

	var pinger dbx.Pinger
	if app.db != nil {
		pinger = app.db
	}
	app.restServer = rest.NewServer(rest.Options{
		Address:        c.EndpointAddrHTTP,
		AllowedOrigins: c.AllowedOrigins,
		LoginRateLimit: c.LoginRateLimit,
		LoginBurst:     c.LoginBurst,
		MaxUploadSize:  c.MaxUploadSize,
		PingTimeout:    c.DatabaseTimeout,
	}, svc, pinger, logger)
	app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, pinger, 15*time.Second)

	return app, nil
}

// openDatabase connects and migrates when a DSN is configured. A database
// that is unreachable at startup stays wired as the primary store so it is
// used once it comes back; until then the memory stores answer.
func (app *App) openDatabase(ctx context.Context, rm repomanager.RepositoryManager) *sql.DB {
	if app.config.DatabaseDSN == "" {
		app.logger.Info(ctx, "no database configured, serving from memory")
		return nil
	}
	db, err := repomanager.Open(app.config.DatabaseDSN)
	if err != nil {
		app.logger.Error(ctx, "database init error, serving from memory", "error", err)
		return nil
	}

	if err := dbx.PingWithRetry(ctx, db, pingAttempts, pingDelay); err != nil {
		app.logger.Warn(ctx, "database unreachable at startup, memory fallback active", "error", err)
		return db
	}
	app.logger.Info(ctx, "database connected")

	if err := rm.RunMigrations(ctx, db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
	}
	return db
}

func (app *App) newUploader(ctx context.Context) (media.Uploader, error) {
	c := app.config
	if !c.MediaEnabled() {
		app.logger.Info(ctx, "no media host configured, image uploads are disabled")
		return media.Disabled{}, nil
	}
	up, err := media.NewS3Uploader(ctx, media.S3Options{
		Bucket:    c.S3Bucket,
		Region:    c.S3Region,
		Endpoint:  c.S3BaseEndpoint,
		AccessKey: c.S3RootUser,
		SecretKey: c.S3RootPassword,
		PublicURL: c.S3PublicURL,
		MaxWidth:  media.DefaultMaxWidth,
		MaxHeight: media.DefaultMaxHeight,
	}, app.logger)
	if err != nil {
		return nil, fmt.Errorf("media init error: %w", err)
	}
	return up, nil
}

// contentService puts the seeded memory store behind primary. A nil primary
// means memory-only.
func contentService[E models.Entity[E]](kind services.Kind[E], primary store.Store[E], sample []E, up media.Uploader, timeout time.Duration, logger logging.Logger) *services.ContentService[E] {
	fb := store.NewFallback(kind.Name, primary, store.NewMemoryStore(sample...), timeout, logger)
	return services.NewContentService(kind, fb, up, logger)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

type runner interface {
	Run(ctx context.Context) error
}

// start runs one listener; a failure stops the whole app.
func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a listener fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "policy", app.config.AuthPolicy, "database", app.db != nil)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "http", app.restServer)
	}()
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc", app.grpcServer)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "closing database", "error", err)
		}
	}
	app.logger.Info(context.Background(), "Stopped")
}
