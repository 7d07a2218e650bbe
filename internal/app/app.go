package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/carteira/internal/attachment"
	"github.com/hance08/carteira/internal/auth"
	"github.com/hance08/carteira/internal/config"
	"github.com/hance08/carteira/internal/ledger"
	"github.com/hance08/carteira/internal/logger"
	"github.com/hance08/carteira/internal/realtime"
	"github.com/hance08/carteira/internal/service"
	"github.com/hance08/carteira/internal/store"
	"github.com/rs/zerolog"
)

type App struct {
	Config   *config.Config
	Service  *service.Service
	Store    store.Repository
	Identity *auth.Identity
	Broker   realtime.Broker
	Log      zerolog.Logger
	AppDir   string
}

// NewApp initialize config, database and core logic, then return App entity
func NewApp(ctx context.Context, cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	appDir, err := GetAppDataDir()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create app directory: %w", err)
	}

	var closers []io.Closer
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
			}
		}
	}
	fail := func(err error) (*App, func(), error) {
		cleanup()
		return nil, nil, err
	}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = filepath.Join(appDir, "carteira.log")
	}
	log, logFile, err := logger.NewFile(logPath, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, logFile)

	repo, err := openStore(ctx, cfg.Database, appDir, migrationFS)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize database: %w", err))
	}
	closers = append(closers, repo)

	broker, err := openBroker(cfg.Realtime, log)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize change feed: %w", err))
	}
	closers = append(closers, broker)

	bucket, err := openBucket(ctx, cfg.Storage, appDir)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize file storage: %w", err))
	}
	if c, ok := bucket.(io.Closer); ok {
		closers = append(closers, c)
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret, err = loadOrCreateSecret(filepath.Join(appDir, "session.key"))
		if err != nil {
			return fail(err)
		}
	}
	sessionFile := cfg.Auth.SessionFile
	if sessionFile == "" {
		sessionFile = filepath.Join(appDir, "session")
	}
	identity, err := auth.NewIdentity(repo, auth.Config{
		Secret:      secret,
		TTL:         cfg.Auth.SessionTTL,
		SessionFile: sessionFile,
	})
	if err != nil {
		return fail(err)
	}

	files := attachment.NewService(repo, bucket, log.With().Str("component", "attachments").Logger())
	svc, err := service.NewService(repo, files, broker, log, service.Config{})
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closerFunc(func() error { svc.Close(); return nil }))

	log.Debug().
		Str("database", repo.Driver()).
		Str("realtime", cfg.Realtime.Driver).
		Str("storage", cfg.Storage.Driver).
		Msg("app initialized")

	return &App{
		Config:   cfg,
		Service:  svc,
		Store:    repo,
		Identity: identity,
		Broker:   broker,
		Log:      log,
		AppDir:   appDir,
	}, cleanup, nil
}

// NewLedger builds a ledger engine bound to this app's store, identity and
// change feed.
func (a *App) NewLedger(notifier ledger.Notifier, onUpdate func(ledger.State)) *ledger.Engine {
	return ledger.NewEngine(ledger.Deps{
		Querier:  a.Store,
		Kinds:    a.Service.Kind,
		Identity: a.Identity,
		Feed:     a.Broker,
		Notifier: notifier,
	}, ledger.Options{
		Pagination: ledger.Pagination(a.Config.Ledger.Pagination),
		Realtime:   ledger.RealtimeMode(a.Config.Ledger.Realtime),
		Logger:     a.Log,
		OnUpdate:   onUpdate,
	})
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, appDir string, migrationFS fs.FS) (*store.Store, error) {
	if cfg.Driver == "postgres" {
		return store.NewPostgresStore(ctx, cfg.URL, migrationFS)
	}

	dbPath := cfg.Path
	if dbPath == "" {
		dbPath = filepath.Join(appDir, "carteira.db")
	}
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}
	return store.NewStore(dbPath, migrationFS)
}

func openBroker(cfg config.RealtimeConfig, log zerolog.Logger) (realtime.Broker, error) {
	if cfg.Driver == "amqp" {
		return realtime.NewAMQPBroker(cfg.URL, cfg.Exchange, log.With().Str("component", "realtime").Logger())
	}
	return realtime.NewMemoryBroker(), nil
}

func openBucket(ctx context.Context, cfg config.StorageConfig, appDir string) (attachment.Bucket, error) {
	if cfg.Driver == "gcs" {
		return attachment.NewGCSBucket(ctx, cfg.Bucket, cfg.Credentials)
	}

	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join(appDir, "files")
	}
	dir, err := ExpandPath(dir)
	if err != nil {
		return nil, err
	}
	return attachment.NewFSBucket(dir)
}

// loadOrCreateSecret keeps a random signing key next to the database so
// sessions survive restarts without any configuration.
func loadOrCreateSecret(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil && len(strings.TrimSpace(string(data))) > 0 {
		return strings.TrimSpace(string(data)), nil
	}
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read session key: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session key: %w", err)
	}
	secret := hex.EncodeToString(buf)
	if err := os.WriteFile(path, []byte(secret), 0600); err != nil {
		return "", fmt.Errorf("failed to write session key: %w", err)
	}
	return secret, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".carteira"), nil
	}

	return filepath.Join(configDir, "carteira"), nil
}

func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}

// SharedFeed reports whether change events reach other processes.
func (a *App) SharedFeed() bool {
	return a.Config.Realtime.Driver == "amqp"
}

// RequireUser returns the signed-in profile ID or auth.ErrNotSignedIn.
func (a *App) RequireUser(ctx context.Context) (string, error) {
	id, ok := a.Identity.CurrentUserID(ctx)
	if !ok {
		return "", auth.ErrNotSignedIn
	}
	return id, nil
}
