package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/doeshing/leafllm-go/assets"
	configapp "github.com/doeshing/leafllm-go/internal/application/config"
	credentialapp "github.com/doeshing/leafllm-go/internal/application/credential"
	"github.com/doeshing/leafllm-go/internal/application/dispatch"
	"github.com/doeshing/leafllm-go/internal/application/doctor"
	"github.com/doeshing/leafllm-go/internal/application/registry"
	"github.com/doeshing/leafllm-go/internal/application/reqconfig"
	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/infrastructure/ai"
	"github.com/doeshing/leafllm-go/internal/infrastructure/config"
	"github.com/doeshing/leafllm-go/internal/infrastructure/credential"
	"github.com/doeshing/leafllm-go/internal/infrastructure/history"
	"github.com/doeshing/leafllm-go/internal/infrastructure/notify"
	"github.com/doeshing/leafllm-go/internal/infrastructure/selection"
	"github.com/doeshing/leafllm-go/internal/infrastructure/shortcuts"
	"github.com/doeshing/leafllm-go/internal/infrastructure/store"
	"github.com/doeshing/leafllm-go/internal/pkg/logger"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Settings       ports.SettingsStore
	Shortcuts      *shortcuts.FileSource
	Registry       *registry.Service
	Dispatcher     *dispatch.Service
	Credentials    *credentialapp.Service
	RequestConfig  *reqconfig.Service
	DoctorService  *doctor.Service
	HistoryStore   ports.HistoryRepository
	DefaultRequest domain.RequestConfiguration

	db *sql.DB
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.NewStd(verbose)

	// A .env file is optional; it only feeds the credential env fallback.
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env loaded", map[string]interface{}{"error": err.Error()})
	}

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := configapp.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgLoader.Path(), err)
	}
	timeout, err := configapp.RequestTimeout(cfg.HTTP)
	if err != nil {
		return nil, err
	}

	defaults, err := domain.DecodeRequestConfiguration(assets.DefaultRequestConfigurationJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded request configuration: %w", err)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	settings, err := store.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	var historyStore ports.HistoryRepository
	if cfg.History.Enabled {
		sqliteHistory, err := history.NewSQLiteStore(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		historyStore = sqliteHistory
	}

	shortcutSource := shortcuts.NewFileSource(cfg.Shortcuts.File)
	client := ai.NewClient(timeout)

	reg := &registry.Service{
		Store:     settings,
		Shortcuts: shortcutSource,
		Logger:    log,
		Defaults:  defaults,
	}

	creds := credential.WithEnvFallback(credentialBackend(cfg.Credential, settings), cfg.Credential.EnvVar)

	dispatcher := &dispatch.Service{
		Registry:    reg,
		Store:       settings,
		Credentials: creds,
		Client:      client,
		Notifier:    notify.NewTerminal(),
		Logger:      log,
		History:     historyStore,
	}

	credentialService := &credentialapp.Service{
		Store:    creds,
		Settings: settings,
		Client:   client,
		Logger:   log,
		Pattern:  cfg.Credential.Pattern,
		Verify:   cfg.Credential.VerifyOnSave,
		OnChange: dispatcher.ResetSession,
	}

	requestConfig := &reqconfig.Service{Store: settings, Logger: log, Defaults: defaults}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Registry:       reg,
		RequestConfig:  requestConfig,
		Credentials:    credentialService,
		Clipboard:      selection.NewClipboard(),
	}

	return &Container{
		Config:         cfg,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Settings:       settings,
		Shortcuts:      shortcutSource,
		Registry:       reg,
		Dispatcher:     dispatcher,
		Credentials:    credentialService,
		RequestConfig:  requestConfig,
		DoctorService:  doctorService,
		HistoryStore:   historyStore,
		DefaultRequest: defaults,
		db:             db,
	}, nil
}

// Close releases the settings database.
func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func credentialBackend(settings domain.CredentialSettings, kv ports.SettingsStore) ports.CredentialStore {
	if settings.Backend == domain.CredentialBackendKeyring {
		return credential.NewKeyringStore()
	}
	return credential.NewSettingsStore(kv)
}
