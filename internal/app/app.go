// Package app wires the client components together from a resolved Config.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shivanky2822/resume-analyzer/internal/analysis"
	"github.com/shivanky2822/resume-analyzer/internal/apiclient"
	"github.com/shivanky2822/resume-analyzer/internal/config"
	"github.com/shivanky2822/resume-analyzer/internal/credstore"
	"github.com/shivanky2822/resume-analyzer/internal/fetch"
	"github.com/shivanky2822/resume-analyzer/internal/history"
	"github.com/shivanky2822/resume-analyzer/internal/ingestion"
	"github.com/shivanky2822/resume-analyzer/internal/logging"
	"github.com/shivanky2822/resume-analyzer/internal/session"
	"github.com/shivanky2822/resume-analyzer/internal/state"
	"github.com/sirupsen/logrus"
)

// App holds the wired components for one process.
type App struct {
	Config config.Config
	Log    *logrus.Logger
	State  *state.AppState

	API      *apiclient.Client
	Sessions *session.Manager
	Analysis *analysis.Client
	Current  *analysis.Session
	History  *history.Store
	Ingester *ingestion.Ingester

	// CredentialsLocation says where the session is persisted: a file path or the store driver.
	CredentialsLocation string

	closeFn func()
}

// Option customizes New.
type Option func(*options)

type options struct {
	log        *logrus.Logger
	httpClient *http.Client
	store      credstore.Store
}

// WithLogger overrides the logger built from the config.
func WithLogger(log *logrus.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithHTTPClient sets the http.Client used for backend calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithCredentialStore overrides the store selected by the config.
func WithCredentialStore(store credstore.Store) Option {
	return func(o *options) { o.store = store }
}

// New builds the App and restores any persisted session.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	log := o.log
	if log == nil {
		var err error
		log, err = logging.New(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		if cfg.Verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	}

	store := o.store
	var closeStore func()
	if store == nil {
		var err error
		store, closeStore, err = openStore(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
	}

	apiOpts := []apiclient.Option{apiclient.WithLogger(log)}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, apiclient.WithHTTPClient(o.httpClient))
	}
	api := apiclient.New(cfg.APIBase, apiOpts...)

	st := state.New()
	sessions := session.NewManager(api, credstore.NewCredentialStore(store), st, log)
	historyStore := history.NewStore(api, st, log)
	analysisClient := analysis.NewClient(api, historyStore, st, log)

	a := &App{
		Config:   cfg,
		Log:      log,
		State:    st,
		API:      api,
		Sessions: sessions,
		Analysis: analysisClient,
		Current:  analysis.NewSession(st),
		History:  historyStore,
		Ingester: ingestion.NewIngester(fetch.New(log), cfg.UseBrowser, log),

		CredentialsLocation: storeLocation(store, cfg),
		closeFn: func() {
			if closeStore != nil {
				closeStore()
			}
		},
	}

	// A broken credential store must not lock the user out of logging in again
	if _, err := sessions.Restore(ctx); err != nil {
		log.WithError(err).Warn("could not restore session")
	}
	return a, nil
}

// Close waits for background work, then releases resources.
func (a *App) Close() {
	a.Analysis.Wait()
	if a.closeFn != nil {
		a.closeFn()
	}
}

func storeLocation(store credstore.Store, cfg config.Config) string {
	switch s := store.(type) {
	case *credstore.FileStore:
		return s.Path()
	case *credstore.MemoryStore:
		return config.StoreMemory
	case *credstore.PostgresStore:
		return config.StorePostgres
	default:
		return cfg.CredentialStore
	}
}

func openStore(ctx context.Context, cfg config.Config, log *logrus.Logger) (credstore.Store, func(), error) {
	switch cfg.CredentialStore {
	case config.StoreMemory:
		return credstore.NewMemoryStore(), nil, nil
	case config.StorePostgres:
		pg, err := credstore.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres credential store: %w", err)
		}
		return pg, pg.Close, nil
	case config.StoreFile, "":
		return credstore.NewFileStore(cfg.CredentialsPath).WithLogger(log), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown credential store %q", cfg.CredentialStore)
	}
}
