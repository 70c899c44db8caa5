package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/config"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/directory"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/relay"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/repo"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
)

// App bundles the store, the hydrated repositories, and the remote
// clients for one command invocation. Repositories are constructed here
// once and passed by reference; nothing is an ambient global.
type App struct {
	Config    config.Config
	Store     *store.Store
	Profile   *repo.Profile
	Suppliers *repo.Suppliers
	Products  *repo.Products
	Sessions  *repo.Sessions
	Company   *repo.Company
	Snapshots *repo.Snapshots
	Relay     *relay.Client
	Directory *directory.Client
	DeviceID  string
}

// openApp loads configuration, opens the store, and hydrates every
// repository. Callers must Close.
func (o *RootOptions) openApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DataPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s, err := store.Open(cfg.DataPath)
	if err != nil {
		return nil, err
	}

	ids := entity.UUIDv7Generator{}
	app := &App{
		Config:    cfg,
		Store:     s,
		Profile:   repo.NewProfile(s, nil),
		Suppliers: repo.NewSuppliers(s, ids, nil),
		Products:  repo.NewProducts(s, ids, nil),
		Sessions:  repo.NewSessions(s, ids, nil),
		Company:   repo.NewCompany(s, nil),
		Snapshots: repo.NewSnapshots(s, nil),
		Relay:     relay.NewClient(cfg.RelayURL, nil),
		Directory: directory.NewClient(cfg.DirectoryURL, nil),
	}

	app.Profile.Load(ctx)
	app.Suppliers.Load(ctx)
	app.Products.Load(ctx)
	app.Sessions.Load(ctx)
	app.Company.Load(ctx)
	app.Snapshots.Load(ctx)
	app.DeviceID = relay.EnsureDeviceID(ctx, s)

	return app, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
