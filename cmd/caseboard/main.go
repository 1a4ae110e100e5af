package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aharoni/caseboard/internal/api"
	"github.com/aharoni/caseboard/internal/authz"
	"github.com/aharoni/caseboard/internal/board"
	"github.com/aharoni/caseboard/internal/credential"
	"github.com/aharoni/caseboard/internal/logging"
	"github.com/aharoni/caseboard/internal/model"
	"github.com/aharoni/caseboard/internal/refcache"
	"github.com/aharoni/caseboard/internal/registry"
	appsync "github.com/aharoni/caseboard/internal/sync"
	"github.com/aharoni/caseboard/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "caseboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CASEBOARD_CONFIG")
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	token, err := loadToken()
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.API.TimeoutSec) * time.Second
	client := api.NewClient(cfg.API.BaseURL, token, timeout, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	session, err := client.GetSession(ctx)
	if err != nil {
		if api.IsAuthError(err) {
			return fmt.Errorf("the API rejected the stored token; store a fresh one with the %s keyring entry or CASEBOARD_TOKEN", credential.TokenKey)
		}
		return fmt.Errorf("load session: %w", err)
	}

	types, err := client.ListTaskTypes(ctx)
	if err != nil {
		return fmt.Errorf("load task types: %w", err)
	}
	reg := registry.New(types)

	cache, err := refcache.Open(cfg.CachePath)
	if err != nil {
		return fmt.Errorf("open reference cache: %w", err)
	}
	defer cache.Close()

	store := board.NewStore()
	auth := authz.New(session, reg)
	loader := refcache.NewLoader(client, cache, log)
	toaster := ui.NewToaster()
	engine := appsync.New(client, store, loader, reg, auth, session, toaster, log)
	poller := appsync.NewPoller(time.Duration(cfg.API.PollIntervalSec) * time.Second)

	log.Info().Str("user", session.Username).Bool("admin", session.Admin).Msg("starting")

	p := tea.NewProgram(
		ui.New(engine, store, reg, auth, session, toaster, poller),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// loadToken resolves the API token from the environment first so scripted
// and CI use keeps working where no keyring daemon is available.
func loadToken() (string, error) {
	if token := os.Getenv("CASEBOARD_TOKEN"); token != "" {
		return token, nil
	}
	token, err := credential.Get(credential.TokenKey)
	if err != nil || token == "" {
		return "", fmt.Errorf("no API token found: set CASEBOARD_TOKEN or store one in the system keyring under %q", credential.TokenKey)
	}
	return token, nil
}
