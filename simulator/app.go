package simulator

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"ranksim/simulator/catalog"
)

// App ties together configuration, the catalog store and the simulator.
type App struct {
	Config    *Config
	Store     *catalog.Store
	Simulator *Simulator
}

// NewApp loads configuration from configPath and wires the application.
// A missing config file falls back to the built-in defaults so the tool
// runs with nothing but a base_file.csv next to it.
func NewApp(configPath string, l *slog.Logger) (*App, error) {
	cfg, err := loadOrDefault(configPath, l)
	if err != nil {
		return nil, err
	}

	store := catalog.NewStore(catalog.StoreConfig{
		Source:     cfg.Catalog.Source,
		Timeout:    cfg.Catalog.Timeout,
		MaxRetries: cfg.Catalog.MaxRetries,
		RetryWait:  time.Duration(cfg.Catalog.RetryWaitMS) * time.Millisecond,
	}, l)

	return &App{
		Config:    cfg,
		Store:     store,
		Simulator: NewSimulator(cfg, store, l),
	}, nil
}

func loadOrDefault(configPath string, l *slog.Logger) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		l.Info("config file not found, using defaults", "path", configPath)
		cfg, err := DefaultConfig()
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	return cfg, nil
}
