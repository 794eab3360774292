package config

import (
	"fmt"
	"slices"
)

// Backends selectable through USAGE_BACKEND and SUBSCRIPTION_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
)

// App holds process-level settings.
type App struct {
	Env                 string `env:"APP_ENV" envDefault:"development"`
	Name                string `env:"APP_NAME" envDefault:"ledgerly"`
	HTTPAddr            string `env:"HTTP_ADDR" envDefault:":8080"`
	UsageBackend        string `env:"USAGE_BACKEND" envDefault:"memory"`
	SubscriptionBackend string `env:"SUBSCRIPTION_BACKEND" envDefault:"memory"`
}

// Validate rejects unknown backends.
func (a *App) Validate() error {
	if !slices.Contains([]string{BackendMemory, BackendPostgres, BackendMongo}, a.UsageBackend) {
		return fmt.Errorf("USAGE_BACKEND: unknown backend %q", a.UsageBackend)
	}
	if !slices.Contains([]string{BackendMemory, BackendPostgres, BackendRedis}, a.SubscriptionBackend) {
		return fmt.Errorf("SUBSCRIPTION_BACKEND: unknown backend %q", a.SubscriptionBackend)
	}
	return nil
}

// NeedsPostgres reports whether any selected backend is Postgres.
func (a *App) NeedsPostgres() bool {
	return a.UsageBackend == BackendPostgres || a.SubscriptionBackend == BackendPostgres
}
