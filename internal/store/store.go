// Package store persists saved matching strategies. Two backends are
// provided: SQLite for single-user CLI use and Postgres for shared
// deployments behind the HTTP surface.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/meridian-advisory/dealmatch/internal/model"
)

// ErrNotFound is returned when a strategy id does not exist. Callers test
// for it with eris.Is.
var ErrNotFound = eris.New("store: strategy not found")

// Store defines the persistence interface for saved strategies.
type Store interface {
	CreateStrategy(ctx context.Context, s model.Strategy) (*model.Strategy, error)
	GetStrategy(ctx context.Context, id string) (*model.Strategy, error)
	ListStrategies(ctx context.Context) ([]model.Strategy, error)
	UpdateStrategy(ctx context.Context, s model.Strategy) (*model.Strategy, error)
	DeleteStrategy(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
