// Package store persists trips.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgallion1/tripgest/internal/config"
	"github.com/dgallion1/tripgest/internal/trip"
)

// ErrNotFound is returned when a trip does not exist.
var ErrNotFound = errors.New("trip not found")

// Store is the trip persistence backend.
//
// SaveTrip inserts or replaces a trip with all of its items and stamps
// CreatedAt (first save only) and UpdatedAt. ListTrips returns the most
// recently updated trips first, without items.
type Store interface {
	SaveTrip(ctx context.Context, t *trip.Trip) error
	GetTrip(ctx context.Context, id string) (*trip.Trip, error)
	ListTrips(ctx context.Context, limit int) ([]trip.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
	Close() error
}

// DefaultListLimit applies when ListTrips is called with limit <= 0.
const DefaultListLimit = 50

// Open returns the backend selected by cfg.StoreBackend.
func Open(cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		return OpenSQLite(cfg.DBPath)
	case "pathstore":
		return NewPathstoreStore(NewPathstoreClient(cfg.PathstoreURL, cfg.PathstoreAPIKey)), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
