// Package store implements the document store for cars and bookings on top
// of Badger. Documents are JSON values under collection key prefixes with
// non-unique secondary indexes on the owner and hirer emails.
package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/rentwheels/rentwheels-server/internal/domain"
)

// Collection key prefixes. Two top-level collections share one database.
const (
	carPrefix     = "car:"
	bookingPrefix = "bkg:"
)

// Store wraps a Badger database instance holding the two collections.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	Cars     *Entity[domain.Car]
	Bookings *Entity[domain.Booking]
}

// New opens (or creates) the database at path and wires the collections.
// The store is intended to live for the whole process: open once at
// startup, close on shutdown.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync writes to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initCars()
	store.initBookings()

	if logger != nil {
		logger.Info("document store opened", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing document store")
	}
	return s.db.Close()
}

// initCars wires the Cars collection with a case-insensitive owner-email index.
func (s *Store) initCars() {
	s.Cars = NewEntity[domain.Car](s, carPrefix).
		WithIndex("owner", func(c *domain.Car) []string {
			return []string{normalizeEmail(c.Owner.Email)}
		})
}

// initBookings wires the Bookings collection. Owner email is denormalized
// onto the booking, so owner-side queries run off their own index instead
// of joining through the car.
func (s *Store) initBookings() {
	s.Bookings = NewEntity[domain.Booking](s, bookingPrefix).
		WithIndex("hirer", func(b *domain.Booking) []string {
			return []string{normalizeEmail(b.Hirer.Email)}
		}).
		WithIndex("owner", func(b *domain.Booking) []string {
			return []string{normalizeEmail(b.Owner.Email)}
		})
}

// normalizeEmail lowers and trims an email for index storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
