// Package backup provides JSON snapshot export and restore for the
// marketplace data set.
package backup

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rentwheels/rentwheels-server/internal/domain"
	"github.com/rentwheels/rentwheels-server/internal/store"
)

// Snapshot is the on-disk backup format: every car and booking plus
// enough metadata to sanity-check a restore.
type Snapshot struct {
	Version   int              `json:"version"`
	CreatedAt time.Time        `json:"createdAt"`
	Cars      []domain.Car     `json:"cars"`
	Bookings  []domain.Booking `json:"bookings"`
}

// snapshotVersion is bumped when the snapshot layout changes.
const snapshotVersion = 1

// Result summarizes a completed backup or restore.
type Result struct {
	Path     string
	Cars     int
	Bookings int
	Duration time.Duration
}

// Service manages snapshot creation and restore.
type Service struct {
	store     *store.Store
	backupDir string
	logger    *slog.Logger
}

// NewService creates a backup service writing into backupDir.
func NewService(s *store.Store, backupDir string, logger *slog.Logger) *Service {
	return &Service{
		store:     s,
		backupDir: backupDir,
		logger:    logger,
	}
}

// Create exports every car and booking to a timestamped JSON snapshot.
// When outputPath is empty a name is generated under the backup dir.
func (s *Service) Create(ctx context.Context, outputPath string) (*Result, error) {
	start := time.Now()

	if outputPath == "" {
		if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
			return nil, fmt.Errorf("create backup dir: %w", err)
		}
		timestamp := time.Now().Format("2006-01-02-150405")
		outputPath = filepath.Join(s.backupDir, fmt.Sprintf("backup-%s.rentwheels.json", timestamp))
	}

	cars, err := s.store.ListCars(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	snapshot := Snapshot{
		Version:   snapshotVersion,
		CreatedAt: time.Now().UTC(),
		Cars:      cars,
		Bookings:  bookings,
	}

	f, err := os.Create(outputPath) //#nosec G304 -- Backup path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	if err := json.MarshalWrite(f, snapshot); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	result := &Result{
		Path:     outputPath,
		Cars:     len(cars),
		Bookings: len(bookings),
		Duration: time.Since(start),
	}

	if s.logger != nil {
		s.logger.Info("backup complete",
			"path", result.Path,
			"cars", result.Cars,
			"bookings", result.Bookings,
			"duration", result.Duration,
		)
	}

	return result, nil
}

// Restore loads a snapshot into the store. Documents that already exist
// are skipped, so restoring into a non-empty store is additive.
func (s *Service) Restore(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	f, err := os.Open(path) //#nosec G304 -- Snapshot path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var snapshot Snapshot
	if err := json.UnmarshalRead(f, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if snapshot.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	result := &Result{Path: path}

	for i := range snapshot.Cars {
		car := snapshot.Cars[i]
		if err := s.store.CreateCar(ctx, &car); err != nil {
			if isAlreadyExists(err) {
				continue
			}
			return nil, fmt.Errorf("restore car %s: %w", car.ID, err)
		}
		result.Cars++
	}

	for i := range snapshot.Bookings {
		booking := snapshot.Bookings[i]
		if err := s.store.CreateBooking(ctx, &booking); err != nil {
			if isAlreadyExists(err) {
				continue
			}
			return nil, fmt.Errorf("restore booking %s: %w", booking.ID, err)
		}
		result.Bookings++
	}

	result.Duration = time.Since(start)

	if s.logger != nil {
		s.logger.Info("restore complete",
			"path", path,
			"cars", result.Cars,
			"bookings", result.Bookings,
			"duration", result.Duration,
		)
	}

	return result, nil
}

func isAlreadyExists(err error) bool {
	return errors.Is(err, store.ErrAlreadyExists)
}
