package service_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/rentwheels-server/internal/domain"
	"github.com/rentwheels/rentwheels-server/internal/service"
	"github.com/rentwheels/rentwheels-server/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCarService(t *testing.T) (*service.CarService, *store.Store) {
	t.Helper()
	s := setupTestStore(t)
	return service.NewCarService(s, discardLogger(), nil), s
}

func TestCarService_CreateCar_ForcesServerFields(t *testing.T) {
	svc, _ := newCarService(t)
	ctx := context.Background()

	// A hostile client supplies every server-controlled field.
	car := &domain.Car{
		ID:           "car-forged",
		Owner:        domain.CarOwner{Name: "Alice", Email: "alice@example.com"},
		Model:        "Model 3",
		Brand:        "Tesla",
		DailyPrice:   120,
		Available:    false,
		BookingCount: 99,
		PostDate:     time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	created, err := svc.CreateCar(ctx, car)
	require.NoError(t, err)

	assert.NotEqual(t, "car-forged", created.ID)
	assert.True(t, created.Available)
	assert.Zero(t, created.BookingCount)
	assert.WithinDuration(t, time.Now().UTC(), created.PostDate, 5*time.Second)
}

func TestCarService_GetCar_InvalidID(t *testing.T) {
	svc, _ := newCarService(t)

	_, err := svc.GetCar(context.Background(), "not-a-real-id")
	require.ErrorIs(t, err, store.ErrInvalidArgument)
}

func TestCarService_GetCar_RoundTrip(t *testing.T) {
	svc, _ := newCarService(t)
	ctx := context.Background()

	created, err := svc.CreateCar(ctx, &domain.Car{
		Owner: domain.CarOwner{Name: "Alice", Email: "alice@example.com"},
		Model: "Corolla",
	})
	require.NoError(t, err)

	got, err := svc.GetCar(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Corolla", got.Model)
}

func TestCarService_UpdateCar_PatchSemantics(t *testing.T) {
	svc, _ := newCarService(t)
	ctx := context.Background()

	created, err := svc.CreateCar(ctx, &domain.Car{
		Owner:      domain.CarOwner{Email: "alice@example.com"},
		Model:      "Corolla",
		DailyPrice: 45,
	})
	require.NoError(t, err)

	result, err := svc.UpdateCar(ctx, created.ID, map[string]any{"dailyPrice": 60})
	require.NoError(t, err)
	assert.Equal(t, store.UpdateResult{Matched: 1, Modified: 1}, result)

	got, err := svc.GetCar(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(60), got.DailyPrice)
	assert.Equal(t, "Corolla", got.Model, "unpatched fields survive")
}

func TestCarService_UpdateCar_InvalidID(t *testing.T) {
	svc, _ := newCarService(t)

	_, err := svc.UpdateCar(context.Background(), "bogus", map[string]any{"model": "X"})
	require.ErrorIs(t, err, store.ErrInvalidArgument)
}

func TestCarService_DeleteCar_Idempotent(t *testing.T) {
	svc, _ := newCarService(t)
	ctx := context.Background()

	created, err := svc.CreateCar(ctx, &domain.Car{
		Owner: domain.CarOwner{Email: "alice@example.com"},
		Model: "Corolla",
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteCar(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	deleted, err = svc.DeleteCar(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

func TestCarService_ListLatestCars(t *testing.T) {
	svc, s := newCarService(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 8; i++ {
		car := &domain.Car{
			Owner:    domain.CarOwner{Email: "o@x.com"},
			Model:    "M",
			PostDate: base.Add(time.Duration(i) * time.Hour),
		}
		// Seed through the store so postDate stays under test control.
		car.ID = "car-" + string(rune('a'+i)) + "0000000000000000000"
		require.NoError(t, s.CreateCar(ctx, car))
	}

	latest, err := svc.ListLatestCars(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 6)
	for i := 1; i < len(latest); i++ {
		assert.True(t, !latest[i-1].PostDate.Before(latest[i].PostDate))
	}
}
