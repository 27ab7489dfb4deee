package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/rentwheels-server/internal/domain"
)

func createTestCar(t *testing.T, env *testEnv, ownerEmail string) domain.Car {
	t.Helper()

	w := env.do(t, http.MethodPost, "/add-car", map[string]any{
		"owner":      map[string]string{"name": "Owner", "email": ownerEmail},
		"model":      "Corolla",
		"brand":      "Toyota",
		"dailyPrice": 45,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	envelope := decodeEnvelope(t, w)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var car domain.Car
	require.NoError(t, json.Unmarshal(data, &car))
	return car
}

func TestCreateCar(t *testing.T) {
	env := newTestEnv(t)

	car := createTestCar(t, env, "owner@example.com")
	assert.NotEmpty(t, car.ID)
	assert.True(t, car.Available)
	assert.Zero(t, car.BookingCount)
	assert.False(t, car.PostDate.IsZero())
}

func TestCreateCar_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/add-car", map[string]any{
		"owner": map[string]string{"email": "owner@example.com"},
		// model missing
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCar(t *testing.T) {
	env := newTestEnv(t)
	car := createTestCar(t, env, "owner@example.com")

	w := env.do(t, http.MethodGet, "/cars/"+car.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/cars/malformed-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "malformed IDs are 400, not 404")
}

func TestListAndPageCars(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 15; i++ {
		createTestCar(t, env, "owner@example.com")
	}

	w := env.do(t, http.MethodGet, "/cars", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/cars/page?page=2&limit=12", nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var page struct {
		Items       []domain.Car `json:"items"`
		TotalItems  int          `json:"totalItems"`
		TotalPages  int          `json:"totalPages"`
		CurrentPage int          `json:"currentPage"`
	}
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, 15, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Len(t, page.Items, 3)
}

func TestPageCars_BadParamsCoerced(t *testing.T) {
	env := newTestEnv(t)
	createTestCar(t, env, "owner@example.com")

	w := env.do(t, http.MethodGet, "/cars/page?page=zero&limit=-3", nil)
	require.Equal(t, http.StatusOK, w.Code, "unparsable params fall back to defaults")
}

func TestUpdateCar(t *testing.T) {
	env := newTestEnv(t)
	car := createTestCar(t, env, "owner@example.com")

	w := env.do(t, http.MethodPatch, "/cars/"+car.ID, map[string]any{"dailyPrice": 60})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/cars/"+car.ID, nil)
	envelope := decodeEnvelope(t, w)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var got domain.Car
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(60), got.DailyPrice)
	assert.Equal(t, "Corolla", got.Model)
}

func TestDeleteCar_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	car := createTestCar(t, env, "owner@example.com")

	w := env.do(t, http.MethodDelete, "/cars/"+car.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Second delete succeeds with a zero count.
	w = env.do(t, http.MethodDelete, "/cars/"+car.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var result map[string]int
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 0, result["deletedCount"])
}

func TestLatestCars(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 8; i++ {
		createTestCar(t, env, "owner@example.com")
	}

	w := env.do(t, http.MethodGet, "/latest", nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var cars []domain.Car
	require.NoError(t, json.Unmarshal(data, &cars))
	assert.Len(t, cars, 6)
}

func TestMyCars(t *testing.T) {
	env := newTestEnv(t)
	createTestCar(t, env, "alice@example.com")
	createTestCar(t, env, "alice@example.com")
	createTestCar(t, env, "bob@example.com")

	cookie := env.sessionCookie(t, "alice@example.com")
	w := env.do(t, http.MethodGet, "/my-cars/alice@example.com", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var cars []domain.Car
	require.NoError(t, json.Unmarshal(data, &cars))
	assert.Len(t, cars, 2)
}
