// Package main provides a tool to seed the database with demo marketplace data.
//
// Usage:
//
//	DB_PATH=~/RentWheels/data/db go run ./cmd/seed
//	DB_PATH=~/RentWheels/data/db go run ./cmd/seed --bookings  # Also create demo bookings
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/rentwheels/rentwheels-server/internal/domain"
	"github.com/rentwheels/rentwheels-server/internal/id"
	"github.com/rentwheels/rentwheels-server/internal/store"
)

var withBookings = flag.Bool("bookings", false, "Create demo bookings against the seeded cars")

var demoOwners = []domain.CarOwner{
	{Name: "Alice Morgan", Email: "alice@example.com"},
	{Name: "Ben Carter", Email: "ben@example.com"},
	{Name: "Chloe Reyes", Email: "chloe@example.com"},
}

var demoModels = []struct {
	Model string
	Brand string
	Price float64
}{
	{"Corolla", "Toyota", 45},
	{"Civic", "Honda", 48},
	{"Model 3", "Tesla", 110},
	{"Golf", "Volkswagen", 52},
	{"Mustang", "Ford", 95},
	{"X5", "BMW", 130},
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/RentWheels/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	cars := seedCars(ctx, s)
	if *withBookings {
		seedBookings(ctx, s, cars)
	}

	fmt.Println("Done.")
}

func seedCars(ctx context.Context, s *store.Store) []domain.Car {
	cars := make([]domain.Car, 0, len(demoModels))

	for i, m := range demoModels {
		car := domain.Car{
			ID:         id.MustGenerate("car"),
			Owner:      demoOwners[i%len(demoOwners)],
			Model:      m.Model,
			Brand:      m.Brand,
			DailyPrice: m.Price,
			Location:   "Springfield",
			Features:   []string{"air conditioning", "bluetooth"},
			Available:  true,
			PostDate:   time.Now().UTC().Add(-time.Duration(rand.Intn(72)) * time.Hour),
		}

		if err := s.CreateCar(ctx, &car); err != nil {
			log.Fatalf("Failed to create car %s %s: %v", car.Brand, car.Model, err)
		}
		fmt.Printf("  car %-22s %s %s\n", car.ID, car.Brand, car.Model)
		cars = append(cars, car)
	}

	return cars
}

func seedBookings(ctx context.Context, s *store.Store, cars []domain.Car) {
	hirer := domain.Party{Name: "Dana Fisher", Email: "dana@example.com"}

	for _, car := range cars[:3] {
		start := time.Now().UTC().AddDate(0, 0, 1+rand.Intn(14))
		booking := domain.Booking{
			ID:          id.MustGenerate("bkg"),
			CarID:       car.ID,
			CarModel:    car.Model,
			Hirer:       hirer,
			Owner:       domain.Party{Name: car.Owner.Name, Email: car.Owner.Email},
			BookingDate: start,
			EndDate:     start.AddDate(0, 0, 2+rand.Intn(5)),
			Status:      domain.StatusPending,
		}

		if err := s.CreateBooking(ctx, &booking); err != nil {
			log.Fatalf("Failed to create booking for %s: %v", car.ID, err)
		}
		fmt.Printf("  booking %-18s %s\n", booking.ID, car.Model)
	}
}
