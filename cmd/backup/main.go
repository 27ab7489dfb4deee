// Package main provides a CLI for snapshotting and restoring the
// marketplace database.
//
// Usage:
//
//	go run ./cmd/backup -db ~/RentWheels/data/db -out ./backups
//	go run ./cmd/backup -db ~/RentWheels/data/db -restore ./backups/backup-....json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rentwheels/rentwheels-server/internal/backup"
	"github.com/rentwheels/rentwheels-server/internal/store"
)

func main() {
	dbPath := flag.String("db", os.ExpandEnv("$HOME/RentWheels/data/db"), "Path to the Badger database")
	outDir := flag.String("out", "./backups", "Directory for new snapshots")
	restore := flag.String("restore", "", "Snapshot file to restore instead of backing up")
	flag.Parse()

	s, err := store.New(*dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	svc := backup.NewService(s, *outDir, nil)
	ctx := context.Background()

	if *restore != "" {
		result, err := svc.Restore(ctx, *restore)
		if err != nil {
			log.Fatalf("Restore failed: %v", err)
		}
		fmt.Printf("Restored %d cars and %d bookings from %s in %s\n",
			result.Cars, result.Bookings, result.Path, result.Duration)
		return
	}

	result, err := svc.Create(ctx, "")
	if err != nil {
		log.Fatalf("Backup failed: %v", err)
	}
	fmt.Printf("Wrote %s (%d cars, %d bookings) in %s\n",
		result.Path, result.Cars, result.Bookings, result.Duration)
}
