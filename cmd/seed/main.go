// Package main provides a tool to seed the catalog from a JSON file.
//
// This loads books into the database and search index so a fresh server
// has a deck to swipe through.
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/BookSwipe/data --file books.json
//
// The file holds an array of books:
//
//	[{"title": "Dune", "author": "Frank Herbert", "isbn": "9780441013593"}]
package main

import (
	"context"
	"encoding/json/v2"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
	"github.com/bookswipe/bookswipe-server/internal/search"
	"github.com/bookswipe/bookswipe-server/internal/service"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

var (
	dataPath = flag.String("data-path", "", "Base path for persistent data (default: ~/BookSwipe/data)")
	filePath = flag.String("file", "books.json", "Path to the catalog JSON file")
)

func main() {
	flag.Parse()

	base := *dataPath
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		base = filepath.Join(home, "BookSwipe", "data")
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Failed to read catalog file: %v", err)
	}

	var books []service.CreateBookRequest
	if err := json.Unmarshal(data, &books); err != nil {
		log.Fatalf("Failed to parse catalog file: %v", err)
	}
	if len(books) == 0 {
		log.Fatal("Catalog file holds no books")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	dbPath := filepath.Join(base, "db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, logger, store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	index, err := search.New(search.Options{DataPath: base, Logger: logger})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()

	// No cover service: seeding should not hit the network. Covers are
	// fetched lazily once the server runs.
	catalog := service.NewCatalogService(s, index, nil, store.NewNoopEmitter(), logger)

	ctx := context.Background()
	created, skipped := 0, 0

	for _, req := range books {
		book, err := catalog.Create(ctx, req)
		if err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				skipped++
				continue
			}
			log.Fatalf("Failed to create %q: %v", req.Title, err)
		}
		fmt.Printf("  + %s\n", book.ID)
		created++
	}

	fmt.Printf("\nSeeded %d books (%d already present)\n", created, skipped)
}
