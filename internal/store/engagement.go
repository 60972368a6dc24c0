package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/sse"
)

const (
	userKeyPrefix = "user:"
	bookKeyPrefix = "book:"
)

// Engage applies an engagement mutation to a user and a book inside a
// single Badger transaction. The counter change, the likesHistory
// mutation, and the per-user membership change commit together or not
// at all - the non-atomic read-modify-write this replaces could leave
// the counter and the sets disagreeing after a crash.
//
// The book is created lazily from seed when absent (first engagement
// with a title that has no aggregate document yet). The apply function
// sees the current user and book and mutates both; any error it
// returns aborts the transaction unchanged.
//
// On commit, a book-engagement event is broadcast so subscribed clients
// see the new counters.
func (s *Store) Engage(ctx context.Context, userID, slug string, seed func() *domain.Book, apply func(*domain.User, *domain.Book) error) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userKey := buildKey(userKeyPrefix, userID)
	defer releaseKey(userKey)
	bookKey := buildKey(bookKeyPrefix, slug)
	defer releaseKey(bookKey)

	var book *domain.Book
	created := false

	err := s.db.Update(func(txn *badger.Txn) error {
		user, err := getJSON[domain.User](txn, userKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		book, err = getJSON[domain.Book](txn, bookKey)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			book = seed()
			book.ID = slug
			book.InitTimestamps()
			created = true
		case err != nil:
			return fmt.Errorf("get book: %w", err)
		}

		if err := apply(user, book); err != nil {
			return err
		}

		if err := setJSON(txn, userKey, user); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := setJSON(txn, bookKey, book); err != nil {
			return fmt.Errorf("set book: %w", err)
		}

		// A lazily created book needs its ISBN index; apply never
		// changes the ISBN so updates leave the index alone.
		if created && book.ISBN != "" {
			idxKey := bookKeyPrefix + "idx:isbn:" + book.ISBN
			if err := txn.Set([]byte(idxKey), []byte(slug)); err != nil {
				return fmt.Errorf("set isbn index: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.eventEmitter != nil {
		s.eventEmitter.Emit(sse.NewBookEngagementEvent(book))
	}

	// Lazily created books join the search index asynchronously so the
	// engagement write never waits on indexing.
	if created && s.searchIndexer != nil {
		indexed := *book
		go func() {
			if err := s.searchIndexer.IndexBook(context.Background(), &indexed); err != nil && s.logger != nil {
				s.logger.Warn("failed to index lazily created book", "book_id", indexed.ID, "error", err)
			}
		}()
	}

	return book, nil
}

// getJSON reads and unmarshals a value inside a transaction.
func getJSON[T any](txn *badger.Txn, key []byte) (*T, error) {
	item, err := txn.Get(key)
	if err != nil {
		return nil, err
	}

	var entity T
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &entity)
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return &entity, nil
}

// setJSON marshals and writes a value inside a transaction.
func setJSON(txn *badger.Txn, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value: %w", err)
	}
	return txn.Set(key, data)
}
