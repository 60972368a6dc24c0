package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/logger"
	"github.com/bookswipe/bookswipe-server/internal/service"
)

// Bootstrap records the outcome of startup seeding.
type Bootstrap struct {
	ReservedSeeded int
	Reindexed      int
}

// ProvideBootstrap seeds the reserved-books collection from the
// configured table and rebuilds the search index when it is empty but
// the catalog is not (a fresh index directory next to an old database).
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	reserved := do.MustInvoke[*domain.ReservedBookTable](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx := context.Background()
	result := &Bootstrap{}

	for rule := range reserved.All() {
		book := &domain.Book{Title: rule.Title, ISBN: rule.ISBN}
		book.ID = rule.Slug
		if err := catalogService.EnsureReserved(ctx, book); err != nil {
			return nil, err
		}
		result.ReservedSeeded++
	}

	docCount, _ := indexHandle.Count()
	if docCount == 0 {
		hasBooks := false
		for _, err := range storeHandle.Books.List(ctx) {
			if err == nil {
				hasBooks = true
			}
			break
		}
		if hasBooks {
			count, err := catalogService.RebuildSearchIndex(ctx)
			if err != nil {
				log.Error("Initial search reindex failed", "error", err)
			} else {
				result.Reindexed = count
				log.Info("Initial search reindex completed", "documents", count)
			}
		}
	}

	log.Info("Startup seeding complete",
		"reserved_books", result.ReservedSeeded,
		"reindexed", result.Reindexed,
	)

	return result, nil
}

// SessionCleanupJob runs periodic session cleanup.
type SessionCleanupJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideSessionCleanupJob provides the periodic session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		// Initial cleanup on startup
		if count, err := sessionService.DeleteExpiredSessions(ctx); err != nil {
			log.Warn("Initial session cleanup failed", "error", err)
		} else if count > 0 {
			log.Info("Initial session cleanup completed", "deleted", count)
		}

		for {
			select {
			case <-ticker.C:
				if count, err := sessionService.DeleteExpiredSessions(ctx); err != nil {
					log.Warn("Session cleanup failed", "error", err)
				} else if count > 0 {
					log.Info("Session cleanup completed", "deleted", count)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Session cleanup job started")

	return &SessionCleanupJob{cancel: cancel}, nil
}
