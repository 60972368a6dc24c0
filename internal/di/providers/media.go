package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/bookswipe/bookswipe-server/internal/config"
	"github.com/bookswipe/bookswipe-server/internal/logger"
	"github.com/bookswipe/bookswipe-server/internal/media"
	"github.com/bookswipe/bookswipe-server/internal/metadata/googlebooks"
)

// ProvideCoverStorage provides the on-disk cover image storage.
func ProvideCoverStorage(i do.Injector) (*media.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return media.NewStorage(filepath.Join(cfg.Data.BasePath, "covers"))
}

// ProvideCoverService provides the cover download and BlurHash pipeline.
func ProvideCoverService(i do.Injector) (*media.CoverService, error) {
	storage := do.MustInvoke[*media.Storage](i)
	log := do.MustInvoke[*logger.Logger](i)

	return media.NewCoverService(storage, log.Logger), nil
}

// ProvideGoogleBooksClient provides the metadata enrichment client.
func ProvideGoogleBooksClient(i do.Injector) (*googlebooks.Client, error) {
	log := do.MustInvoke[*logger.Logger](i)

	return googlebooks.NewClient(log.Logger), nil
}
