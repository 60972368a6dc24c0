// Package providers contains dependency injection providers for the BookSwipe server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookswipe/bookswipe-server/internal/config"
	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting BookSwipe Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.BasePath,
	)

	return log, nil
}

// ProvideReservedBooks provides the protected-books table.
func ProvideReservedBooks(i do.Injector) (*domain.ReservedBookTable, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	table, err := cfg.LoadReservedBooks()
	if err != nil {
		return nil, err
	}

	if cfg.Reserved.TablePath != "" {
		log.Info("Reserved books table loaded", "path", cfg.Reserved.TablePath)
	}

	return table, nil
}
