package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"record-compactor/core/codec"
	"record-compactor/core/config"
	"record-compactor/core/database"
	"record-compactor/core/logger"
	"record-compactor/core/storage"
	"record-compactor/feature/compaction"
	"record-compactor/feature/history"
	"record-compactor/feature/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every command builds from configuration. store, db
// and runs stay nil when their backend is not configured or unreachable.
type runtime struct {
	cfg   *config.Config
	log   *zap.Logger
	store storage.Client
	db    *gorm.DB
	runs  *history.Repository
}

func loadRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	rt := &runtime{cfg: cfg, log: logg}

	if cfg.Storage.Enabled() {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Object storage unavailable", zap.Error(err))
		} else {
			rt.store = store
		}
	}

	if cfg.Database.Enabled() {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Warn("Optional history database connection failed", zap.Error(err))
		} else {
			rt.db = db
			rt.runs = history.NewRepository(db)
			if err := rt.runs.Migrate(ctx); err != nil {
				logg.Warn("History migration failed", zap.Error(err))
			}
		}
	}
	return rt, nil
}

func (rt *runtime) compactionService() (*compaction.Service, error) {
	opts, err := rt.cfg.Compactor.Options()
	if err != nil {
		return nil, err
	}
	format, err := codec.ParseFormat(rt.cfg.Server.ArtifactFormat)
	if err != nil {
		return nil, err
	}
	return compaction.NewService(opts, format, rt.store, rt.cfg.Storage, rt.runs, rt.log), nil
}

func (rt *runtime) validationService() *validation.Service {
	return validation.NewService(rt.cfg.Validation, rt.cfg.Compactor, rt.store, rt.cfg.Storage, rt.db, rt.log)
}

func (rt *runtime) close() {
	_ = rt.log.Sync()
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// readInput reads a file, or stdin for "" and "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes to a file, or stdout for "" and "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// outputFormat picks the explicit --format, else the output file extension,
// else the configured default.
func outputFormat(flag, path string, fallback codec.Format) (codec.Format, error) {
	if flag != "" {
		return codec.ParseFormat(flag)
	}
	if path != "" && path != "-" {
		return codec.FormatFromPath(path), nil
	}
	return fallback, nil
}
