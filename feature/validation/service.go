package validation

import (
	"context"
	"fmt"
	"time"

	"record-compactor/core/compactor"
	"record-compactor/core/storage"
	"record-compactor/feature/validation/checks"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service runs the pre-flight checks.
type Service struct {
	cfg       Config
	compactor compactor.Config
	client    storage.Client
	storeCfg  storage.Config
	db        *gorm.DB
	logger    *zap.Logger
}

// NewService creates a validation service. client and db may be nil.
func NewService(cfg Config, compactorCfg compactor.Config, client storage.Client, storeCfg storage.Config, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		cfg:       cfg,
		compactor: compactorCfg,
		client:    client,
		storeCfg:  storeCfg,
		db:        db,
		logger:    logger,
	}
}

// Run executes a single check by name.
func (s *Service) Run(ctx context.Context, name string) (checks.CheckResult, error) {
	switch name {
	case checks.Disk:
		return checks.CheckDisk(s.cfg.OutputDirectory, s.cfg.MinDiskSpaceGB), nil
	case checks.Config:
		return checks.CheckConfig(s.compactor), nil
	case checks.Storage:
		return checks.CheckStorage(ctx, s.client, s.storeCfg), nil
	case checks.Database:
		return checks.CheckDatabase(s.db), nil
	}
	return checks.CheckResult{}, fmt.Errorf("unknown check %q", name)
}

// RunAll executes the named checks concurrently, or all of them when names
// is empty. Results keep the order of names.
func (s *Service) RunAll(ctx context.Context, names ...string) (*Report, error) {
	if len(names) == 0 {
		names = checks.Names
	}
	started := time.Now()
	results := make([]checks.CheckResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			res, err := s.Run(gctx, name)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := buildReport(results, started)
	s.logger.Info("Validation completed",
		zap.Bool("valid", report.Valid),
		zap.Int("passed", report.Passed()),
		zap.Int("checks", len(results)),
		zap.Int("critical", len(report.CriticalIssues)))
	return report, nil
}

// FixStorage repairs the bucket and artifact prefix.
func (s *Service) FixStorage(ctx context.Context) error {
	return checks.FixStorage(ctx, s.client, s.storeCfg, s.logger)
}
