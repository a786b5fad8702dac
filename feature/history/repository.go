package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultLimit is the page size used when List is given a non-positive limit.
const DefaultLimit = 20

// MaxLimit caps the page size.
const MaxLimit = 500

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("compaction run not found")

// Repository persists compaction runs.
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps an open connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the compaction_runs table.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&CompactionRun{}); err != nil {
		return fmt.Errorf("failed to migrate compaction_runs: %w", err)
	}
	return nil
}

// Record inserts a run, assigning an id and timestamp when unset.
func (r *Repository) Record(ctx context.Context, run *CompactionRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record compaction run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]CompactionRun, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	var runs []CompactionRun
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list compaction runs: %w", err)
	}
	return runs, nil
}

// Get returns one run by id.
func (r *Repository) Get(ctx context.Context, id string) (*CompactionRun, error) {
	var run CompactionRun
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get compaction run %s: %w", id, err)
	}
	return &run, nil
}
