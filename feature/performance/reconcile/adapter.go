package reconcile

import (
	"context"
	"fmt"
	"time"

	"theaterwecker/core/reconcile"
	"theaterwecker/feature/performance/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// indexChunk bounds the IN list of a single index query.
const indexChunk = 500

// PerformanceAdapter implements reconcile.Adapter and reconcile.Mutator on
// the performances table.
type PerformanceAdapter struct {
	db *gorm.DB
}

// NewPerformanceAdapter creates an adapter over db.
func NewPerformanceAdapter(db *gorm.DB) *PerformanceAdapter {
	return &PerformanceAdapter{db: db}
}

// Name returns the adapter name.
func (a *PerformanceAdapter) Name() string {
	return "performance"
}

// LoadIndex returns which identity keys are stored.
func (a *PerformanceAdapter) LoadIndex(ctx context.Context, keys []string) (reconcile.Index, error) {
	index := make(reconcile.Index, len(keys))

	for start := 0; start < len(keys); start += indexChunk {
		end := min(start+indexChunk, len(keys))

		var found []string
		err := a.db.WithContext(ctx).
			Model(&models.Performance{}).
			Where("identity_key IN ?", keys[start:end]).
			Pluck("identity_key", &found).Error
		if err != nil {
			return nil, fmt.Errorf("failed to query performances: %w", err)
		}
		for _, key := range found {
			index[key] = struct{}{}
		}
	}

	return index, nil
}

// Create inserts the performance unless its identity key is already stored.
func (a *PerformanceAdapter) Create(ctx context.Context, item reconcile.Item) (bool, error) {
	it, ok := item.(*Item)
	if !ok {
		return false, fmt.Errorf("unexpected item type %T", item)
	}

	row := it.Performance
	result := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity_key"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	it.Performance = row
	return true, nil
}

// Delete removes the stored performance with the item's identity key.
func (a *PerformanceAdapter) Delete(ctx context.Context, item reconcile.Item) (bool, error) {
	result := a.db.WithContext(ctx).
		Where("identity_key = ?", item.Key()).
		Delete(&models.Performance{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteBefore removes every performance beginning before t and returns the
// number of rows removed.
func (a *PerformanceAdapter) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	result := a.db.WithContext(ctx).
		Where("begin_at < ?", t.UTC()).
		Delete(&models.Performance{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete past performances: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Filter narrows List.
type Filter struct {
	From  time.Time
	To    time.Time
	Limit int
}

// Listed is a stored performance with its reference names.
type Listed struct {
	models.Performance
	Location string `json:"location"`
	Category string `json:"category"`
}

// List returns stored performances ordered by begin.
func (a *PerformanceAdapter) List(ctx context.Context, f Filter) ([]Listed, error) {
	q := a.db.WithContext(ctx).
		Table("performances").
		Select("performances.*, locations.name AS location, categories.name AS category").
		Joins("LEFT JOIN locations ON locations.id = performances.location_id").
		Joins("LEFT JOIN categories ON categories.id = performances.category_id").
		Order("performances.begin_at ASC, performances.id ASC")

	if !f.From.IsZero() {
		q = q.Where("performances.begin_at >= ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		q = q.Where("performances.begin_at < ?", f.To.UTC())
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []Listed
	if err := q.Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list performances: %w", err)
	}
	return out, nil
}
