package performance

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"theaterwecker/core/utils"
	"theaterwecker/feature/performance/models"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NormalizeName collapses whitespace (including non-breaking spaces) and trims.
func NormalizeName(s string) string {
	return utils.NormalizeSpace(s)
}

// CanonicalKey is the case-insensitive identity of a location or category name.
func CanonicalKey(s string) string {
	return strings.ToLower(NormalizeName(s))
}

// Resolver maps free-text names to stored reference ids, creating the rows on
// first sight. Concurrent lookups of the same name share one database round
// trip and results are cached for the lifetime of the Resolver, which is one
// reconciliation pass.
type Resolver struct {
	db    *gorm.DB
	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]uint
}

// NewResolver creates a Resolver with an empty cache.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db, cache: make(map[string]uint)}
}

// Institution resolves the institution name within city.
func (r *Resolver) Institution(ctx context.Context, city, name string) (uint, error) {
	cityName := NormalizeName(city)
	instName := NormalizeName(name)

	return r.resolve("institution:"+cityName+"\x1f"+instName, func() (uint, error) {
		c := models.City{Name: cityName}
		if err := r.getOrCreate(ctx, &c, "name = ?", cityName); err != nil {
			return 0, fmt.Errorf("failed to resolve city %q: %w", cityName, err)
		}

		inst := models.Institution{CityID: c.ID, Name: instName}
		if err := r.getOrCreate(ctx, &inst, "city_id = ? AND name = ?", c.ID, instName); err != nil {
			return 0, fmt.Errorf("failed to resolve institution %q: %w", instName, err)
		}
		return inst.ID, nil
	})
}

// Location resolves a venue name within the institution.
func (r *Resolver) Location(ctx context.Context, institutionID uint, name string) (uint, error) {
	key := CanonicalKey(name)
	if key == "" {
		return 0, fmt.Errorf("empty location name")
	}

	return r.resolve(fmt.Sprintf("location:%d:%s", institutionID, key), func() (uint, error) {
		loc := models.Location{InstitutionID: institutionID, Key: key, Name: NormalizeName(name)}
		if err := r.getOrCreate(ctx, &loc, "institution_id = ? AND name_key = ?", institutionID, key); err != nil {
			return 0, fmt.Errorf("failed to resolve location %q: %w", name, err)
		}
		return loc.ID, nil
	})
}

// Category resolves a category name within the institution.
func (r *Resolver) Category(ctx context.Context, institutionID uint, name string) (uint, error) {
	key := CanonicalKey(name)
	if key == "" {
		return 0, fmt.Errorf("empty category name")
	}

	return r.resolve(fmt.Sprintf("category:%d:%s", institutionID, key), func() (uint, error) {
		cat := models.Category{InstitutionID: institutionID, Key: key, Name: NormalizeName(name)}
		if err := r.getOrCreate(ctx, &cat, "institution_id = ? AND name_key = ?", institutionID, key); err != nil {
			return 0, fmt.Errorf("failed to resolve category %q: %w", name, err)
		}
		return cat.ID, nil
	})
}

func (r *Resolver) resolve(cacheKey string, load func() (uint, error)) (uint, error) {
	r.mu.RLock()
	id, ok := r.cache[cacheKey]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	v, err, _ := r.group.Do(cacheKey, func() (interface{}, error) {
		id, err := load()
		if err != nil {
			return uint(0), err
		}
		r.mu.Lock()
		r.cache[cacheKey] = id
		r.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(uint), nil
}

// getOrCreate inserts row unless the unique key already exists, then loads the
// stored row. Racing writers in other processes are settled by the unique index.
func (r *Resolver) getOrCreate(ctx context.Context, row any, query string, args ...any) error {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
		return err
	}
	return db.Where(query, args...).Take(row).Error
}
