package performance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"time"

	"theaterwecker/core/broker"
	"theaterwecker/core/database"
	"theaterwecker/core/metrics"
	"theaterwecker/core/reconcile"
	"theaterwecker/feature/listing"
	"theaterwecker/feature/performance/models"
	pr "theaterwecker/feature/performance/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Fetcher downloads the raw listing for one window.
type Fetcher interface {
	Fetch(ctx context.Context, w listing.Window) ([]byte, error)
}

// Parser turns a listing document into candidates.
type Parser interface {
	Parse(r io.Reader, w listing.Window) (iter.Seq[listing.Candidate], error)
}

// Deps are the collaborators of a Service. Archive, Publisher and Metrics are
// optional.
type Deps struct {
	DB        *gorm.DB
	Fetcher   Fetcher
	Parser    Parser
	Archive   *listing.Archive
	Publisher broker.Publisher
	Metrics   *metrics.Recorder
	Logger    *zap.Logger

	// ArchiveRetention is how long raw listings are kept. Zero keeps them.
	ArchiveRetention time.Duration
}

var errRollback = errors.New("dry run rollback")

// Service runs reconciliation passes and cleanup sweeps.
type Service struct {
	cfg     Config
	loc     *time.Location
	deps    Deps
	adapter *pr.PerformanceAdapter
	logger  *zap.Logger
}

// NewService creates a Service.
func NewService(cfg Config, deps Deps) (*Service, error) {
	if deps.DB == nil {
		return nil, errors.New("performance service requires a database")
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Publisher == nil {
		deps.Publisher = broker.Nop{}
	}

	return &Service{
		cfg:     cfg,
		loc:     loc,
		deps:    deps,
		adapter: pr.NewPerformanceAdapter(deps.DB),
		logger:  deps.Logger.With(zap.String("institution", cfg.Institution)),
	}, nil
}

// Migrate creates or updates the schema of the performance tables.
func Migrate(db *gorm.DB) error {
	return database.Migrate(db, models.All()...)
}

// WindowReport describes what one listing window contributed to a pass.
type WindowReport struct {
	Window     string `json:"window"`
	Candidates int    `json:"candidates"`
	// Error is set when the window could not be fetched or read.
	Error string `json:"error,omitempty"`
	// Anomaly is set when a successful fetch yielded no candidates.
	Anomaly bool `json:"anomaly,omitempty"`
	// Archived is the object key of the stored raw document.
	Archived string `json:"archived,omitempty"`
}

// PassReport summarizes a reconciliation pass.
type PassReport struct {
	Windows []WindowReport           `json:"windows"`
	Dropped int                      `json:"dropped"`
	Plan    *reconcile.ReconcilePlan `json:"plan"`
	Created int                      `json:"created"`
	Deleted int                      `json:"deleted"`
	Skipped int                      `json:"skipped"`
	DryRun  bool                     `json:"dry_run"`
}

// CreatedEvent is published for every performance a pass stores.
type CreatedEvent struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Begin       time.Time `json:"begin"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Institution string    `json:"institution"`
	City        string    `json:"city"`
}

// RunPass reconciles the current and next month against storage.
//
// Windows are fetched and parsed concurrently; a window that fails contributes
// no candidates and never causes deletes. Storage errors abort the pass.
func (s *Service) RunPass(ctx context.Context, now time.Time, opts reconcile.ReconcileOptions) (*PassReport, error) {
	start := time.Now()
	defer func() { s.deps.Metrics.PassDuration(time.Since(start).Seconds()) }()

	windows := listing.Windows(now, s.loc)
	reports := make([]WindowReport, len(windows))
	candidates := make([][]listing.Candidate, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range windows {
		g.Go(func() error {
			reports[i], candidates[i] = s.collect(gctx, w, now)
			return nil
		})
	}
	_ = g.Wait()

	report := &PassReport{Windows: reports, DryRun: opts.DryRun}

	var (
		plan    *reconcile.ReconcilePlan
		result  reconcile.ApplyResult
		dropped int
		err     error
	)
	if opts.DryRun {
		plan, result, dropped, err = s.dryRun(ctx, slices.Concat(candidates...), opts)
	} else {
		plan, result, dropped, err = s.apply(ctx, s.deps.DB, s.adapter, slices.Concat(candidates...), opts)
	}
	if err != nil {
		return nil, err
	}
	report.Dropped = dropped
	report.Plan = plan
	report.Created = result.Created
	report.Deleted = result.Deleted
	report.Skipped = result.Skipped

	s.deps.Metrics.Mutation(string(reconcile.ActionCreate), result.Created)
	s.deps.Metrics.Mutation(string(reconcile.ActionDelete), result.Deleted)

	s.publish(ctx, result.Applied)

	s.logger.Info("Reconciliation pass finished",
		zap.Int("candidates", plan.Summary.TotalItems),
		zap.Int("dropped", dropped),
		zap.Int("created", result.Created),
		zap.Int("deleted", result.Deleted),
		zap.Int("unchanged", plan.Summary.Unchanged),
		zap.Bool("dry_run", opts.DryRun),
		zap.Duration("duration", time.Since(start)))

	return report, nil
}

// apply resolves candidates against db and plans and applies the result.
func (s *Service) apply(ctx context.Context, db *gorm.DB, adapter *pr.PerformanceAdapter, candidates []listing.Candidate, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, reconcile.ApplyResult, int, error) {
	items, dropped, err := s.resolve(ctx, db, candidates)
	if err != nil {
		return nil, reconcile.ApplyResult{}, dropped, err
	}

	plan, result, err := reconcile.ReconcileAndApply(ctx, adapter, adapter, items, opts)
	if err != nil {
		return nil, result, dropped, fmt.Errorf("reconciliation failed: %w", err)
	}
	return plan, result, dropped, nil
}

// dryRun plans inside a transaction that is always rolled back, so references
// created while resolving never reach storage.
func (s *Service) dryRun(ctx context.Context, candidates []listing.Candidate, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, reconcile.ApplyResult, int, error) {
	var (
		plan    *reconcile.ReconcilePlan
		result  reconcile.ApplyResult
		dropped int
	)
	err := s.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		plan, result, dropped, err = s.apply(ctx, tx, pr.NewPerformanceAdapter(tx), candidates, opts)
		if err != nil {
			return err
		}
		return errRollback
	})
	if !errors.Is(err, errRollback) {
		return nil, reconcile.ApplyResult{}, dropped, err
	}
	return plan, result, dropped, nil
}

// collect fetches, archives and parses one window. Failures are contained.
func (s *Service) collect(ctx context.Context, w listing.Window, now time.Time) (WindowReport, []listing.Candidate) {
	report := WindowReport{Window: w.String()}
	l := s.logger.With(zap.String("window", report.Window))

	body, err := s.deps.Fetcher.Fetch(ctx, w)
	if err != nil {
		l.Warn("Listing fetch failed, window yields no candidates", zap.Error(err))
		report.Error = err.Error()
		return report, nil
	}

	if key, err := s.deps.Archive.Store(ctx, w, body, now); err != nil {
		l.Warn("Failed to archive listing", zap.Error(err))
	} else {
		report.Archived = key
	}

	seq, err := s.deps.Parser.Parse(bytes.NewReader(body), w)
	if err != nil {
		l.Warn("Listing document unreadable, window yields no candidates", zap.Error(err))
		report.Error = err.Error()
		return report, nil
	}

	candidates := slices.Collect(seq)
	report.Candidates = len(candidates)
	s.deps.Metrics.Candidates(len(candidates))

	if len(candidates) == 0 {
		report.Anomaly = true
		s.deps.Metrics.EmptyWindow()
		l.Warn("Listing yielded no candidates, the page structure may have changed",
			zap.Int("bytes", len(body)),
			zap.String("archived", report.Archived))
	}

	return report, candidates
}

// resolve maps candidates to reconcile items. Candidates with an impossible
// begin time are dropped; storage errors abort.
func (s *Service) resolve(ctx context.Context, db *gorm.DB, candidates []listing.Candidate) ([]reconcile.Item, int, error) {
	if len(candidates) == 0 {
		return nil, 0, nil
	}

	resolver := NewResolver(db)
	institutionID, err := resolver.Institution(ctx, s.cfg.City, s.cfg.Institution)
	if err != nil {
		return nil, 0, err
	}

	items := make([]reconcile.Item, 0, len(candidates))
	dropped := 0
	for _, c := range candidates {
		begin, err := c.Begin(s.loc)
		if err != nil {
			var malformed *listing.MalformedRecordError
			if errors.As(err, &malformed) {
				s.deps.Metrics.MalformedRecord(malformed.Field)
			}
			s.logger.Warn("Dropping candidate", zap.String("title", c.Title), zap.Error(err))
			dropped++
			continue
		}

		locationName := c.Location
		if NormalizeName(locationName) == "" {
			locationName = s.cfg.DefaultLocation
		}
		categoryName := c.Category
		if !c.HasCategory || NormalizeName(categoryName) == "" {
			categoryName = s.cfg.DefaultCategory
		}

		locationID, err := resolver.Location(ctx, institutionID, locationName)
		if err != nil {
			return nil, dropped, err
		}
		categoryID, err := resolver.Category(ctx, institutionID, categoryName)
		if err != nil {
			return nil, dropped, err
		}

		items = append(items, pr.NewItem(models.Performance{
			Title:       c.Title,
			Begin:       begin.UTC(),
			LocationID:  locationID,
			CategoryID:  categoryID,
			Description: c.Description,
		}, NormalizeName(locationName), NormalizeName(categoryName), c.Ticketed))
	}

	return items, dropped, nil
}

func (s *Service) publish(ctx context.Context, applied []reconcile.Action) {
	var events []any
	for _, a := range applied {
		if a.Type != reconcile.ActionCreate {
			continue
		}
		it, ok := a.Item.(*pr.Item)
		if !ok {
			continue
		}
		events = append(events, CreatedEvent{
			ID:          it.Performance.ID,
			Title:       it.Performance.Title,
			Begin:       it.Performance.Begin,
			Location:    it.LocationName,
			Category:    it.CategoryName,
			Description: it.Performance.Description,
			Institution: s.cfg.Institution,
			City:        s.cfg.City,
		})
	}

	if err := s.deps.Publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish created performances", zap.Int("count", len(events)), zap.Error(err))
	}
}

// List returns stored performances.
func (s *Service) List(ctx context.Context, f pr.Filter) ([]pr.Listed, error) {
	return s.adapter.List(ctx, f)
}

// SchemaCheck returns the columns the performances table is missing.
func (s *Service) SchemaCheck() ([]string, error) {
	return database.MissingColumns(s.deps.DB, models.Performance{}.TableName(),
		"id", "title", "begin_at", "location_id", "category_id", "description", "identity_key")
}
