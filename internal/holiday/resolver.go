package holiday

import (
	"context"
	"sync"
	"time"

	"github.com/username/chofshli/internal/calendar"
	"github.com/username/chofshli/pkg/dateutil"
	"go.uber.org/zap"
)

const defaultCacheTTL = 24 * time.Hour

// Resolver builds holiday calendars from an observance source
type Resolver struct {
	source   Source
	cacheTTL time.Duration
	logger   *zap.Logger
	cache    map[cacheKey]*cachedCalendar
	cacheMu  sync.RWMutex
}

type cacheKey struct {
	year     int
	category Category
}

type cachedCalendar struct {
	data      calendar.Holidays
	fetchedAt time.Time
}

// NewResolver creates a new Resolver
func NewResolver(source Source, cacheTTL time.Duration, logger *zap.Logger) *Resolver {
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &Resolver{
		source:   source,
		cacheTTL: cacheTTL,
		logger:   logger,
		cache:    make(map[cacheKey]*cachedCalendar),
	}
}

// Resolve returns the holiday calendar of a Gregorian year for a category.
// A failing source yields an empty calendar; the only error returned is the
// context's.
func (r *Resolver) Resolve(ctx context.Context, year int, category Category) (calendar.Holidays, error) {
	if err := ctx.Err(); err != nil {
		return calendar.Holidays{}, err
	}

	category = ParseCategory(string(category))
	key := cacheKey{year: year, category: category}

	r.cacheMu.RLock()
	if cached, ok := r.cache[key]; ok {
		if time.Since(cached.fetchedAt) < r.cacheTTL {
			r.cacheMu.RUnlock()
			r.logger.Debug("Using cached holiday calendar",
				zap.Int("year", year),
				zap.String("category", category.String()))
			return cached.data, nil
		}
	}
	r.cacheMu.RUnlock()

	observances, err := r.source.Observances(ctx, year)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return calendar.Holidays{}, ctxErr
		}
		r.logger.Warn("Holiday source failed, continuing without holidays",
			zap.Int("year", year),
			zap.Error(err))
		return calendar.Holidays{}, nil
	}

	holidays := Build(category, observances)

	r.cacheMu.Lock()
	r.cache[key] = &cachedCalendar{
		data:      holidays,
		fetchedAt: time.Now(),
	}
	r.cacheMu.Unlock()

	r.logger.Info("Holiday calendar resolved",
		zap.Int("year", year),
		zap.String("category", category.String()),
		zap.Int("observances", len(observances)),
		zap.Int("holidays", holidays.Len()))

	return holidays, nil
}

// ResolveRange resolves and merges the calendars of every year touched by
// [start, end]
func (r *Resolver) ResolveRange(ctx context.Context, start, end time.Time, category Category) (calendar.Holidays, error) {
	var merged calendar.Holidays
	for _, year := range dateutil.YearsBetween(start, end) {
		holidays, err := r.Resolve(ctx, year, category)
		if err != nil {
			return calendar.Holidays{}, err
		}
		merged = merged.Merge(holidays)
	}
	return merged, nil
}

// ClearCache clears the cache
func (r *Resolver) ClearCache() {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	r.cache = make(map[cacheKey]*cachedCalendar)
	r.logger.Info("Holiday cache cleared")
}

// Build turns observances into a holiday calendar for a category: Yom Tov
// and modern holidays are kept, the category schedule is added, excluded
// observances are dropped and each day costs its scheduled value or a full
// day.
func Build(category Category, observances []Observance) calendar.Holidays {
	schedule := Schedule(category)

	records := make([]calendar.HolidayRecord, 0, len(observances))
	for _, ob := range observances {
		name := CanonicalName(ob.Name)

		cost, scheduled := schedule[name]
		if !scheduled && !ob.Kinds.HasAny(KindYomTov, KindModern) {
			continue
		}
		if excluded[name] {
			continue
		}
		if !scheduled {
			cost = fullDay
		}

		records = append(records, calendar.HolidayRecord{
			Date:        ob.Date,
			Name:        ob.Name,
			DisplayName: ob.LocalName,
			Cost:        cost,
		})
	}

	return calendar.NewHolidays(records...)
}
