package service

import (
	"context"
	localcache "dashboard/cache"
	"dashboard/config"
	"dashboard/customerrors"
	"dashboard/engine"
	"dashboard/model"
	"dashboard/repository"
	"dashboard/util"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const (
	reportKeyPrefix = "returns:"
	reportTTL       = 24 * time.Hour
)

// ReportStore is the shared second level cache for computed reports
type ReportStore interface {
	SetStruct(ctx context.Context, key string, value any, expiration time.Duration) error
	GetAsStruct(ctx context.Context, key string, target any) (bool, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

type ReturnsService interface {
	IndexReturns(ctx context.Context, asOf *time.Time) (*model.ReturnsReport, error)
	MonthlyReport(ctx context.Context, year int, month time.Month) (*model.ReturnsReport, error)
	RangeReturns(ctx context.Context, from, to time.Time) (*model.RangeReport, error)
	Series(ctx context.Context, name string) ([]model.SeriesPoint, error)
	PortfolioReturns(ctx context.Context, name string) (*model.PortfolioReport, error)
	Instruments(ctx context.Context) (*model.InstrumentList, error)
	Invalidate(ctx context.Context)
}

type ReturnsServiceImpl struct {
	indexRepo     *repository.IndexRepository
	portfolioRepo *repository.PortfolioRepository
	configManager *config.ConfigManager
	redis         ReportStore
	store         *cache.Cache
	index         *engine.Resolver
	monthly       *engine.Resolver
}

// NewReturnsService wires the report service. redis may be nil.
func NewReturnsService(indexRepo *repository.IndexRepository, portfolioRepo *repository.PortfolioRepository,
	configManager *config.ConfigManager, redis ReportStore) ReturnsService {
	return &ReturnsServiceImpl{
		indexRepo:     indexRepo,
		portfolioRepo: portfolioRepo,
		configManager: configManager,
		redis:         redis,
		store:         localcache.NewReportCache(),
		index:         engine.NewIndexResolver(),
		monthly:       engine.NewMonthlyResolver(),
	}
}

func (s *ReturnsServiceImpl) IndexReturns(ctx context.Context, asOf *time.Time) (*model.ReturnsReport, error) {
	key := reportKeyPrefix + "indices:latest"
	if asOf != nil {
		key = reportKeyPrefix + "indices:" + util.FormatDate(*asOf)
	}

	return cached(ctx, s, key, func() (*model.ReturnsReport, error) {
		opts := engine.Options{}
		if asOf != nil {
			opts.AsOf = util.Truncate(*asOf)
		}
		return s.buildReport(ctx, "indices", s.index, asOf, opts)
	})
}

func (s *ReturnsServiceImpl) MonthlyReport(ctx context.Context, year int, month time.Month) (*model.ReturnsReport, error) {
	end := util.EndOfMonth(year, month)
	key := reportKeyPrefix + "monthly:" + end.Format(util.MonthLayout)

	return cached(ctx, s, key, func() (*model.ReturnsReport, error) {
		return s.buildReport(ctx, "monthly", s.monthly, &end, engine.Options{AsOf: end})
	})
}

func (s *ReturnsServiceImpl) buildReport(ctx context.Context, kind string, resolver *engine.Resolver,
	upTo *time.Time, opts engine.Options) (*model.ReturnsReport, error) {
	rows, err := s.indexRepo.FindAll(ctx, upTo)
	if err != nil {
		return nil, fmt.Errorf("load index values: %w", err)
	}
	all, err := groupRows(rows)
	if err != nil {
		return nil, err
	}

	benchmark := s.configManager.GetConfig().Benchmark
	opts.Calendar = calendarFor(all, benchmark)

	report := &model.ReturnsReport{
		Kind:        kind,
		Strategy:    resolver.Strategy().String(),
		AsOf:        formatOptional(upTo),
		Benchmark:   benchmark,
		Periods:     engine.Labels(resolver.Periods()),
		Instruments: make([]model.InstrumentReport, 0, len(all)),
	}
	for _, series := range all {
		report.Instruments = append(report.Instruments, instrumentReport(resolver, series, opts))
	}
	if report.AsOf == "" {
		for _, row := range report.Instruments {
			report.AsOf = max(report.AsOf, row.AsOf)
		}
	}

	log.Info().Str("kind", kind).Str("asOf", report.AsOf).Int("instruments", len(all)).Msg("Returns report computed")
	return report, nil
}

func (s *ReturnsServiceImpl) RangeReturns(ctx context.Context, from, to time.Time) (*model.RangeReport, error) {
	from, to = util.Truncate(from), util.Truncate(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: %s to %s", customerrors.ErrInvalidRange, util.FormatDate(from), util.FormatDate(to))
	}
	key := reportKeyPrefix + "range:" + util.FormatDate(from) + ":" + util.FormatDate(to)

	return cached(ctx, s, key, func() (*model.RangeReport, error) {
		rows, err := s.indexRepo.FindAll(ctx, &to)
		if err != nil {
			return nil, fmt.Errorf("load index values: %w", err)
		}
		all, err := groupRows(rows)
		if err != nil {
			return nil, err
		}
		opts := engine.Options{Calendar: calendarFor(all, s.configManager.GetConfig().Benchmark)}

		report := &model.RangeReport{
			From:        util.FormatDate(from),
			To:          util.FormatDate(to),
			Instruments: make([]model.RangeRow, 0, len(all)),
		}
		for _, series := range all {
			result, err := engine.ResolveRange(series, from, to, opts)
			if err != nil {
				return nil, err
			}
			row := model.RangeRow{Name: series.Name, Return: toReturnCell(result)}
			if result.Available() {
				row.EndsOn = lastDate(series.Between(from, to))
			}
			report.Instruments = append(report.Instruments, row)
		}
		return report, nil
	})
}

func (s *ReturnsServiceImpl) Series(ctx context.Context, name string) ([]model.SeriesPoint, error) {
	rows, err := s.indexRepo.FindByName(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", customerrors.ErrInstrumentNotFound, name)
	}

	points := make([]model.SeriesPoint, len(rows))
	for i, row := range rows {
		points[i] = model.SeriesPoint{Date: util.FormatDate(row.Date), Value: row.Value}
	}
	return points, nil
}

func (s *ReturnsServiceImpl) PortfolioReturns(ctx context.Context, name string) (*model.PortfolioReport, error) {
	key := reportKeyPrefix + "portfolio:" + name

	return cached(ctx, s, key, func() (*model.PortfolioReport, error) {
		navs, err := s.portfolioRepo.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load portfolio navs: %w", err)
		}
		if len(navs) == 0 {
			return nil, fmt.Errorf("%w: %s", customerrors.ErrPortfolioNotFound, name)
		}

		obs := make([]engine.Observation, len(navs))
		for i, n := range navs {
			obs[i] = engine.Observation{Date: n.Date, Value: n.Nav}
		}
		series, err := engine.NewSeries(name, obs)
		if err != nil {
			return nil, err
		}
		report, err := curveReport(series)
		if err != nil {
			return nil, err
		}
		return &report, nil
	})
}

func (s *ReturnsServiceImpl) Instruments(ctx context.Context) (*model.InstrumentList, error) {
	indices, err := s.indexRepo.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("load index names: %w", err)
	}
	portfolios, err := s.portfolioRepo.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("load portfolio names: %w", err)
	}
	return &model.InstrumentList{Indices: indices, Portfolios: portfolios}, nil
}

// Invalidate drops every cached report after the underlying data changed
func (s *ReturnsServiceImpl) Invalidate(ctx context.Context) {
	s.store.Flush()
	if s.redis != nil {
		if err := s.redis.DeletePrefix(ctx, reportKeyPrefix); err != nil {
			log.Warn().Err(err).Msg("Failed to clear redis report cache")
		}
	}
	log.Info().Msg("Report caches invalidated")
}

// cached looks a report up in the local store, then redis, and computes it
// on a double miss.
func cached[T any](ctx context.Context, s *ReturnsServiceImpl, key string, compute func() (*T, error)) (*T, error) {
	if val, ok := s.store.Get(key); ok {
		return val.(*T), nil
	}

	if s.redis != nil {
		var fromRedis T
		ok, err := s.redis.GetAsStruct(ctx, key, &fromRedis)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Redis report lookup failed")
		}
		if ok {
			s.store.Set(key, &fromRedis, cache.DefaultExpiration)
			return &fromRedis, nil
		}
	}

	report, err := compute()
	if err != nil {
		return nil, err
	}
	s.store.Set(key, report, cache.DefaultExpiration)
	if s.redis != nil {
		if err := s.redis.SetStruct(ctx, key, report, reportTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to store report in redis")
		}
	}
	return report, nil
}
