package service

import (
	"context"
	"dashboard/model"
	"dashboard/repository"
	"dashboard/util"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// HistoryClient fetches daily closes for a market symbol
type HistoryClient interface {
	GetDailyCloses(ctx context.Context, name, symbol string, timeRange model.YahooTimeRange) ([]model.IndexValue, error)
}

type RefreshResult struct {
	Instruments int      `json:"instruments"`
	Rows        int      `json:"rows"`
	Failed      []string `json:"failed,omitempty"`
}

type RefreshService interface {
	Refresh(ctx context.Context) (*RefreshResult, error)
	RunDaily(ctx context.Context, hour, minute int)
}

type RefreshServiceImpl struct {
	client    HistoryClient
	indexRepo *repository.IndexRepository
	returns   ReturnsService
	symbols   map[string]string
	now       func() time.Time
}

// NewRefreshService refreshes every instrument of symbols (name to market
// symbol) from client.
func NewRefreshService(client HistoryClient, indexRepo *repository.IndexRepository, returns ReturnsService,
	symbols map[string]string) RefreshService {
	return &RefreshServiceImpl{
		client:    client,
		indexRepo: indexRepo,
		returns:   returns,
		symbols:   symbols,
		now:       time.Now,
	}
}

// Refresh pulls recent closes for every configured instrument. A failing
// instrument does not stop the others; the refresh only errors when all fail.
func (s *RefreshServiceImpl) Refresh(ctx context.Context) (*RefreshResult, error) {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &RefreshResult{}
	for _, name := range names {
		timeRange, err := s.rangeFor(ctx, name)
		if err != nil {
			log.Error().Err(err).Str("instrument", name).Msg("Failed to read latest stored date")
			result.Failed = append(result.Failed, name)
			continue
		}

		values, err := s.client.GetDailyCloses(ctx, name, s.symbols[name], timeRange)
		if err != nil {
			log.Error().Err(err).Str("instrument", name).Msg("Failed to fetch closes")
			result.Failed = append(result.Failed, name)
			continue
		}

		written, err := s.indexRepo.SaveAll(ctx, values)
		if err != nil {
			log.Error().Err(err).Str("instrument", name).Msg("Failed to store closes")
			result.Failed = append(result.Failed, name)
			continue
		}
		result.Instruments++
		result.Rows += written
	}

	if result.Rows > 0 {
		s.returns.Invalidate(ctx)
	}
	log.Info().Int("instruments", result.Instruments).Int("rows", result.Rows).Strs("failed", result.Failed).Msg("Refresh finished")

	if len(names) > 0 && result.Instruments == 0 {
		return result, errors.New("refresh failed for every instrument")
	}
	return result, nil
}

// rangeFor picks the smallest window that covers the gap since the newest
// stored row. Unknown instruments are back-filled in full.
func (s *RefreshServiceImpl) rangeFor(ctx context.Context, name string) (model.YahooTimeRange, error) {
	latest, ok, err := s.indexRepo.LatestDate(ctx, name)
	if err != nil {
		return "", fmt.Errorf("latest date of %s: %w", name, err)
	}
	if !ok {
		return model.RangeMax, nil
	}

	gap := util.DaysBetween(latest, s.now())
	switch {
	case gap <= 5:
		return model.Range5d, nil
	case gap <= 28:
		return model.Range1mo, nil
	case gap <= 89:
		return model.Range3mo, nil
	case gap <= 360:
		return model.Range1y, nil
	case gap <= 5*365:
		return model.Range5y, nil
	}
	return model.RangeMax, nil
}

// RunDaily refreshes once a day at hour:minute IST until ctx is cancelled
func (s *RefreshServiceImpl) RunDaily(ctx context.Context, hour, minute int) {
	for {
		next := util.NextRun(s.now(), hour, minute, util.IstLocation)
		wait := time.Until(next)
		log.Info().Time("next", next).Msg("Scheduled next data refresh")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Msg("Daily refresh stopped")
			return
		case <-timer.C:
		}

		runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		if _, err := s.Refresh(runCtx); err != nil {
			log.Error().Err(err).Msg("Scheduled refresh failed")
		}
		cancel()
	}
}
