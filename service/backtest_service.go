package service

import (
	"context"
	"dashboard/customerrors"
	"dashboard/engine"
	"dashboard/model"
	"dashboard/util"
	"dashboard/validator"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// Calculator turns a backtest request into equity curves
type Calculator interface {
	RunBacktest(ctx context.Context, req model.BacktestRequest) (*model.CalcResponse, error)
}

type BacktestArchive interface {
	Save(ctx context.Context, run *model.BacktestRun) error
	FindByID(ctx context.Context, id string) (*model.BacktestRun, error)
	FindRecent(ctx context.Context, limit int) ([]model.BacktestRun, error)
}

type BacktestService interface {
	Compare(ctx context.Context, req model.BacktestRequest) (*model.BacktestRunDto, error)
	Get(ctx context.Context, id string) (*model.BacktestRunDto, error)
	Recent(ctx context.Context, limit int) ([]model.BacktestRunDto, error)
}

type BacktestServiceImpl struct {
	calculator Calculator
	archive    BacktestArchive
	now        func() time.Time
}

// NewBacktestService wires the comparison service. archive may be nil, in
// which case runs are computed but not stored.
func NewBacktestService(calculator Calculator, archive BacktestArchive) BacktestService {
	return &BacktestServiceImpl{
		calculator: calculator,
		archive:    archive,
		now:        time.Now,
	}
}

func (s *BacktestServiceImpl) Compare(ctx context.Context, req model.BacktestRequest) (*model.BacktestRunDto, error) {
	if err := validator.ValidateBacktest(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", customerrors.ErrInvalidBacktest, err)
	}
	start, _ := util.ParseDate(req.StartDate)
	end, _ := util.ParseDate(req.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date is before start date", customerrors.ErrInvalidBacktest)
	}

	resp, err := s.calculator.RunBacktest(ctx, req)
	if err != nil {
		return nil, err
	}

	results := make([]model.PortfolioReport, 0, len(resp.Portfolios))
	for _, curve := range resp.Portfolios {
		series, err := curveSeries(curve)
		if err != nil {
			return nil, err
		}
		report, err := curveReport(series)
		if err != nil {
			return nil, err
		}
		results = append(results, report)
	}

	run := &model.BacktestRun{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Request:   req,
		Results:   results,
	}

	archived := false
	if s.archive != nil {
		if err := s.archive.Save(ctx, run); err != nil {
			log.Error().Err(err).Str("id", run.ID).Msg("Failed to archive backtest run")
		} else {
			archived = true
		}
	}

	log.Info().Str("id", run.ID).Int("portfolios", len(results)).Bool("archived", archived).Msg("Backtest compared")
	return toRunDto(run, archived)
}

func (s *BacktestServiceImpl) Get(ctx context.Context, id string) (*model.BacktestRunDto, error) {
	if s.archive == nil {
		return nil, customerrors.ErrArchiveDisabled
	}
	run, err := s.archive.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRunDto(run, true)
}

func (s *BacktestServiceImpl) Recent(ctx context.Context, limit int) ([]model.BacktestRunDto, error) {
	if s.archive == nil {
		return nil, customerrors.ErrArchiveDisabled
	}
	runs, err := s.archive.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]model.BacktestRunDto, 0, len(runs))
	for i := range runs {
		dto, err := toRunDto(&runs[i], true)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func curveSeries(curve model.CalcCurve) (*engine.Series, error) {
	obs := make([]engine.Observation, 0, len(curve.EquityCurve))
	for _, p := range curve.EquityCurve {
		date, err := util.ParseDate(p.Date)
		if err != nil {
			log.Warn().Str("portfolio", curve.Name).Str("date", p.Date).Msg("Skipping equity point with invalid date")
			continue
		}
		obs = append(obs, engine.Observation{Date: date, Value: p.Nav})
	}
	return engine.NewSeries(curve.Name, obs)
}

func toRunDto(run *model.BacktestRun, archived bool) (*model.BacktestRunDto, error) {
	var dto model.BacktestRunDto
	if err := copier.Copy(&dto, run); err != nil {
		return nil, fmt.Errorf("copy backtest run: %w", err)
	}
	dto.Archived = archived
	return &dto, nil
}
