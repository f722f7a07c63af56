package controller

import (
	"context"
	"net/http"
	"time"

	"dashboard/middleware"
	"dashboard/model"
	"dashboard/service"

	"github.com/danielgtaylor/huma/v2"
)

const compareTimeout = 90 * time.Second

type BacktestController struct {
	backtestSvc  service.BacktestService
	isProduction bool
}

func NewBacktestController(s service.BacktestService, isProduction bool) *BacktestController {
	return &BacktestController{backtestSvc: s, isProduction: isProduction}
}

func (ctrl *BacktestController) RegisterRoutes(api huma.API) {
	authMw := middleware.HumaAuthMiddleware(api, ctrl.isProduction)

	huma.Register(api, huma.Operation{
		OperationID: "compare-backtest",
		Method:      http.MethodPost,
		Path:        "/api/backtest/compare",
		Summary:     "Compare portfolios over a historical period",
		Middlewares: huma.Middlewares{authMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Backtest"},
	}, ctrl.compare)

	huma.Register(api, huma.Operation{
		OperationID: "recent-backtests",
		Method:      http.MethodGet,
		Path:        "/api/backtest/recent",
		Summary:     "Most recent archived comparisons",
		Middlewares: huma.Middlewares{authMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Backtest"},
	}, ctrl.recent)

	huma.Register(api, huma.Operation{
		OperationID: "get-backtest",
		Method:      http.MethodGet,
		Path:        "/api/backtest/{id}",
		Summary:     "Archived comparison by id",
		Middlewares: huma.Middlewares{authMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Backtest"},
	}, ctrl.get)
}

func (ctrl *BacktestController) compare(ctx context.Context, input *model.BacktestInput) (*model.DefaultResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, compareTimeout)
	defer cancel()

	run, err := ctrl.backtestSvc.Compare(ctx, input.Body)
	if err != nil {
		return nil, toHumaError(err)
	}
	return NewResponse(run, "Backtest compared"), nil
}

func (ctrl *BacktestController) recent(ctx context.Context, input *model.RecentBacktestsInput) (*model.DefaultResponse, error) {
	runs, err := ctrl.backtestSvc.Recent(ctx, input.Limit)
	if err != nil {
		return nil, toHumaError(err)
	}
	return NewResponse(runs, "Recent backtests fetched"), nil
}

func (ctrl *BacktestController) get(ctx context.Context, input *model.BacktestIdInput) (*model.DefaultResponse, error) {
	run, err := ctrl.backtestSvc.Get(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return NewResponse(run, "Backtest fetched"), nil
}
