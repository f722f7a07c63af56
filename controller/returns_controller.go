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

type ReturnsController struct {
	returnsSvc   service.ReturnsService
	isProduction bool
}

func NewReturnsController(s service.ReturnsService, isProduction bool) *ReturnsController {
	return &ReturnsController{returnsSvc: s, isProduction: isProduction}
}

func (ctrl *ReturnsController) RegisterRoutes(api huma.API) {
	authMw := middleware.HumaAuthMiddleware(api, ctrl.isProduction)

	huma.Register(api, huma.Operation{
		OperationID: "index-returns",
		Method:      http.MethodGet,
		Path:        "/api/indices/returns",
		Summary:     "Trailing returns of every index",
		Description: "Nearest prior comparison dates, bounded by the optional asOf date.",
		Middlewares: huma.Middlewares{authMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Indices"},
	}, ctrl.indexReturns)

	huma.Register(api, huma.Operation{
		OperationID: "monthly-report",
		Method:      http.MethodGet,
		Path:        "/api/indices/monthly-report",
		Summary:     "Month end returns report",
		Middlewares: huma.Middlewares{authMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Indices"},
	}, ctrl.monthlyReport)

	huma.Register(api, huma.Operation{
		OperationID: "range-returns",
		Method:      http.MethodGet,
		Path:        "/api/indices/range-returns",
		Summary:     "Returns over a custom date range",
		Middlewares: huma.Middlewares{authMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Indices"},
	}, ctrl.rangeReturns)

	huma.Register(api, huma.Operation{
		OperationID: "index-series",
		Method:      http.MethodGet,
		Path:        "/api/indices/{name}/series",
		Summary:     "Chart points of one index",
		Middlewares: huma.Middlewares{authMw},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Indices"},
	}, ctrl.series)
}

func (ctrl *ReturnsController) indexReturns(ctx context.Context, input *model.IndexReturnsInput) (*model.DefaultResponse, error) {
	asOf, err := parseOptionalDate("asOf", input.AsOf)
	if err != nil {
		return nil, err
	}
	report, err := ctrl.returnsSvc.IndexReturns(ctx, asOf)
	if err != nil {
		return nil, toHumaError(err)
	}
	return NewResponse(report, "Returns computed"), nil
}

func (ctrl *ReturnsController) monthlyReport(ctx context.Context, input *model.MonthlyReportInput) (*model.DefaultResponse, error) {
	report, err := ctrl.returnsSvc.MonthlyReport(ctx, input.Year, time.Month(input.Month))
	if err != nil {
		return nil, toHumaError(err)
	}
	return NewResponse(report, "Monthly report computed"), nil
}

func (ctrl *ReturnsController) rangeReturns(ctx context.Context, input *model.RangeReturnsInput) (*model.DefaultResponse, error) {
	from, err := parseOptionalDate("from", input.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("to", input.To)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, huma.Error400BadRequest("from and to are required")
	}

	report, err := ctrl.returnsSvc.RangeReturns(ctx, *from, *to)
	if err != nil {
		return nil, toHumaError(err)
	}
	return NewResponse(report, "Range returns computed"), nil
}

func (ctrl *ReturnsController) series(ctx context.Context, input *model.SeriesInput) (*model.DefaultResponse, error) {
	points, err := ctrl.returnsSvc.Series(ctx, input.Name)
	if err != nil {
		return nil, toHumaError(err)
	}
	return NewResponse(points, "Series fetched"), nil
}
