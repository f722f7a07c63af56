package controller

import (
	"context"
	"net/http"

	"dashboard/middleware"
	"dashboard/model"
	"dashboard/service"

	"github.com/danielgtaylor/huma/v2"
)

type PortfolioController struct {
	returnsSvc   service.ReturnsService
	isProduction bool
}

func NewPortfolioController(s service.ReturnsService, isProduction bool) *PortfolioController {
	return &PortfolioController{returnsSvc: s, isProduction: isProduction}
}

func (ctrl *PortfolioController) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "portfolio-returns",
		Method:      http.MethodGet,
		Path:        "/api/portfolios/{name}/returns",
		Summary:     "Returns, drawdown and rolling statistics of a stored portfolio",
		Middlewares: huma.Middlewares{middleware.HumaAuthMiddleware(api, ctrl.isProduction)},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Portfolios"},
	}, ctrl.portfolioReturns)

	huma.Register(api, huma.Operation{
		OperationID: "list-instruments",
		Method:      http.MethodGet,
		Path:        "/api/instruments",
		Summary:     "Names of the stored indices and portfolios",
		Middlewares: huma.Middlewares{middleware.HumaAuthMiddleware(api, ctrl.isProduction)},
		Security:    []map[string][]string{{"bearer": {}}},
		Tags:        []string{"Portfolios"},
	}, ctrl.listInstruments)
}

func (ctrl *PortfolioController) portfolioReturns(ctx context.Context, input *model.PortfolioInput) (*model.DefaultResponse, error) {
	report, err := ctrl.returnsSvc.PortfolioReturns(ctx, input.Name)
	if err != nil {
		return nil, toHumaError(err)
	}
	return NewResponse(report, "Portfolio returns computed"), nil
}

func (ctrl *PortfolioController) listInstruments(ctx context.Context, _ *struct{}) (*model.DefaultResponse, error) {
	list, err := ctrl.returnsSvc.Instruments(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return NewResponse(list, "Instruments listed"), nil
}
