package controller

import (
	"dashboard/customerrors"
	"dashboard/model"
	"dashboard/util"
	"errors"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// NewResponse creates a success response with the given data and message.
func NewResponse(data any, message string) *model.DefaultResponse {
	return &model.DefaultResponse{
		Body: model.Response{
			Success: true,
			Message: message,
			Data:    data,
		},
	}
}

// toHumaError maps service errors onto HTTP statuses
func toHumaError(err error) error {
	switch {
	case errors.Is(err, customerrors.ErrInstrumentNotFound),
		errors.Is(err, customerrors.ErrPortfolioNotFound),
		errors.Is(err, customerrors.ErrBacktestNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, customerrors.ErrInvalidRange),
		errors.Is(err, customerrors.ErrInvalidBacktest),
		errors.Is(err, customerrors.ErrUnknownPeriod):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, customerrors.ErrInvalidCredentials):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, customerrors.ErrArchiveDisabled):
		return huma.Error503ServiceUnavailable(err.Error())
	case errors.Is(err, customerrors.ErrCalculationUpstream):
		return huma.Error502BadGateway("Calculation service unavailable")
	}
	log.Error().Err(err).Msg("Request failed")
	return huma.Error500InternalServerError("Unable to process request at this time")
}

// parseOptionalDate returns nil for an empty value
func parseOptionalDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := util.ParseDate(raw)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid " + field + ", expected YYYY-MM-DD")
	}
	return &d, nil
}
