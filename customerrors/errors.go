package customerrors

import "errors"

var (
	ErrUnknownPeriod       = errors.New("unknown return period")
	ErrMixedInstruments    = errors.New("observations belong to more than one instrument")
	ErrInvalidRange        = errors.New("range end is before range start")
	ErrInvalidWindow       = errors.New("rolling window must be a positive number of years")
	ErrInstrumentNotFound  = errors.New("instrument not found")
	ErrPortfolioNotFound   = errors.New("portfolio not found")
	ErrBacktestNotFound    = errors.New("backtest run not found")
	ErrArchiveDisabled     = errors.New("backtest archive is not configured")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidBacktest     = errors.New("invalid backtest request")
	ErrCalculationUpstream = errors.New("calculation api request failed")
)
