package client

import (
	"context"
	"dashboard/cache"
	"dashboard/model"
	"dashboard/util"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

type YahooClient struct {
	client *resty.Client
}

func NewYahooClient() *YahooClient {
	return NewYahooClientWithBaseURL("https://query1.finance.yahoo.com/v8/finance/chart")
}

func NewYahooClientWithBaseURL(baseURL string) *YahooClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeaders(map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
			"User-Agent":   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		})

	return &YahooClient{
		client: client,
	}
}

// GetDailyCloses returns the daily closing values of symbol stored under
// name, oldest first. Sessions without a close are skipped.
func (y *YahooClient) GetDailyCloses(ctx context.Context, name, symbol string, timeRange model.YahooTimeRange) ([]model.IndexValue, error) {
	cacheKey := "yahoo_history_" + name + "_" + symbol + "_" + string(timeRange)
	if cached, ok := cache.YahooHistoryCache.Get(cacheKey); ok {
		return cached.([]model.IndexValue), nil
	}

	var chartResponse model.YahooChartResponse
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"range":    string(timeRange),
			"interval": model.Interval1d,
		}).
		SetPathParam("symbol", symbol).
		SetResult(&chartResponse).
		Get("/{symbol}")

	if err != nil {
		return nil, fmt.Errorf("yahoo request for %s failed: %w", symbol, err)
	}
	if !resp.IsSuccess() || chartResponse.Chart.Error != nil || len(chartResponse.Chart.Result) == 0 {
		log.Error().Str("symbol", symbol).Int("status", resp.StatusCode()).Msg("Error calling yahoo api")
		return nil, fmt.Errorf("yahoo request for %s failed with status %d", symbol, resp.StatusCode())
	}

	list := toIndexValues(name, chartResponse.Chart.Result[0])
	if len(list) > 0 {
		cache.YahooHistoryCache.Set(cacheKey, list, gocache.DefaultExpiration)
	}
	return list, nil
}

func toIndexValues(name string, result model.ChartResult) []model.IndexValue {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	loc := util.IstLocation
	if result.Meta.ExchangeTimezone != "" {
		if l, err := time.LoadLocation(result.Meta.ExchangeTimezone); err == nil {
			loc = l
		}
	}

	closes := result.Indicators.Quote[0].Close
	list := make([]model.IndexValue, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		list = append(list, model.IndexValue{
			Name:  name,
			Value: util.Round2(*closes[i]),
			Date:  util.Truncate(time.Unix(ts, 0).In(loc)),
		})
	}
	return list
}
