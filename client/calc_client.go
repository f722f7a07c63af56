package client

import (
	"context"
	"dashboard/customerrors"
	"dashboard/middleware"
	"dashboard/model"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
)

// CalcClient talks to the external portfolio calculation API that turns a
// backtest request into equity curves.
type CalcClient struct {
	client *resty.Client
}

func NewCalcClient(baseURL, apiKey string) *CalcClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/json").
		SetHeader("Accept-Encoding", "gzip, br").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		OnAfterResponse(middleware.DecompressMiddleware)

	if apiKey != "" {
		c.SetHeader("X-API-Key", apiKey)
	}

	return &CalcClient{client: c}
}

func (c *CalcClient) RunBacktest(ctx context.Context, req model.BacktestRequest) (*model.CalcResponse, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/backtest")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", customerrors.ErrCalculationUpstream, err)
	}
	if !resp.IsSuccess() {
		log.Error().Int("status", resp.StatusCode()).Str("body", truncate(resp.String(), 256)).Msg("Calculation api returned an error")
		return nil, fmt.Errorf("%w: status %d", customerrors.ErrCalculationUpstream, resp.StatusCode())
	}

	return DecodeCalcResponse(resp.Body())
}

// DecodeCalcResponse accepts numbers sent as strings since the upstream
// serialises NAVs inconsistently.
func DecodeCalcResponse(body []byte) (*model.CalcResponse, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", customerrors.ErrCalculationUpstream, err)
	}

	var out model.CalcResponse
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: unexpected payload: %v", customerrors.ErrCalculationUpstream, err)
	}
	return &out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
