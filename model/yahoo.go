package model

type YahooTimeRange string

const (
	Range5d  YahooTimeRange = "5d"
	Range1mo YahooTimeRange = "1mo"
	Range3mo YahooTimeRange = "3mo"
	Range1y  YahooTimeRange = "1y"
	Range5y  YahooTimeRange = "5y"
	RangeMax YahooTimeRange = "max"

	Interval1d = "1d"
)

// YahooChartResponse is the top-level container of the v8 chart API
type YahooChartResponse struct {
	Chart ChartData `json:"chart"`
}

type ChartData struct {
	Result []ChartResult `json:"result"`
	Error  any           `json:"error"`
}

type ChartResult struct {
	Meta       ChartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

type ChartMeta struct {
	Symbol           string `json:"symbol"`
	ExchangeTimezone string `json:"exchangeTimezoneName"`
}

type Indicators struct {
	Quote []Quote `json:"quote"`
}

// Quote slices hold null for missing sessions, hence the pointers
type Quote struct {
	Close []*float64 `json:"close"`
}
