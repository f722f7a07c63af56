package model

import "time"

const (
	IndexTableName     = "index_values"
	PortfolioTableName = "portfolio_navs"
)

// IndexValue is one row of the index_values table
type IndexValue struct {
	Name  string    `json:"name"`
	Value float64   `json:"value"`
	Date  time.Time `json:"date"`
}

// SeriesPoint is a chart point sent to the frontend
type SeriesPoint struct {
	Date  string  `json:"date" example:"2024-03-28"`
	Value float64 `json:"value" example:"22326.9"`
}

// ReturnCell is one period of a returns table. Value is "-" when the period
// cannot be computed.
type ReturnCell struct {
	Value          string  `json:"value" example:"12.45"`
	ComparisonDate *string `json:"comparisonDate,omitempty" example:"2024-02-29"`
}

type DrawdownDto struct {
	Drawdown string `json:"drawdown" example:"-3.12"`
	Mdd      string `json:"mdd" example:"38.44%"`
}

type RollingDto struct {
	Years   float64 `json:"years" example:"3"`
	Windows int     `json:"windows" example:"504"`
	Average string  `json:"average" example:"11.02"`
	High    string  `json:"high" example:"19.87"`
	Low     string  `json:"low" example:"2.40"`
}

// InstrumentReport is one row of the returns table
type InstrumentReport struct {
	Name     string                `json:"name"`
	AsOf     string                `json:"asOf,omitempty"`
	Returns  map[string]ReturnCell `json:"returns"`
	Drawdown DrawdownDto           `json:"drawdown"`
}

type ReturnsReport struct {
	Kind        string             `json:"kind" example:"indices"`
	Strategy    string             `json:"strategy" example:"nearest-prior"`
	AsOf        string             `json:"asOf,omitempty"`
	Benchmark   string             `json:"benchmark,omitempty"`
	Periods     []string           `json:"periods"`
	Instruments []InstrumentReport `json:"instruments"`
}

type RangeRow struct {
	Name   string     `json:"name"`
	Return ReturnCell `json:"return"`
	EndsOn string     `json:"endsOn,omitempty"`
}

type RangeReport struct {
	From        string     `json:"from"`
	To          string     `json:"to"`
	Instruments []RangeRow `json:"instruments"`
}

// --- Huma Structs ---

type IndexReturnsInput struct {
	AsOf string `query:"asOf" doc:"Upper bound date (YYYY-MM-DD)" example:"2024-03-28"`
}

type MonthlyReportInput struct {
	Year  int `query:"year" required:"true" minimum:"1990" maximum:"2100" example:"2024"`
	Month int `query:"month" required:"true" minimum:"1" maximum:"12" example:"3"`
}

type RangeReturnsInput struct {
	From string `query:"from" required:"true" doc:"Range start (YYYY-MM-DD)" example:"2024-01-01"`
	To   string `query:"to" required:"true" doc:"Range end (YYYY-MM-DD)" example:"2024-03-31"`
}

type SeriesInput struct {
	Name string `path:"name" doc:"Instrument name" example:"NIFTY 50"`
}
