package model

import "time"

const BacktestCollectionName = "backtest_runs"

// --- BACKTEST ---

type Holding struct {
	Symbol string  `json:"symbol" bson:"symbol" example:"NIFTY 50"`
	Weight float64 `json:"weight" bson:"weight" example:"60"`
}

// PortfolioAllocation is one portfolio of a comparison. Weights are percentages
// and must add up to 100.
type PortfolioAllocation struct {
	Name      string    `json:"name" bson:"name" example:"60/40"`
	Rebalance string    `json:"rebalance,omitempty" bson:"rebalance" enum:"none,monthly,quarterly,yearly" example:"monthly"`
	Holdings  []Holding `json:"holdings" bson:"holdings"`
}

type BacktestRequest struct {
	StartDate    string                `json:"startDate" bson:"startDate" example:"2015-01-01"`
	EndDate      string                `json:"endDate" bson:"endDate" example:"2024-12-31"`
	InitialValue int64                 `json:"initialValue" bson:"initialValue" example:"100000"`
	Portfolios   []PortfolioAllocation `json:"portfolios" bson:"portfolios" minItems:"1" maxItems:"5"`
}

// CalcPoint and CalcCurve mirror the calculation API response
type CalcPoint struct {
	Date string  `mapstructure:"date"`
	Nav  float64 `mapstructure:"nav"`
}

type CalcCurve struct {
	Name        string      `mapstructure:"name"`
	EquityCurve []CalcPoint `mapstructure:"equityCurve"`
}

type CalcResponse struct {
	Portfolios []CalcCurve `mapstructure:"portfolios"`
}

// BacktestRun is the archived document of one comparison
type BacktestRun struct {
	ID        string            `bson:"_id"`
	CreatedAt time.Time         `bson:"createdAt"`
	Request   BacktestRequest   `bson:"request"`
	Results   []PortfolioReport `bson:"results"`
}

type BacktestRunDto struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Archived  bool              `json:"archived"`
	Request   BacktestRequest   `json:"request"`
	Results   []PortfolioReport `json:"results"`
}

// --- Huma Structs ---

type BacktestInput struct {
	Body BacktestRequest
}

type BacktestIdInput struct {
	ID string `path:"id" doc:"Backtest run id"`
}

type RecentBacktestsInput struct {
	Limit int `query:"limit" default:"10" minimum:"1" maximum:"50"`
}
