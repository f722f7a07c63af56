package model

import "time"

// PortfolioNav is one row of the portfolio_navs table
type PortfolioNav struct {
	Portfolio string    `json:"portfolio"`
	Nav       float64   `json:"nav"`
	Date      time.Time `json:"date"`
}

// PortfolioReport combines the trailing returns of an equity curve with its
// rolling statistics. Rolling entries are null when the curve is too short.
type PortfolioReport struct {
	InstrumentReport
	Rolling map[string]*RollingDto `json:"rolling"`
}

type PortfolioInput struct {
	Name string `path:"name" doc:"Portfolio name" example:"Momentum 30"`
}

// InstrumentList names everything the dashboard holds data for
type InstrumentList struct {
	Indices    []string `json:"indices"`
	Portfolios []string `json:"portfolios"`
}
