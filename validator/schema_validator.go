package validator

import (
	"dashboard/model"
	"fmt"
	"math"
	"regexp"

	"github.com/Oudwins/zog"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// weightTolerance absorbs rounding in percentages such as 33.33 x 3
const weightTolerance = 0.01

var BacktestShape = zog.Shape{
	"StartDate":    zog.String().Required().Match(isoDate),
	"EndDate":      zog.String().Required().Match(isoDate),
	"InitialValue": zog.Int64().Required().GT(0),
}

var PortfolioShape = zog.Shape{
	"Name": zog.String().Required().Max(64),
}

var HoldingShape = zog.Shape{
	"Symbol": zog.String().Required(),
}

var LoginShape = zog.Shape{
	"Username": zog.String().Required(),
	"Password": zog.String().Required(),
}

func ValidateLogin(req *model.LoginDto) error {
	if issues := zog.Struct(LoginShape).Validate(req); len(issues) > 0 {
		return fmt.Errorf("invalid login request: %v", issues)
	}
	return nil
}

// ValidateBacktest checks the request shape and that every portfolio has
// uniquely named positive weights adding up to 100.
func ValidateBacktest(req *model.BacktestRequest) error {
	if issues := zog.Struct(BacktestShape).Validate(req); len(issues) > 0 {
		return fmt.Errorf("%v", issues)
	}
	if len(req.Portfolios) == 0 {
		return fmt.Errorf("at least one portfolio is required")
	}

	names := make(map[string]struct{}, len(req.Portfolios))
	for i := range req.Portfolios {
		p := &req.Portfolios[i]
		if issues := zog.Struct(PortfolioShape).Validate(p); len(issues) > 0 {
			return fmt.Errorf("portfolio %d: %v", i+1, issues)
		}
		if _, dup := names[p.Name]; dup {
			return fmt.Errorf("duplicate portfolio name %q", p.Name)
		}
		names[p.Name] = struct{}{}

		if len(p.Holdings) == 0 {
			return fmt.Errorf("portfolio %q has no holdings", p.Name)
		}
		total := 0.0
		for j := range p.Holdings {
			h := &p.Holdings[j]
			if issues := zog.Struct(HoldingShape).Validate(h); len(issues) > 0 {
				return fmt.Errorf("portfolio %q holding %d: %v", p.Name, j+1, issues)
			}
			if !(h.Weight > 0) {
				return fmt.Errorf("portfolio %q: weight of %s must be positive", p.Name, h.Symbol)
			}
			total += h.Weight
		}
		if math.Abs(total-100) > weightTolerance {
			return fmt.Errorf("portfolio %q: weights add up to %.2f, expected 100", p.Name, total)
		}
	}
	return nil
}
