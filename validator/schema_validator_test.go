package validator

import (
	"dashboard/model"
	"testing"
)

func validRequest() model.BacktestRequest {
	return model.BacktestRequest{
		StartDate:    "2015-01-01",
		EndDate:      "2024-12-31",
		InitialValue: 100000,
		Portfolios: []model.PortfolioAllocation{
			{Name: "60/40", Holdings: []model.Holding{{Symbol: "NIFTY 50", Weight: 60}, {Symbol: "GILT", Weight: 40}}},
			{Name: "Thirds", Holdings: []model.Holding{{Symbol: "A", Weight: 33.33}, {Symbol: "B", Weight: 33.33}, {Symbol: "C", Weight: 33.34}}},
		},
	}
}

func TestValidateBacktest(t *testing.T) {
	req := validRequest()
	if err := ValidateBacktest(&req); err != nil {
		t.Fatalf("expected a valid request, got %v", err)
	}

	cases := map[string]func(r *model.BacktestRequest){
		"bad date":        func(r *model.BacktestRequest) { r.StartDate = "01-01-2015" },
		"zero value":      func(r *model.BacktestRequest) { r.InitialValue = 0 },
		"no portfolios":   func(r *model.BacktestRequest) { r.Portfolios = nil },
		"weights sum":     func(r *model.BacktestRequest) { r.Portfolios[0].Holdings[0].Weight = 50 },
		"negative weight": func(r *model.BacktestRequest) { r.Portfolios[0].Holdings = []model.Holding{{Symbol: "X", Weight: 110}, {Symbol: "Y", Weight: -10}} },
		"duplicate name":  func(r *model.BacktestRequest) { r.Portfolios[1].Name = "60/40" },
		"empty symbol":    func(r *model.BacktestRequest) { r.Portfolios[0].Holdings[0].Symbol = "" },
		"no holdings":     func(r *model.BacktestRequest) { r.Portfolios[0].Holdings = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			if err := ValidateBacktest(&req); err == nil {
				t.Errorf("expected %s to be rejected", name)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	if err := ValidateLogin(&model.LoginDto{Username: "admin", Password: "secret"}); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := ValidateLogin(&model.LoginDto{Username: "admin"}); err == nil {
		t.Errorf("expected a missing password to be rejected")
	}
}
