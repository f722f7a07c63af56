package service

import (
	"context"
	localcache "dashboard/cache"
	"dashboard/customerrors"
	"dashboard/engine"
	"dashboard/model"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestIndexReturns(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "NIFTY 50", 400)
	f.seed(t, "NIFTY BANK", 10)
	svc := NewReturnsService(f.indexRepo, f.portfolioRepo, f.manager, nil)

	report, err := svc.IndexReturns(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.Kind != "indices" || report.Strategy != "nearest-prior" || report.Benchmark != "NIFTY 50" {
		t.Errorf("unexpected header %+v", report)
	}
	if report.AsOf != "2024-02-04" {
		t.Errorf("expected as of 2024-02-04, got %s", report.AsOf)
	}
	if len(report.Periods) != len(engine.IndexPeriods) || len(report.Instruments) != 2 {
		t.Fatalf("unexpected report shape %+v", report)
	}

	nifty := report.Instruments[0]
	if nifty.Name != "NIFTY 50" {
		t.Fatalf("expected NIFTY 50 first, got %s", nifty.Name)
	}
	if cell := nifty.Returns["1D"]; cell.Value != "0.20" || cell.ComparisonDate == nil || *cell.ComparisonDate != "2024-02-03" {
		t.Errorf("unexpected 1D cell %+v", cell)
	}
	if cell := nifty.Returns["5Y"]; cell.Value != engine.Unavailable || cell.ComparisonDate != nil {
		t.Errorf("expected 5Y unavailable, got %+v", cell)
	}
	if nifty.Drawdown.Drawdown != "0.00" || nifty.Drawdown.Mdd != "0.00%" {
		t.Errorf("expected no drawdown on a rising series, got %+v", nifty.Drawdown)
	}

	bank := report.Instruments[1]
	if bank.Returns["1M"].Value != engine.Unavailable {
		t.Errorf("expected 1M unavailable for a short series")
	}
}

func TestIndexReturnsAsOf(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "NIFTY 50", 400)
	svc := NewReturnsService(f.indexRepo, f.portfolioRepo, f.manager, nil)

	asOf := day(2023, 6, 30)
	report, err := svc.IndexReturns(context.Background(), &asOf)
	if err != nil {
		t.Fatal(err)
	}
	if report.AsOf != "2023-06-30" || report.Instruments[0].AsOf != "2023-06-30" {
		t.Errorf("expected the report bounded to 2023-06-30, got %s / %s", report.AsOf, report.Instruments[0].AsOf)
	}
}

func TestIndexReturnsCacheAndInvalidate(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "NIFTY 50", 30)
	svc := NewReturnsService(f.indexRepo, f.portfolioRepo, f.manager, nil)
	ctx := context.Background()

	first, _ := svc.IndexReturns(ctx, nil)
	second, _ := svc.IndexReturns(ctx, nil)
	if first != second {
		t.Errorf("expected the cached report to be reused")
	}

	if _, err := f.indexRepo.SaveAll(ctx, []model.IndexValue{{Name: "NIFTY 50", Value: 200, Date: day(2023, 2, 1)}}); err != nil {
		t.Fatal(err)
	}
	stale, _ := svc.IndexReturns(ctx, nil)
	if stale.AsOf != first.AsOf {
		t.Errorf("expected the cache to hold until invalidated")
	}

	svc.Invalidate(ctx)
	fresh, err := svc.IndexReturns(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.AsOf != "2023-02-01" {
		t.Errorf("expected a recomputed report, got as of %s", fresh.AsOf)
	}
}

func TestLocalReportCacheExpires(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "NIFTY 50", 30)
	svc := NewReturnsService(f.indexRepo, f.portfolioRepo, f.manager, nil).(*ReturnsServiceImpl)
	svc.store = localcache.NewReportCacheWithTTL(50 * time.Millisecond)
	ctx := context.Background()

	first, err := svc.IndexReturns(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	// another instance writes rows without touching this one's cache
	if _, err := f.indexRepo.SaveAll(ctx, []model.IndexValue{{Name: "NIFTY 50", Value: 200, Date: day(2023, 2, 1)}}); err != nil {
		t.Fatal(err)
	}
	if cachedReport, _ := svc.IndexReturns(ctx, nil); cachedReport != first {
		t.Errorf("expected the cached report before expiry")
	}

	time.Sleep(100 * time.Millisecond)
	fresh, err := svc.IndexReturns(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.AsOf != "2023-02-01" {
		t.Errorf("expected an expired entry to be recomputed, got as of %s", fresh.AsOf)
	}
	if svc.store.ItemCount() != 1 {
		t.Errorf("expected a single live entry, got %d", svc.store.ItemCount())
	}
}

func TestReportsAreSharedThroughRedis(t *testing.T) {
	shared := newMemoryStore()

	writer := newFixture(t)
	writer.seed(t, "NIFTY 50", 30)
	if _, err := NewReturnsService(writer.indexRepo, writer.portfolioRepo, writer.manager, shared).IndexReturns(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	// an empty database proves the second instance reads from redis
	reader := newFixture(t)
	report, err := NewReturnsService(reader.indexRepo, reader.portfolioRepo, reader.manager, shared).IndexReturns(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Instruments) != 1 || report.Instruments[0].Returns["1D"].Value == engine.Unavailable {
		t.Errorf("expected the report from the shared store, got %+v", report)
	}

	NewReturnsService(reader.indexRepo, reader.portfolioRepo, reader.manager, shared).Invalidate(context.Background())
	if len(shared.data) != 0 {
		t.Errorf("expected invalidate to clear the shared store")
	}
}

func TestMonthlyReport(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "NIFTY 50", 400)
	svc := NewReturnsService(f.indexRepo, f.portfolioRepo, f.manager, nil)

	report, err := svc.MonthlyReport(context.Background(), 2023, 6)
	if err != nil {
		t.Fatal(err)
	}
	if report.Kind != "monthly" || report.Strategy != "month-end" || report.AsOf != "2023-06-30" {
		t.Errorf("unexpected header %+v", report)
	}
	cell := report.Instruments[0].Returns["1M"]
	if cell.ComparisonDate == nil || *cell.ComparisonDate != "2023-05-31" {
		t.Errorf("expected comparison against 2023-05-31, got %+v", cell)
	}
	if len(report.Periods) != len(engine.MonthlyPeriods) {
		t.Errorf("expected the monthly catalog")
	}
}

func TestRangeReturns(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "NIFTY 50", 60)
	svc := NewReturnsService(f.indexRepo, f.portfolioRepo, f.manager, nil)
	ctx := context.Background()

	report, err := svc.RangeReturns(ctx, day(2023, 1, 1), day(2023, 1, 31))
	if err != nil {
		t.Fatal(err)
	}
	row := report.Instruments[0]
	if row.Return.Value != "30.00" || row.EndsOn != "2023-01-31" {
		t.Errorf("unexpected range row %+v", row)
	}

	sparse, err := svc.RangeReturns(ctx, day(2022, 1, 1), day(2023, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if sparse.Instruments[0].Return.Value != engine.Unavailable || sparse.Instruments[0].EndsOn != "" {
		t.Errorf("expected a sparse range to be unavailable, got %+v", sparse.Instruments[0])
	}

	if _, err := svc.RangeReturns(ctx, day(2023, 2, 1), day(2023, 1, 1)); !errors.Is(err, customerrors.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestSeries(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "NIFTY 50", 3)
	svc := NewReturnsService(f.indexRepo, f.portfolioRepo, f.manager, nil)

	points, err := svc.Series(context.Background(), "NIFTY 50")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 3 || points[0].Date != "2023-01-01" || points[2].Value != 102 {
		t.Errorf("unexpected points %+v", points)
	}

	if _, err := svc.Series(context.Background(), "UNKNOWN"); !errors.Is(err, customerrors.ErrInstrumentNotFound) {
		t.Errorf("expected ErrInstrumentNotFound, got %v", err)
	}
}

func TestPortfolioReturns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	navs := make([]model.PortfolioNav, 300)
	for i := range navs {
		navs[i] = model.PortfolioNav{Portfolio: "Momentum 30", Nav: 10 + float64(i)/10, Date: day(2023, 1, 1).AddDate(0, 0, i)}
	}
	if _, err := f.portfolioRepo.SaveAll(ctx, navs); err != nil {
		t.Fatal(err)
	}
	svc := NewReturnsService(f.indexRepo, f.portfolioRepo, f.manager, nil)

	report, err := svc.PortfolioReturns(ctx, "Momentum 30")
	if err != nil {
		t.Fatal(err)
	}
	if report.Name != "Momentum 30" || report.Returns["1D"].Value == engine.Unavailable {
		t.Errorf("unexpected report %+v", report.InstrumentReport)
	}
	if one := report.Rolling["1Y"]; one == nil || one.Windows != 48 {
		t.Errorf("expected 48 one year windows, got %+v", one)
	}
	if report.Rolling["3Y"] != nil || report.Rolling["5Y"] != nil {
		t.Errorf("expected longer windows to be null")
	}

	if _, err := svc.PortfolioReturns(ctx, "Value 50"); !errors.Is(err, customerrors.ErrPortfolioNotFound) {
		t.Errorf("expected ErrPortfolioNotFound, got %v", err)
	}
}

func TestInstruments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "NIFTY BANK", 3)
	f.seed(t, "NIFTY 50", 3)
	if _, err := f.portfolioRepo.SaveAll(ctx, []model.PortfolioNav{{Portfolio: "Momentum 30", Nav: 10, Date: day(2023, 1, 1)}}); err != nil {
		t.Fatal(err)
	}
	svc := NewReturnsService(f.indexRepo, f.portfolioRepo, f.manager, nil)

	list, err := svc.Instruments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Indices) != 2 || list.Indices[0] != "NIFTY 50" || list.Indices[1] != "NIFTY BANK" {
		t.Errorf("unexpected indices %v", list.Indices)
	}
	if len(list.Portfolios) != 1 || list.Portfolios[0] != "Momentum 30" {
		t.Errorf("unexpected portfolios %v", list.Portfolios)
	}
}

func TestReportJson(t *testing.T) {
	ten := engine.NewPercent(10)
	cell := toReturnCell(engine.Result{Value: ten, ComparisonDate: ptr(day(2024, 2, 29))})
	raw, _ := json.Marshal(cell)
	if string(raw) != `{"value":"10.00","comparisonDate":"2024-02-29"}` {
		t.Errorf("unexpected cell json %s", raw)
	}

	raw, _ = json.Marshal(toReturnCell(engine.Result{}))
	if string(raw) != `{"value":"-"}` {
		t.Errorf("unexpected unavailable json %s", raw)
	}

	dd := toDrawdownDto(engine.Drawdown{Current: engine.NewPercent(-5), Max: engine.NewPercent(20)})
	if dd.Drawdown != "-5.00" || dd.Mdd != "20.00%" {
		t.Errorf("unexpected drawdown %+v", dd)
	}
	if toDrawdownDto(engine.Drawdown{}).Mdd != engine.Unavailable {
		t.Errorf("expected an unavailable mdd")
	}
	if toRollingDto(engine.RollingStats{}) != nil {
		t.Errorf("expected nil rolling stats when invalid")
	}
}

func ptr[T any](v T) *T {
	return &v
}
