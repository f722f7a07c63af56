package service

import (
	"dashboard/engine"
	"dashboard/model"
	"dashboard/util"
	"fmt"
	"time"
)

// RollingYears are the rolling windows reported for equity curves
var RollingYears = []float64{1, 3, 5}

func toReturnCells(table engine.Table, periods []engine.Period) map[string]model.ReturnCell {
	cells := make(map[string]model.ReturnCell, len(periods))
	for _, p := range periods {
		cells[p.Label] = toReturnCell(table[p.Label])
	}
	return cells
}

func toReturnCell(r engine.Result) model.ReturnCell {
	cell := model.ReturnCell{Value: r.Value.String()}
	if r.Available() && r.ComparisonDate != nil {
		d := util.FormatDate(*r.ComparisonDate)
		cell.ComparisonDate = &d
	}
	return cell
}

func toDrawdownDto(d engine.Drawdown) model.DrawdownDto {
	mdd := engine.Unavailable
	if d.Max.Valid {
		mdd = d.Max.String() + "%"
	}
	return model.DrawdownDto{
		Drawdown: d.Current.String(),
		Mdd:      mdd,
	}
}

func toRollingDto(r engine.RollingStats) *model.RollingDto {
	if !r.Valid {
		return nil
	}
	return &model.RollingDto{
		Years:   r.Years,
		Windows: r.Windows,
		Average: r.Average.String(),
		High:    r.High.String(),
		Low:     r.Low.String(),
	}
}

func rollingKey(years float64) string {
	return fmt.Sprintf("%gY", years)
}

func lastDate(s *engine.Series) string {
	points := s.Points()
	if len(points) == 0 {
		return ""
	}
	return util.FormatDate(points[len(points)-1].Date)
}

// instrumentReport resolves one instrument with resolver, bounded by opts.AsOf
func instrumentReport(resolver *engine.Resolver, s *engine.Series, opts engine.Options) model.InstrumentReport {
	bounded := s.Until(opts.AsOf)
	return model.InstrumentReport{
		Name:     s.Name,
		AsOf:     lastDate(bounded),
		Returns:  toReturnCells(resolver.ResolveAll(s, opts), resolver.Periods()),
		Drawdown: toDrawdownDto(engine.Drawdowns(bounded)),
	}
}

// curveReport analyses an equity curve: trailing returns, drawdown and
// rolling statistics.
func curveReport(s *engine.Series) (model.PortfolioReport, error) {
	report := model.PortfolioReport{
		InstrumentReport: instrumentReport(engine.NewIndexResolver(), s, engine.Options{}),
		Rolling:          make(map[string]*model.RollingDto, len(RollingYears)),
	}
	for _, years := range RollingYears {
		stats, err := engine.Rolling(s, years)
		if err != nil {
			return model.PortfolioReport{}, err
		}
		report.Rolling[rollingKey(years)] = toRollingDto(stats)
	}
	return report, nil
}

// groupRows splits rows sorted by name into one series per instrument,
// keeping the first-seen order of names.
func groupRows(rows []model.IndexValue) ([]*engine.Series, error) {
	var names []string
	grouped := make(map[string][]engine.Observation)
	for _, row := range rows {
		if _, ok := grouped[row.Name]; !ok {
			names = append(names, row.Name)
		}
		grouped[row.Name] = append(grouped[row.Name], engine.Observation{
			Instrument: row.Name,
			Date:       row.Date,
			Value:      row.Value,
		})
	}

	series := make([]*engine.Series, 0, len(names))
	for _, name := range names {
		s, err := engine.NewSeries(name, grouped[name])
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return series, nil
}

func findSeries(all []*engine.Series, name string) *engine.Series {
	for _, s := range all {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// calendarFor derives the trading calendar from the benchmark when present
func calendarFor(all []*engine.Series, benchmark string) engine.Calendar {
	if b := findSeries(all, benchmark); b != nil && b.Len() > 0 {
		return engine.CalendarFromSeries(b)
	}
	return nil
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return util.FormatDate(*t)
}
