package util

import (
	"dashboard/model"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadIndexValues parses a name,value,date CSV. Rows with an empty name, a
// non numeric value or an unparseable date are skipped.
func ReadIndexValues(r io.Reader) ([]model.IndexValue, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	headerMap := make(map[string]int)
	for i, name := range header {
		headerMap[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}

	nameIdx, hasName := headerMap["name"]
	valueIdx, hasValue := headerMap["value"]
	dateIdx, hasDate := headerMap["date"]
	if !hasName || !hasValue || !hasDate {
		return nil, 0, fmt.Errorf("missing required columns: name, value or date")
	}
	width := max(nameIdx, valueIdx, dateIdx)

	var values []model.IndexValue
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("error reading csv record: %w", err)
		}
		if len(record) <= width {
			skipped++
			continue
		}

		name := strings.TrimSpace(record[nameIdx])
		value, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(record[valueIdx], ",", "")), 64)
		if name == "" || err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			skipped++
			continue
		}
		date, err := ParseDate(record[dateIdx])
		if err != nil {
			skipped++
			continue
		}

		values = append(values, model.IndexValue{Name: name, Value: value, Date: date})
	}

	return values, skipped, nil
}
