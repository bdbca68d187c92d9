package refdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"EdgeFinder/internal/model"
	"EdgeFinder/internal/strategy"
)

// rawTable is a sheet as read from disk: trimmed headers and string cells.
type rawTable struct {
	columns map[string]bool
	rows    []map[string]string
}

func newRawTable(header []string) *rawTable {
	t := &rawTable{columns: make(map[string]bool, len(header))}
	for _, h := range header {
		t.columns[normalizeHeader(h)] = true
	}
	return t
}

// addRow appends a row given as cells aligned with header.
func (t *rawTable) addRow(header, cells []string) {
	row := make(map[string]string, len(header))
	for i, h := range header {
		if i >= len(cells) {
			continue
		}
		key, cell := normalizeHeader(h), strings.TrimSpace(cells[i])
		// Headers that only differ by padding collapse into one column.
		if prev, ok := row[key]; ok && cell == "" && prev != "" {
			continue
		}
		row[key] = cell
	}
	t.rows = append(t.rows, row)
}

func (t *rawTable) has(col string) bool { return t.columns[col] }

func (t *rawTable) require(cols ...string) error {
	for _, c := range cols {
		if !t.has(c) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	return nil
}

func normalizeHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}

// parseNumber parses a numeric cell. Empty and NaN cells report ok=false.
func parseNumber(cell string) (v float64, ok bool, err error) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	return v, true, nil
}

func buildPositioning(t *rawTable) (model.PositioningTable, error) {
	if err := t.require(ColCurrency, ColInstLongs, ColInstShorts, ColRetLongs, ColRetShorts); err != nil {
		return nil, err
	}
	deriveBias := !t.has(ColBias) && t.has(ColInstNet)

	table := make(model.PositioningTable, len(t.rows))
	for i, row := range t.rows {
		currency := strings.ToUpper(row[ColCurrency])
		if currency == "" {
			continue
		}
		if _, dup := table[currency]; dup {
			return nil, fmt.Errorf("%w: currency %q", ErrDuplicateKey, currency)
		}

		rec := model.PositioningRecord{Currency: currency}
		counts := []struct {
			col string
			dst *int
		}{
			{ColInstLongs, &rec.InstLongs},
			{ColInstShorts, &rec.InstShorts},
			{ColRetLongs, &rec.RetLongs},
			{ColRetShorts, &rec.RetShorts},
		}
		for _, c := range counts {
			v, _, err := parseNumber(row[c.col])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, c.col, err)
			}
			*c.dst = int(v)
		}

		switch {
		case t.has(ColBias):
			rec.Bias = model.Label(row[ColBias])
		case deriveBias:
			net, _, err := parseNumber(row[ColInstNet])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, ColInstNet, err)
			}
			rec.Bias = model.Bearish
			if net > 0 {
				rec.Bias = model.Bullish
			}
		}
		table[currency] = rec
	}
	return table, nil
}

func buildEconomic(t *rawTable) (model.EconomicTable, error) {
	if err := t.require(ColCountry); err != nil {
		return nil, err
	}
	hasScore := t.has(ColScore)

	table := make(model.EconomicTable, len(t.rows))
	for i, row := range t.rows {
		country := row[ColCountry]
		if country == "" {
			continue
		}
		if _, dup := table[country]; dup {
			return nil, fmt.Errorf("%w: country %q", ErrDuplicateKey, country)
		}

		econ := model.EconomicIndicators{Country: country, Values: make(map[model.Indicator]float64)}
		for _, ind := range model.Indicators {
			if !t.has(string(ind)) {
				continue
			}
			v, ok, err := parseNumber(row[string(ind)])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, ind, err)
			}
			if ok {
				econ.Values[ind] = v
			}
		}

		// A blank Score cell is scored from the row's indicators.
		score := strategy.ScoreEconomicRow(econ)
		if hasScore {
			v, ok, err := parseNumber(row[ColScore])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, ColScore, err)
			}
			if ok {
				score = clampScore(int(math.Round(v)))
			}
		}
		econ.Score = &score
		table[country] = econ
	}
	return table, nil
}

func clampScore(v int) int {
	if v < strategy.MacroScoreMin {
		return strategy.MacroScoreMin
	}
	if v > strategy.MacroScoreMax {
		return strategy.MacroScoreMax
	}
	return v
}
