// Package refdata loads the positioning and economic reference tables.
//
// Every source is reduced to raw string cells first and then normalised in
// one place: headers are trimmed, numbers are parsed, and derived columns
// (institutional Bias, economic Score) are filled in when the source lacks
// them.
package refdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"EdgeFinder/internal/model"
)

// Sheet names of the reference workbook.
const (
	PositioningSheet = "Cleaned Data"
	EconomicSheet    = "Economic Raw Data"
)

// Column headers read from the positioning sheet.
const (
	ColCurrency   = "Currency"
	ColInstLongs  = "InstLongs"
	ColInstShorts = "InstShorts"
	ColRetLongs   = "RetLongs"
	ColRetShorts  = "RetShorts"
	ColInstNet    = "InstNet Position"
	ColBias       = "Bias"
)

// Column headers read from the economic sheet besides the indicators.
const (
	ColCountry = "Country"
	ColScore   = "Score"
)

var (
	// ErrUnsupportedSource is returned for paths whose kind cannot be inferred.
	ErrUnsupportedSource = errors.New("unsupported reference source")
	// ErrDuplicateKey is returned when a currency or country appears twice.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing column")
)

// Tables is the reference data consumed by the bias engine.
type Tables struct {
	Positioning model.PositioningTable
	Economic    model.EconomicTable
}

// Load reads reference tables from source. A directory is read as two CSV
// exports of the workbook sheets, .yaml/.yml as a YAML document and
// .db/.sqlite/.sqlite3 as a SQLite database.
func Load(source string) (*Tables, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("stat reference source: %w", err)
	}

	var pos, econ *rawTable
	switch ext := strings.ToLower(filepath.Ext(source)); {
	case info.IsDir():
		pos, econ, err = readCSVDir(source)
	case ext == ".yaml" || ext == ".yml":
		pos, econ, err = readYAML(source)
	case ext == ".db" || ext == ".sqlite" || ext == ".sqlite3":
		pos, econ, err = readSQLite(source)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}
	if err != nil {
		return nil, err
	}
	return build(pos, econ)
}

func build(pos, econ *rawTable) (*Tables, error) {
	pt, err := buildPositioning(pos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", PositioningSheet, err)
	}
	et, err := buildEconomic(econ)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EconomicSheet, err)
	}
	return &Tables{Positioning: pt, Economic: et}, nil
}
