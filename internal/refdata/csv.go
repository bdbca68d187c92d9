package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// readCSVDir reads "<sheet>.csv" for both workbook sheets from dir.
func readCSVDir(dir string) (pos, econ *rawTable, err error) {
	pos, err = readCSVFile(filepath.Join(dir, PositioningSheet+".csv"))
	if err != nil {
		return nil, nil, err
	}
	econ, err = readCSVFile(filepath.Join(dir, EconomicSheet+".csv"))
	if err != nil {
		return nil, nil, err
	}
	return pos, econ, nil
}

func readCSVFile(path string) (*rawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read csv %s: empty file", path)
		}
		return nil, fmt.Errorf("read csv header %s: %w", path, err)
	}

	t := newRawTable(header)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv %s: %w", path, err)
		}
		t.addRow(header, rec)
	}
	return t, nil
}
