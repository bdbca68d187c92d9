package refdata

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// yamlDocument mirrors the workbook: one list of rows per sheet.
type yamlDocument struct {
	Positioning []map[string]any `yaml:"positioning"`
	Economic    []map[string]any `yaml:"economic"`
}

func readYAML(path string) (pos, econ *rawTable, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read reference yaml: %w", err)
	}
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse reference yaml: %w", err)
	}
	return tableFromMaps(doc.Positioning), tableFromMaps(doc.Economic), nil
}

// tableFromMaps builds a table whose columns are the union of all row keys.
func tableFromMaps(rows []map[string]any) *rawTable {
	seen := map[string]bool{}
	var header []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	sort.Strings(header)

	t := newRawTable(header)
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, h := range header {
			cells[i] = cellString(row[h])
		}
		t.addRow(header, cells)
	}
	return t
}
