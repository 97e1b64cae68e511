package export

import "fmt"

// Table is a rectangular dataset rendered by the exporters.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Validate ensures every row matches the header width.
func (t Table) Validate() error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("export requires at least one header")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Headers))
		}
	}
	return nil
}
