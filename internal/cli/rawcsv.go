package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// writeRawFile saves an extracted raw table, header first. Raw tables have
// no fixed schema; each source writes the columns its pages carry.
func writeRawFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// uniformRows drops rows whose field count differs from the header's. CSV
// readers hold every record to one width, so a single malformed row from a
// markup quirk would otherwise make the whole raw file unreadable.
func uniformRows(header []string, rows [][]string) [][]string {
	kept := make([][]string, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(header) {
			log.Warn("dropping malformed raw row",
				zap.Int("row", i+1),
				zap.Int("fields", len(row)),
				zap.Int("want", len(header)))
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

// readRawFile loads a raw table written by writeRawFile.
func readRawFile(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	header, err = r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%s: empty raw file", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	rows, err = r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return header, rows, nil
}
