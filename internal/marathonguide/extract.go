package marathonguide

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/pfrederiksen/marathon-results/internal/pagestore"
)

// Table is one race's extracted raw rows, destined for one raw file.
type Table struct {
	Race   Race
	Header []string
	Rows   [][]string
}

// Extract parses every stored batch of the given races, one table per
// race. Raw headers vary by race, so each table keeps its own header with
// a midd column appended and every row carries its race's midd, letting
// downstream cleaning join rows back to the race list. Races with no
// stored batches are skipped.
func Extract(ctx context.Context, store *pagestore.Store, races []Race) ([]Table, error) {
	var tables []Table
	for _, race := range races {
		collection := Collection(race.MIDD)
		midd := strconv.Itoa(race.MIDD)
		var header []string
		var rows [][]string
		err := store.ForEach(ctx, collection, func(id string, body []byte) error {
			pageHeader, pageRows, err := ParseResults(bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("page %s/%s: %w", collection, id, err)
			}
			if header == nil && len(pageHeader) > 0 {
				header = append(append([]string{}, pageHeader...), "midd")
			}
			for _, row := range pageRows {
				rows = append(rows, append(row, midd))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if header == nil {
			continue
		}
		tables = append(tables, Table{Race: race, Header: header, Rows: rows})
	}
	return tables, nil
}
