package baa

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/marathon-results/internal/pagestore"
)

// Extract parses every snapshot in a year's collection into raw runner
// rows, in snapshot id order. When a prefix was re-scraped by gender, its
// combined pages hold a truncated subset of the gender pages' rows, so
// they are skipped.
func Extract(ctx context.Context, store *pagestore.Store, year int) ([][]string, error) {
	parse := ParseResults
	if year < modernFirstYear {
		parse = ParseArchive
	}

	type page struct {
		id   string
		rows [][]string
	}
	var pages []page
	gendered := make(map[string]bool)
	err := store.ForEach(ctx, Collection(year), func(id string, body []byte) error {
		rows, err := parse(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("page %s: %w", id, err)
		}
		if prefix, byGender := splitPageID(id); byGender {
			gendered[prefix] = true
		}
		pages = append(pages, page{id: id, rows: rows})
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out [][]string
	for _, p := range pages {
		if prefix, byGender := splitPageID(p.id); !byGender && gendered[prefix] {
			continue
		}
		out = append(out, p.rows...)
	}
	return out, nil
}

// splitPageID returns a snapshot id's last-name prefix and whether the
// page came from a gender-subdivided query.
func splitPageID(id string) (prefix string, byGender bool) {
	prefix, rest, _ := strings.Cut(id, "_")
	return prefix, strings.HasSuffix(rest, "_m") || strings.HasSuffix(rest, "_f")
}
