package baa

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseResults extracts runner rows from a 2010+ results page. Each
// runner spans two table rows: a tr_header row with bib, name, age,
// gender, city, state, country, citizenship, and subgroup, and a detail
// row with splits, pace, projected and official times, and ranks. The
// detail-page link found in the header row is kept as a column between
// the two, giving the 25-column raw layout.
func ParseResults(r io.Reader) ([][]string, error) {
	return parseRunnerRows(r, true)
}

// ParseArchive extracts runner rows from a 2001-2009 archive page:
// year, bib, name, age, gender, city, state, country, and subgroup from
// the header row, ranks and times from the detail row. 14 columns, no
// detail link.
func ParseArchive(r io.Reader) ([][]string, error) {
	return parseRunnerRows(r, false)
}

func parseRunnerRows(r io.Reader, withURL bool) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var rows [][]string
	var runner []string
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("tr_header") {
			runner = nil
			url := ""
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				runner = append(runner, strings.TrimSpace(td.Text()))
				if withURL {
					if href, ok := td.Find("a").Attr("href"); ok {
						url = href
					}
				}
			})
			if withURL {
				runner = append(runner, url)
			}
			return
		}
		if runner == nil {
			return
		}
		// The detail row's first cell is a spacer; at most 15 data
		// cells follow.
		cells := tr.Find("td")
		row := runner
		for i := 1; i < cells.Length() && i < 16; i++ {
			row = append(row, strings.TrimSpace(cells.Eq(i).Text()))
		}
		rows = append(rows, row)
		runner = nil
	})
	return rows, nil
}

// pageInfo reports how many runners a results page lists and whether the
// control leading to the next page is present.
func pageInfo(body []byte) (runners int, hasNext bool, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return 0, false, fmt.Errorf("parsing HTML: %w", err)
	}
	runners = doc.Find("tr.tr_header").Length()
	doc.Find(`input[name='next']`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if v, ok := sel.Attr("value"); ok && v == nextLabel {
			hasNext = true
			return false
		}
		return true
	})
	return runners, hasNext, nil
}
