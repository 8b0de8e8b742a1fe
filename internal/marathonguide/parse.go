package marathonguide

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseMIDDs returns the race ids linked from a browse page, in document
// order. Duplicates stay; the crawl's visited set handles them.
func parseMIDDs(doc *goquery.Document) []int {
	var midds []int
	doc.Find(`a[href*="browse.cfm?MIDD="]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		_, raw, found := strings.Cut(href, "MIDD=")
		if !found {
			return
		}
		if amp := strings.IndexByte(raw, '&'); amp >= 0 {
			raw = raw[:amp]
		}
		midd, err := strconv.Atoi(raw)
		if err != nil {
			return
		}
		midds = append(midds, midd)
	})
	return midds
}

// raceInfo is the title block on a race's browse page.
type raceInfo struct {
	name string
	city string
	date string
}

// parseRaceInfo reads the name, city, and date fields from the orange
// title box. Index pages and championship hubs carry fewer fields.
func parseRaceInfo(doc *goquery.Document) (raceInfo, error) {
	items := doc.Find(".BoxTitleOrange b")
	if items.Length() < 3 {
		return raceInfo{}, fmt.Errorf("title box has %d fields, want 3", items.Length())
	}
	return raceInfo{
		name: strings.TrimSpace(items.Eq(0).Text()),
		city: strings.TrimSpace(items.Eq(1).Text()),
		date: strings.TrimSpace(items.Eq(2).Text()),
	}, nil
}

// findRaceRanges lists the result batches offered on a race's browse
// page. A value looks like "B,1,100,5845": a B marker, the batch's first
// and last row, and the race's total row count.
func findRaceRanges(doc *goquery.Document) []string {
	var ranges []string
	doc.Find(`select[name="RaceRange"] option`).Each(func(_ int, opt *goquery.Selection) {
		v, ok := opt.Attr("value")
		if ok && strings.HasPrefix(v, "B") {
			ranges = append(ranges, v)
		}
	})
	return ranges
}

// batchStart reads the first-row number out of a range value.
func batchStart(rr string) (int, error) {
	fields := strings.Split(rr, ",")
	if len(fields) < 4 {
		return 0, fmt.Errorf("unexpected race range %q", rr)
	}
	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("unexpected race range %q", rr)
	}
	return start, nil
}

// ParseResults reads one snapshotted batch page. It returns the site's
// column header and one raw row per result line; rows with fewer than
// five cells are layout, not results.
func ParseResults(r io.Reader) ([]string, [][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing results page: %w", err)
	}
	table := doc.Find(`table[border="1"][cellspacing="0"][cellpadding="3"]`).First()
	if table.Length() == 0 {
		return nil, nil, fmt.Errorf("no results table on page")
	}
	var header []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		header = append(header, strings.TrimSpace(th.Text()))
	})
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 5 {
			return
		}
		row := make([]string, cells.Length())
		cells.Each(func(i int, td *goquery.Selection) {
			row[i] = strings.TrimSpace(td.Text())
		})
		rows = append(rows, row)
	})
	return header, rows, nil
}
