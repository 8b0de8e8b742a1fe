package marathonguide

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func batchPage(names ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table border="1" cellspacing="0" cellpadding="3">` +
		"<tr><th>Last Name, First Name(Sex/Age)</th><th>Time</th><th>OverAll Place</th><th>Sex Place</th><th>DIV</th></tr>")
	for i, name := range names {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>2:%02d:00</td><td>%d</td><td>%d</td><td>M2529</td></tr>",
			name, 30+i, i+1, i+1)
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func TestExtractTablePerRace(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	put := func(collection, id, page string) {
		t.Helper()
		if _, err := store.Put(ctx, collection, id, "", []byte(page)); err != nil {
			t.Fatalf("Put(%s/%s) failed: %v", collection, id, err)
		}
	}
	put("guide700", "0000101", batchPage("Carl Davis (M44)"))
	put("guide700", "0000001", batchPage("Alice Adams (F30)", "Bob Brown (M25)"))
	put("guide800", "0000001", batchPage("Dana Evans (F38)"))

	races := []Race{
		{Marathon: "boston", Year: 2015, MIDD: 700},
		{Marathon: "chicago", Year: 2015, MIDD: 800},
		{Marathon: "ghost", Year: 2015, MIDD: 900},
	}
	tables, err := Extract(ctx, store, races)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("tables = %d, want 2 (race without snapshots skipped)", len(tables))
	}

	wantHeader := []string{
		"Last Name, First Name(Sex/Age)", "Time", "OverAll Place", "Sex Place", "DIV", "midd",
	}
	for _, table := range tables {
		if !reflect.DeepEqual(table.Header, wantHeader) {
			t.Errorf("%s header = %v, want %v", table.Race.Marathon, table.Header, wantHeader)
		}
	}
	if tables[0].Race.MIDD != 700 || tables[1].Race.MIDD != 800 {
		t.Fatalf("races = %d, %d, want 700, 800", tables[0].Race.MIDD, tables[1].Race.MIDD)
	}

	var got []string
	for _, table := range tables {
		for _, row := range table.Rows {
			got = append(got, row[0]+"/"+row[len(row)-1])
		}
	}
	want := []string{
		"Alice Adams (F30)/700",
		"Bob Brown (M25)/700",
		"Carl Davis (M44)/700",
		"Dana Evans (F38)/800",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestExtractNoPages(t *testing.T) {
	store := openTestStore(t)
	tables, err := Extract(context.Background(), store, []Race{{Marathon: "ghost", Year: 2015, MIDD: 1}})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if tables != nil {
		t.Errorf("Extract = %v, want no tables", tables)
	}
}
