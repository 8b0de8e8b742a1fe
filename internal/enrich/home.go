package enrich

// MiscName is the bucket rare home regions are folded into.
const MiscName = "MISC"

// MiscHome folds home regions carried by fewer than 0.1% of rows into
// MiscName so the category stays tractable as a modeling feature. It
// mutates rows in place and reports how many were folded.
func MiscHome(rows []Row) int {
	counts := make(map[string]int, 64)
	for i := range rows {
		counts[rows[i].Home]++
	}
	cutoff := len(rows) / 1000
	folded := 0
	for i := range rows {
		if counts[rows[i].Home] < cutoff {
			rows[i].Home = MiscName
			folded++
		}
	}
	return folded
}
