package standings

import "sort"

// LeaguePoints is the value an entry is ranked by under the given scoring mode.
// A head-to-head entry without h2h info ranks with zero points.
func LeaguePoints(entry Entry, scoring Scoring) int {
	if scoring.IsH2H() {
		if entry.H2HInfo == nil {
			return 0
		}
		return entry.H2HInfo.Points
	}
	return entry.TotalPoints
}

// Rank orders entries descending by league points, in place.
// Ties keep their input order; running it twice yields the same order.
func Rank(table *Table) {
	if table == nil || len(table.Entries) < 2 {
		return
	}
	scoring := table.Scoring
	sort.SliceStable(table.Entries, func(i, j int) bool {
		return LeaguePoints(table.Entries[i], scoring) > LeaguePoints(table.Entries[j], scoring)
	})
}
