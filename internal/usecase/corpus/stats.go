package corpus

import (
	"sort"

	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
)

// maxTopSupervisors caps the supervisor leaderboard length.
const maxTopSupervisors = 10

// Stats are the dashboard aggregates over one corpus.
type Stats struct {
	TotalTitles         int
	DistinctSupervisors int
	ByProgram           map[string]int
	ByYear              map[string]int
	TopSupervisors      []SupervisorCount
}

// SupervisorCount is one leaderboard row.
type SupervisorCount struct {
	Supervisor string
	Count      int
}

// computeStats aggregates over the corpus metadata. Entries without a given
// metadata field are skipped for that aggregate only.
func computeStats(c *domcorpus.Corpus) Stats {
	titles := c.Titles()
	st := Stats{
		TotalTitles: len(titles),
		ByProgram:   make(map[string]int),
		ByYear:      make(map[string]int),
	}

	bySupervisor := make(map[string]int)
	for i := range titles {
		meta := titles[i].Metadata()
		if p := meta["program"]; p != "" {
			st.ByProgram[p]++
		}
		if y := meta["year"]; y != "" {
			st.ByYear[y]++
		}
		if sv := meta["supervisor"]; sv != "" {
			bySupervisor[sv]++
		}
	}

	st.DistinctSupervisors = len(bySupervisor)
	st.TopSupervisors = topSupervisors(bySupervisor)
	return st
}

// topSupervisors sorts by count descending, name ascending on ties, and
// truncates to the leaderboard cap.
func topSupervisors(counts map[string]int) []SupervisorCount {
	rows := make([]SupervisorCount, 0, len(counts))
	for name, n := range counts {
		rows = append(rows, SupervisorCount{Supervisor: name, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Supervisor < rows[j].Supervisor
	})
	if len(rows) > maxTopSupervisors {
		rows = rows[:maxTopSupervisors]
	}
	return rows
}
