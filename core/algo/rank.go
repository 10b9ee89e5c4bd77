// Package algo holds the ranking primitives of the engine.
package algo

import (
	"sort"

	"github.com/schooltools/rankbook/schema"
)

// RankCohort assigns class positions to a cohort of student results
// using competition ranking: tied averages share one rank and the rank
// after a k-way tie skips by k (1,2,2,4). Average score is the sole
// comparison key; there is deliberately no secondary tie-break.
//
// No-Data results are excluded from the ranking pool but still count
// toward TotalStudentsInClass, so a "3rd of 40" figure reflects true
// class size. They are returned at the tail of the slice with position
// zero.
func RankCohort(results []schema.StudentResult) []schema.StudentResult {
	total := len(results)

	pool := make([]schema.StudentResult, 0, total)
	noData := make([]schema.StudentResult, 0)
	for _, r := range results {
		if r.Status == schema.StatusNoData {
			noData = append(noData, r)
		} else {
			pool = append(pool, r)
		}
	}

	// Presentation order within a tie group is by student id; this does
	// not influence the assigned rank, which depends only on the score.
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].AverageScore != pool[j].AverageScore {
			return pool[i].AverageScore > pool[j].AverageScore
		}
		return pool[i].StudentID < pool[j].StudentID
	})
	sort.Slice(noData, func(i, j int) bool {
		return noData[i].StudentID < noData[j].StudentID
	})

	rank := 0
	for i := range pool {
		if i == 0 || pool[i].AverageScore != pool[i-1].AverageScore {
			rank = i + 1
		}
		pool[i].PositionInClass = rank
		pool[i].TotalStudentsInClass = total
	}
	for i := range noData {
		noData[i].PositionInClass = 0
		noData[i].TotalStudentsInClass = total
	}

	return append(pool, noData...)
}
