package algo

import (
	"math"
	"testing"

	"github.com/schooltools/rankbook/schema"
)

// FuzzRankCohort fuzzes the ranking over random five-student cohorts and
// checks the positional invariants that hold for any input.
func FuzzRankCohort(f *testing.F) {
	seeds := []struct {
		a, b, c, d, e float64
		noDataMask    uint8
	}{
		{90, 85, 85, 70, 60, 0},
		{75, 75, 75, 75, 75, 0},
		{100, 0, 50.5, 99.999, 1, 0b00101},
		{0, 0, 0, 0, 0, 0b11111},
	}
	for _, s := range seeds {
		f.Add(s.a, s.b, s.c, s.d, s.e, s.noDataMask)
	}

	f.Fuzz(func(t *testing.T, a, b, c, d, e float64, noDataMask uint8) {
		averages := []float64{a, b, c, d, e}
		for _, avg := range averages {
			if math.IsNaN(avg) || math.IsInf(avg, 0) {
				t.Skip("averages are always finite upstream")
			}
		}
		results := make([]schema.StudentResult, len(averages))
		for i, avg := range averages {
			results[i] = schema.StudentResult{
				StudentID:    string(rune('A' + i)),
				AverageScore: avg,
				Status:       schema.StatusRanked,
			}
			if noDataMask&(1<<i) != 0 {
				results[i].AverageScore = 0
				results[i].Status = schema.StatusNoData
			}
		}

		ranked := RankCohort(results)
		if len(ranked) != len(results) {
			t.Fatalf("cohort size changed: got %d, want %d", len(ranked), len(results))
		}

		prevRank := 0
		inPool := true
		for i, r := range ranked {
			if r.TotalStudentsInClass != len(results) {
				t.Errorf("row %d: total %d, want %d", i, r.TotalStudentsInClass, len(results))
			}
			if r.Status == schema.StatusNoData {
				inPool = false
				if r.PositionInClass != 0 {
					t.Errorf("row %d: no-data row carries rank %d", i, r.PositionInClass)
				}
				continue
			}
			if !inPool {
				t.Fatalf("row %d: ranked row after the no-data tail", i)
			}

			// Ranks start dense at 1, never decrease, and after a tie the
			// next distinct average skips by the tie size; both cases mean
			// a new rank equals its row index plus one.
			if i == 0 && r.PositionInClass != 1 {
				t.Errorf("first ranked row has rank %d, want 1", r.PositionInClass)
			}
			if i > 0 && ranked[i-1].Status != schema.StatusNoData {
				switch {
				case r.AverageScore == ranked[i-1].AverageScore:
					if r.PositionInClass != prevRank {
						t.Errorf("row %d: tied average but rank %d != %d", i, r.PositionInClass, prevRank)
					}
				case r.AverageScore < ranked[i-1].AverageScore:
					if r.PositionInClass != i+1 {
						t.Errorf("row %d: rank %d after tie break, want %d", i, r.PositionInClass, i+1)
					}
				default:
					t.Errorf("row %d: averages not sorted descending", i)
				}
			}
			prevRank = r.PositionInClass
		}
	})
}
