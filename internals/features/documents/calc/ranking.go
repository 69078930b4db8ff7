package calc

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

type StudentMark struct {
	Roll  string `json:"roll"`
	Name  string `json:"name"`
	Marks string `json:"marks"`
}

type RankedStudent struct {
	Roll     string  `json:"roll"`
	Name     string  `json:"name"`
	Marks    float64 `json:"marks"`
	Grade    Grade   `json:"grade"`
	Position int     `json:"position"`
}

type indexedStudent struct {
	RankedStudent
	idx int
}

func rank(students []StudentMark) []indexedStudent {
	rows := make([]indexedStudent, len(students))
	for i, s := range students {
		m := ParseNumber(s.Marks)
		if math.IsNaN(m) || math.IsInf(m, 0) {
			m = 0
		}
		rows[i] = indexedStudent{
			RankedStudent: RankedStudent{
				Roll:  strings.TrimSpace(s.Roll),
				Name:  strings.TrimSpace(s.Name),
				Marks: m,
				Grade: GradeFor(m),
			},
			idx: i,
		}
	}

	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Marks > rows[b].Marks })
	for i := range rows {
		if i > 0 && rows[i].Marks == rows[i-1].Marks {
			rows[i].Position = rows[i-1].Position
			continue
		}
		rows[i].Position = i + 1
	}
	return rows
}

// RankStudents assigns competition ranks with gaps (85,85,70 → 1,1,3) and
// returns the students in roll order. Empty input yields an empty slice.
func RankStudents(students []StudentMark) []RankedStudent {
	rows := rank(students)
	sort.SliceStable(rows, func(a, b int) bool {
		if c := CompareRolls(rows[a].Roll, rows[b].Roll); c != 0 {
			return c < 0
		}
		return rows[a].idx < rows[b].idx
	})
	out := make([]RankedStudent, len(rows))
	for i, r := range rows {
		out[i] = r.RankedStudent
	}
	return out
}

// RankInInputOrder is RankStudents aligned with the input slice.
func RankInInputOrder(students []StudentMark) []RankedStudent {
	out := make([]RankedStudent, len(students))
	for _, r := range rank(students) {
		out[r.idx] = r.RankedStudent
	}
	return out
}

// CompareRolls orders rolls numerically when both parse, lexically otherwise.
func CompareRolls(a, b string) int {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// AsMarks converts ranked rows back into input rows.
func AsMarks(ranked []RankedStudent) []StudentMark {
	out := make([]StudentMark, len(ranked))
	for i, r := range ranked {
		out[i] = StudentMark{
			Roll:  r.Roll,
			Name:  r.Name,
			Marks: strconv.FormatFloat(r.Marks, 'f', -1, 64),
		}
	}
	return out
}

type Statistics struct {
	TotalStudents int     `json:"totalStudents"`
	Average       float64 `json:"average"`
	Highest       float64 `json:"highest"`
	Lowest        float64 `json:"lowest"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	PassRate      float64 `json:"passRate"`
}

// Summarize returns zero statistics for an empty list.
func Summarize(ranked []RankedStudent) Statistics {
	if len(ranked) == 0 {
		return Statistics{}
	}
	st := Statistics{
		TotalStudents: len(ranked),
		Highest:       ranked[0].Marks,
		Lowest:        ranked[0].Marks,
	}
	total := 0.0
	for _, r := range ranked {
		total += r.Marks
		st.Highest = math.Max(st.Highest, r.Marks)
		st.Lowest = math.Min(st.Lowest, r.Marks)
		if r.Grade.Passed() {
			st.Passed++
		} else {
			st.Failed++
		}
	}
	n := float64(len(ranked))
	st.Average = round2(total / n)
	st.PassRate = round2(float64(st.Passed) / n * 100)
	return st
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
