package calc

import "math"

type Grade struct {
	Letter string  `json:"letter"`
	Point  float64 `json:"point"`
}

const (
	GradeAPlus  = "A+"
	GradeA      = "A"
	GradeAMinus = "A-"
	GradeB      = "B"
	GradeC      = "C"
	GradeD      = "D"
	GradeF      = "F"

	PassMark = 33.0
)

// descending lower bounds; the last band catches everything else.
var gradeBands = []struct {
	min   float64
	grade Grade
}{
	{80, Grade{GradeAPlus, 5.00}},
	{70, Grade{GradeA, 4.00}},
	{60, Grade{GradeAMinus, 3.50}},
	{50, Grade{GradeB, 3.00}},
	{40, Grade{GradeC, 2.00}},
	{33, Grade{GradeD, 1.00}},
}

var gradeFail = Grade{GradeF, 0.00}

// GradeFor maps a percentage to its band. Defined for every float; NaN is F.
func GradeFor(marks float64) Grade {
	for _, b := range gradeBands {
		if marks >= b.min {
			return b.grade
		}
	}
	return gradeFail
}

func (g Grade) Passed() bool { return g.Letter != GradeF }

// Percentage scales obtained/full to 0..100. full <= 0 is treated as 100.
func Percentage(obtained, full float64) float64 {
	if full <= 0 || full == 100 {
		return obtained
	}
	return obtained / full * 100
}

// GPA is the mean grade point, rounded to two decimals; any F makes it 0.
func GPA(grades []Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	total := 0.0
	for _, g := range grades {
		if !g.Passed() {
			return 0
		}
		total += g.Point
	}
	return math.Round(total/float64(len(grades))*100) / 100
}

// LetterForGPA converts a GPA back to its letter using the point table.
func LetterForGPA(gpa float64) string {
	for _, b := range gradeBands {
		if gpa >= b.grade.Point {
			return b.grade.Letter
		}
	}
	return GradeF
}
