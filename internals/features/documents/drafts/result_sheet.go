package drafts

import (
	"sort"

	"schooldocs_backend/internals/features/documents/calc"
)

type ResultStudent struct {
	Key
	Roll  string `json:"roll" validate:"required,max=20"`
	Name  string `json:"name" validate:"required,max=120"`
	Marks string `json:"marks" validate:"max=10"`

	// computed
	Grade      string  `json:"grade"`
	GradePoint float64 `json:"gradePoint"`
	Position   int     `json:"position"`
}

type ResultSheet struct {
	ClassName string `json:"className" validate:"required,max=40"`
	Section   string `json:"section,omitempty" validate:"max=20"`
	ExamName  string `json:"examName" validate:"required,max=80"`
	Year      string `json:"year,omitempty" validate:"max=10"`
	Subject   string `json:"subject,omitempty" validate:"max=80"`

	Students Collection[ResultStudent, *ResultStudent] `json:"students" validate:"dive"`

	// computed
	Statistics calc.Statistics `json:"statistics"`
}

func (d *ResultSheet) DocumentType() string { return TypeResultSheet }

func (d *ResultSheet) FileName() string {
	return fileName("result-sheet", d.ClassName, d.Section, d.ExamName)
}

// Recompute ranks the students in place; an empty list gives zero statistics.
func (d *ResultSheet) Recompute() {
	in := make([]calc.StudentMark, len(d.Students))
	for i, s := range d.Students {
		in[i] = calc.StudentMark{Roll: s.Roll, Name: s.Name, Marks: s.Marks}
	}
	ranked := calc.RankInInputOrder(in)
	for i := range d.Students {
		d.Students[i].Grade = ranked[i].Grade.Letter
		d.Students[i].GradePoint = ranked[i].Grade.Point
		d.Students[i].Position = ranked[i].Position
	}
	d.Statistics = calc.Summarize(ranked)
}

// ByRoll returns the students in roll order for display.
func (d *ResultSheet) ByRoll() []ResultStudent {
	out := make([]ResultStudent, len(d.Students))
	copy(out, d.Students)
	sort.SliceStable(out, func(a, b int) bool {
		return calc.CompareRolls(out[a].Roll, out[b].Roll) < 0
	})
	return out
}

func (d *ResultSheet) Validate() error {
	ve := validateStruct(d)
	seen := map[string]struct{}{}
	for i, s := range d.Students {
		if m := calc.ParseNumber(s.Marks); m < 0 || m > 100 {
			ve.add(fieldPath("students", i, "marks"), "range")
		}
		if _, dup := seen[s.Roll]; dup && s.Roll != "" {
			ve.add(fieldPath("students", i, "roll"), "unique")
		}
		seen[s.Roll] = struct{}{}
	}
	return ve.orNil()
}

func (d *ResultSheet) list() listOps     { return &d.Students }
func (d *ResultSheet) listField() string { return "students" }
