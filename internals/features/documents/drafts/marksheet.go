package drafts

import "schooldocs_backend/internals/features/documents/calc"

type Subject struct {
	Key
	Name      string `json:"name" validate:"required,max=80"`
	FullMarks string `json:"fullMarks,omitempty" validate:"max=10"`
	Marks     string `json:"marks" validate:"max=10"`

	// computed
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
	GradePoint float64 `json:"gradePoint"`
}

type Marksheet struct {
	StudentName string `json:"studentName" validate:"required,max=120"`
	FatherName  string `json:"fatherName,omitempty" validate:"max=120"`
	MotherName  string `json:"motherName,omitempty" validate:"max=120"`
	Roll        string `json:"roll" validate:"required,max=20"`
	ClassName   string `json:"className" validate:"required,max=40"`
	Section     string `json:"section,omitempty" validate:"max=20"`
	ExamName    string `json:"examName" validate:"required,max=80"`
	Year        string `json:"year,omitempty" validate:"max=10"`

	Subjects Collection[Subject, *Subject] `json:"subjects" validate:"required,min=1,dive"`

	// computed
	TotalFullMarks float64 `json:"totalFullMarks"`
	TotalMarks     float64 `json:"totalMarks"`
	GPA            float64 `json:"gpa"`
	LetterGrade    string  `json:"letterGrade"`
	Passed         bool    `json:"passed"`
}

func (d *Marksheet) DocumentType() string { return TypeMarksheet }

func (d *Marksheet) FileName() string { return fileName("marksheet", d.Roll, d.StudentName) }

func (d *Marksheet) Recompute() {
	grades := make([]calc.Grade, 0, len(d.Subjects))
	d.TotalFullMarks, d.TotalMarks = 0, 0
	for i := range d.Subjects {
		s := &d.Subjects[i]
		full := calc.ParseNumber(s.FullMarks)
		if full <= 0 {
			full = 100
		}
		obtained := calc.ParseNumber(s.Marks)
		s.Percentage = calc.Percentage(obtained, full)
		g := calc.GradeFor(s.Percentage)
		s.Grade, s.GradePoint = g.Letter, g.Point
		grades = append(grades, g)
		d.TotalFullMarks += full
		d.TotalMarks += obtained
	}
	d.GPA = calc.GPA(grades)
	d.Passed = len(grades) > 0 && d.GPA > 0
	d.LetterGrade = calc.GradeF
	if d.Passed {
		d.LetterGrade = calc.LetterForGPA(d.GPA)
	}
}

func (d *Marksheet) Validate() error {
	ve := validateStruct(d)
	for i, s := range d.Subjects {
		full := calc.ParseNumber(s.FullMarks)
		if full <= 0 {
			full = 100
		}
		if m := calc.ParseNumber(s.Marks); m < 0 || m > full {
			ve.add(fieldPath("subjects", i, "marks"), "range")
		}
	}
	return ve.orNil()
}

func (d *Marksheet) list() listOps     { return &d.Subjects }
func (d *Marksheet) listField() string { return "subjects" }
