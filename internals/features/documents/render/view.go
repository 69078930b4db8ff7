package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"schooldocs_backend/internals/features/documents/calc"
	"schooldocs_backend/internals/features/documents/drafts"
	"schooldocs_backend/internals/features/documents/labels"
)

// View is the layout-neutral content of one document copy.
type View struct {
	DocumentType string
	Heading      string
	Subheading   string
	Meta         []Pair
	Paragraphs   []string
	Bullets      []string
	Table        *Table
	Summary      []Pair
	Signature    string
	SignedBy     string
}

type Pair struct {
	Label  string
	Value  string
	Strong bool
}

type Table struct {
	Headers []string
	Rows    [][]string
	// Weights are relative column widths; Right marks numeric columns.
	Weights []float64
	Right   []bool
}

// BuildView maps a recomputed draft to printable content in lang.
func BuildView(d drafts.Draft, lang string) (View, error) {
	f := func(key string) string { return labels.Field(key, lang) }
	v := View{
		DocumentType: d.DocumentType(),
		Heading:      labels.Text(labels.KindHeading, d.DocumentType(), lang),
		Signature:    f("signature"),
	}

	switch doc := d.(type) {
	case *drafts.FeeReceipt:
		v.Meta = pairs(
			f("receipt_no"), doc.ReceiptNumber,
			f("date"), doc.Date,
			f("student_name"), doc.StudentName,
			f("class"), joinNonEmpty(" - ", doc.ClassName, doc.Section),
			f("roll"), doc.Roll,
			f("month"), doc.Month,
		)
		t := &Table{
			Headers: []string{"#", f("description"), f("amount")},
			Weights: []float64{1, 6, 3},
			Right:   []bool{false, false, true},
		}
		for i, it := range doc.Items {
			t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), it.Description, money(calc.ParseNumber(it.Amount))})
		}
		v.Table = t
		v.Summary = []Pair{
			{Label: f("subtotal"), Value: money(doc.Totals.Subtotal)},
			{Label: f("discount"), Value: money(doc.Totals.Deductions)},
			{Label: f("net"), Value: money(doc.Totals.Net), Strong: true},
		}
		v.SignedBy = doc.ReceivedBy

	case *drafts.Marksheet:
		v.Subheading = joinNonEmpty(" ", doc.ExamName, doc.Year)
		v.Meta = pairs(
			f("student_name"), doc.StudentName,
			f("roll"), doc.Roll,
			f("class"), joinNonEmpty(" - ", doc.ClassName, doc.Section),
		)
		t := &Table{
			Headers: []string{f("subject"), f("full_marks"), f("marks"), f("grade"), f("grade_point")},
			Weights: []float64{5, 2, 2, 2, 2},
			Right:   []bool{false, true, true, true, true},
		}
		for _, s := range doc.Subjects {
			full := s.FullMarks
			if strings.TrimSpace(full) == "" {
				full = "100"
			}
			t.Rows = append(t.Rows, []string{s.Name, full, num(calc.ParseNumber(s.Marks)), s.Grade, fmt.Sprintf("%.2f", s.GradePoint)})
		}
		v.Table = t
		v.Summary = []Pair{
			{Label: f("marks"), Value: num(doc.TotalMarks) + " / " + num(doc.TotalFullMarks)},
			{Label: f("gpa"), Value: fmt.Sprintf("%.2f", doc.GPA), Strong: true},
			{Label: f("grade"), Value: doc.LetterGrade, Strong: true},
		}

	case *drafts.Notice:
		v.Meta = pairs(
			f("notice_no"), doc.NoticeNumber,
			f("date"), doc.Date,
		)
		title := doc.Title
		if lang == drafts.LangBN && doc.TitleBn != "" {
			title = doc.TitleBn
		}
		v.Subheading = title
		for _, p := range strings.Split(doc.Body, "\n") {
			if p = strings.TrimSpace(p); p != "" {
				v.Paragraphs = append(v.Paragraphs, p)
			}
		}
		for _, p := range doc.Points {
			v.Bullets = append(v.Bullets, p.Text)
		}
		v.SignedBy = joinNonEmpty(", ", doc.IssuedBy, doc.Designation)

	case *drafts.PaySheet:
		v.Subheading = joinNonEmpty(" ", doc.Month, doc.Year)
		v.Meta = pairs(
			f("employee"), doc.EmployeeName,
			f("employee_id"), doc.EmployeeID,
			f("designation"), doc.Designation,
			f("date"), doc.PaymentDate,
		)
		t := &Table{
			Headers: []string{f("description"), f("earnings"), f("deductions")},
			Weights: []float64{6, 3, 3},
			Right:   []bool{false, true, true},
		}
		addRow := func(label, earn, ded string) {
			e, dd := calc.ParseNumber(earn), calc.ParseNumber(ded)
			if e == 0 && dd == 0 {
				return
			}
			t.Rows = append(t.Rows, []string{label, moneyOrBlank(e), moneyOrBlank(dd)})
		}
		addRow(f("basic_salary"), doc.BasicSalary, "")
		addRow(f("house_rent"), doc.HouseRent, "")
		addRow(f("medical_allowance"), doc.MedicalAllowance, "")
		addRow(f("transport_allowance"), doc.TransportAllowance, "")
		addRow(f("other_allowance"), doc.OtherAllowance, "")
		addRow(f("provident_fund"), "", doc.ProvidentFund)
		addRow(f("tax"), "", doc.Tax)
		addRow(f("advance"), "", doc.AdvanceDeduction)
		addRow(f("other_deduction"), "", doc.OtherDeduction)
		for _, a := range doc.Adjustments {
			if a.Kind == drafts.PayItemEarning {
				addRow(a.Description, a.Amount, "")
			} else {
				addRow(a.Description, "", a.Amount)
			}
		}
		v.Table = t
		v.Summary = []Pair{
			{Label: f("earnings"), Value: money(doc.Totals.Subtotal)},
			{Label: f("deductions"), Value: money(doc.Totals.Deductions)},
			{Label: f("net"), Value: money(doc.Totals.Net), Strong: true},
		}

	case *drafts.ResultSheet:
		v.Subheading = joinNonEmpty(" ", doc.ExamName, doc.Year)
		v.Meta = pairs(
			f("class"), joinNonEmpty(" - ", doc.ClassName, doc.Section),
			f("subject"), doc.Subject,
		)
		t := &Table{
			Headers: []string{f("roll"), f("name"), f("marks"), f("grade"), f("position")},
			Weights: []float64{2, 6, 2, 2, 2},
			Right:   []bool{false, false, true, true, true},
		}
		for _, s := range doc.ByRoll() {
			t.Rows = append(t.Rows, []string{s.Roll, s.Name, num(calc.ParseNumber(s.Marks)), s.Grade, strconv.Itoa(s.Position)})
		}
		v.Table = t
		st := doc.Statistics
		v.Summary = []Pair{
			{Label: f("total_students"), Value: strconv.Itoa(st.TotalStudents)},
			{Label: f("average"), Value: num(st.Average)},
			{Label: f("highest"), Value: num(st.Highest)},
			{Label: f("lowest"), Value: num(st.Lowest)},
			{Label: f("passed"), Value: strconv.Itoa(st.Passed)},
			{Label: f("failed"), Value: strconv.Itoa(st.Failed)},
			{Label: f("pass_rate"), Value: num(st.PassRate) + "%", Strong: true},
		}

	case *drafts.TeacherRoutine:
		v.Subheading = doc.AcademicYear
		v.Meta = pairs(
			f("teacher"), doc.TeacherName,
			f("designation"), doc.Designation,
		)
		t := &Table{
			Headers: []string{f("day"), f("time"), f("class"), f("subject"), f("room")},
			Weights: []float64{3, 3, 3, 4, 2},
			Right:   []bool{false, false, false, false, false},
		}
		for _, p := range doc.Schedule() {
			t.Rows = append(t.Rows, []string{
				labels.Text(labels.KindWeekday, p.Day, lang),
				p.StartTime.Short() + " - " + p.EndTime.Short(),
				joinNonEmpty(" - ", p.ClassName, p.Section),
				p.Subject,
				p.Room,
			})
		}
		v.Table = t
		v.Summary = []Pair{
			{Label: f("periods_per_week"), Value: strconv.Itoa(doc.TotalPeriods)},
			{Label: f("hours_per_week"), Value: num(float64(doc.WeeklyMinutes) / 60), Strong: true},
		}

	default:
		return View{}, ErrUnknownDocument
	}
	return v, nil
}

// pairs builds label/value pairs from alternating args, skipping empty values.
func pairs(kv ...string) []Pair {
	out := make([]Pair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if strings.TrimSpace(kv[i+1]) == "" {
			continue
		}
		out = append(out, Pair{Label: kv[i], Value: kv[i+1]})
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	keep := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keep = append(keep, p)
		}
	}
	return strings.Join(keep, sep)
}

func money(f float64) string { return calc.FormatAmount(f) }

func moneyOrBlank(f float64) string {
	if f == 0 {
		return ""
	}
	return money(f)
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
