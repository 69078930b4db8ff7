package drafts

import (
	"sort"
	"strings"

	"schooldocs_backend/internals/helpers/dbtime"
)

// Weekdays in school-week order (Saturday first).
var Weekdays = []string{"saturday", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday"}

func weekdayIndex(day string) int {
	day = strings.ToLower(strings.TrimSpace(day))
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

type Period struct {
	Key
	Day       string     `json:"day" validate:"required"`
	StartTime dbtime.Tod `json:"startTime"`
	EndTime   dbtime.Tod `json:"endTime"`
	ClassName string     `json:"className" validate:"required,max=40"`
	Section   string     `json:"section,omitempty" validate:"max=20"`
	Subject   string     `json:"subject" validate:"required,max=80"`
	Room      string     `json:"room,omitempty" validate:"max=20"`
}

func (p Period) Minutes() int { return p.EndTime.Minutes() - p.StartTime.Minutes() }

type TeacherRoutine struct {
	TeacherName   string `json:"teacherName" validate:"required,max=120"`
	Designation   string `json:"designation,omitempty" validate:"max=80"`
	Department    string `json:"department,omitempty" validate:"max=80"`
	AcademicYear  string `json:"academicYear,omitempty" validate:"max=20"`
	EffectiveFrom string `json:"effectiveFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`

	Periods Collection[Period, *Period] `json:"periods" validate:"dive"`

	// computed
	TotalPeriods  int            `json:"totalPeriods"`
	WeeklyMinutes int            `json:"weeklyMinutes"`
	PeriodsPerDay map[string]int `json:"periodsPerDay"`
}

func (d *TeacherRoutine) DocumentType() string { return TypeTeacherRoutine }

func (d *TeacherRoutine) FileName() string { return fileName("teacher-routine", d.TeacherName) }

func (d *TeacherRoutine) Recompute() {
	d.TotalPeriods = len(d.Periods)
	d.WeeklyMinutes = 0
	d.PeriodsPerDay = map[string]int{}
	for i := range d.Periods {
		p := &d.Periods[i]
		p.Day = strings.ToLower(strings.TrimSpace(p.Day))
		if m := p.Minutes(); m > 0 {
			d.WeeklyMinutes += m
		}
		d.PeriodsPerDay[p.Day]++
	}
}

// Schedule returns the periods ordered by weekday, then start time.
func (d *TeacherRoutine) Schedule() []Period {
	out := make([]Period, len(d.Periods))
	copy(out, d.Periods)
	sort.SliceStable(out, func(a, b int) bool {
		da, db := weekdayIndex(out[a].Day), weekdayIndex(out[b].Day)
		if da != db {
			return da < db
		}
		return out[a].StartTime.Before(out[b].StartTime)
	})
	return out
}

// Validate also rejects periods that end before they start and periods
// overlapping on the same day.
func (d *TeacherRoutine) Validate() error {
	ve := validateStruct(d)
	for i, p := range d.Periods {
		if weekdayIndex(p.Day) < 0 {
			ve.add(fieldPath("periods", i, "day"), "weekday")
		}
		if !p.StartTime.Before(p.EndTime) {
			ve.add(fieldPath("periods", i, "endTime"), "gtfield=startTime")
		}
	}

	pos := make(map[string]int, len(d.Periods))
	for i, p := range d.Periods {
		pos[p.ID] = i
	}
	day, latestEnd := "", 0
	for _, cur := range d.Schedule() {
		if cur.Day != day {
			day, latestEnd = cur.Day, cur.EndTime.Minutes()
			continue
		}
		if cur.StartTime.Minutes() < latestEnd {
			ve.add(fieldPath("periods", pos[cur.ID], "startTime"), "overlap")
		}
		if end := cur.EndTime.Minutes(); end > latestEnd {
			latestEnd = end
		}
	}
	return ve.orNil()
}

func (d *TeacherRoutine) list() listOps     { return &d.Periods }
func (d *TeacherRoutine) listField() string { return "periods" }
