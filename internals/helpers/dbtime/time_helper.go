// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"schooldocs_backend/internals/configs"
)

const (
	LocSchoolTimezone = "school_timezone" // string, e.g. "Asia/Dhaka"
	LocSchoolLoc      = "school_loc"      // *time.Location

	DefaultTimezone = "Asia/Dhaka"
)

var (
	defaultLoc     *time.Location
	defaultLocOnce sync.Once
)

// DefaultLocation: SCHOOL_TIMEZONE, then Asia/Dhaka, then UTC.
func DefaultLocation() *time.Location {
	defaultLocOnce.Do(func() {
		for _, name := range []string{configs.SchoolTimezone, DefaultTimezone} {
			if strings.TrimSpace(name) == "" {
				continue
			}
			if loc, err := time.LoadLocation(name); err == nil {
				defaultLoc = loc
				return
			}
		}
		defaultLoc = time.UTC
	})
	return defaultLoc
}

// GetSchoolLocation resolves the request timezone:
// 1) c.Locals("school_loc")
// 2) c.Locals("school_timezone") loaded by name
// 3) DefaultLocation
func GetSchoolLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return DefaultLocation()
	}
	if loc, ok := c.Locals(LocSchoolLoc).(*time.Location); ok && loc != nil {
		return loc
	}
	if s, ok := c.Locals(LocSchoolTimezone).(string); ok && strings.TrimSpace(s) != "" {
		if loc, err := time.LoadLocation(strings.TrimSpace(s)); err == nil {
			c.Locals(LocSchoolLoc, loc)
			return loc
		}
	}
	loc := DefaultLocation()
	c.Locals(LocSchoolLoc, loc)
	return loc
}

// ToSchoolTime converts t (UTC from the DB) into the school timezone.
// Zero values pass through.
func ToSchoolTime(c *fiber.Ctx, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(GetSchoolLocation(c))
}

func ToSchoolTimePtr(c *fiber.Ctx, t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToSchoolTime(c, *t)
	return &v
}

func NowInSchool(c *fiber.Ctx) time.Time {
	return time.Now().In(GetSchoolLocation(c))
}

// FormatDate renders a date the way printed documents show it (02/01/2006).
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(DefaultLocation()).Format("02/01/2006")
}
