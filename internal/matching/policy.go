package matching

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// DurationPolicy returns the years of experience one resume entry contributes
type DurationPolicy func(entry types.ExperienceEntry) float64

// RelevancePolicy scores how relevant a resume's experience is to a job, in 0..1
type RelevancePolicy func(resume types.ParsedResume, job types.JobRequirements) float64

// placeholderYearsPerEntry is credited for every dated entry by PlaceholderDuration
const placeholderYearsPerEntry = 2.0

// placeholderRelevance is returned by PlaceholderRelevance when any experience exists
const placeholderRelevance = 0.7

// PlaceholderDuration credits a flat two years for every entry that has a
// start date and either an end date or is ongoing.
func PlaceholderDuration(entry types.ExperienceEntry) float64 {
	if entry.StartDate == "" {
		return 0
	}
	if entry.EndDate == "" && !entry.IsOngoing() {
		return 0
	}
	return placeholderYearsPerEntry
}

// PlaceholderRelevance returns 0.7 when the resume lists any experience, else 0.
func PlaceholderRelevance(resume types.ParsedResume, _ types.JobRequirements) float64 {
	if len(resume.Experience) == 0 {
		return 0
	}
	return placeholderRelevance
}

var (
	monthYearPattern = regexp.MustCompile(`(?i)^([a-z]+)\.?\s+(\d{4})$`)
	yearOnlyPattern  = regexp.MustCompile(`^(\d{4})$`)
)

var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// DateRangeDuration measures the calendar span of each entry. Ongoing entries
// run until now. Entries whose dates cannot be read contribute nothing.
func DateRangeDuration(now func() time.Time) DurationPolicy {
	return func(entry types.ExperienceEntry) float64 {
		start, ok := parseResumeDate(entry.StartDate)
		if !ok {
			return 0
		}
		end := now()
		if !entry.IsOngoing() {
			if end, ok = parseResumeDate(entry.EndDate); !ok {
				return 0
			}
		}
		if end.Before(start) {
			return 0
		}
		return end.Sub(start).Hours() / (24 * 365.25)
	}
}

// parseResumeDate reads "Jan 2020", "January 2020" or "2020"
func parseResumeDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if m := monthYearPattern.FindStringSubmatch(s); m != nil {
		name := strings.ToLower(m[1])
		if len(name) < 3 {
			return time.Time{}, false
		}
		month, ok := monthIndex[name[:3]]
		if !ok {
			return time.Time{}, false
		}
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	}
	if m := yearOnlyPattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
