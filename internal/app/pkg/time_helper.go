package pkg

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date string in "YYYY-MM-DD" format.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(dateLayout, dateStr)
}

// Today truncates now to midnight UTC so calendar comparisons ignore the
// time of day.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
