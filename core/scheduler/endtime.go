package scheduler

import "github.com/kilianp07/sectionplanner/core/model"

// OfficialEndTime returns the end time of one component's meeting using
// weeks x daysCount meeting days, for summary lists that have no calendar.
// It shares dailyContactHours and Metrics with Generate, so for full-term
// sessions counted with IGNORE_HOLIDAYS both agree on the end time.
// An empty string is returned when units, daysCount or weeks is zero.
func OfficialEndTime(units float64, daysCount int, startTime string, weeks int, c model.Component) (string, error) {
	if units == 0 || daysCount == 0 || weeks == 0 {
		return "", nil
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return "", err
	}
	_, perDay := dailyContactHours(units*Rate(c), weeks*daysCount)
	return FormatClock(start + Metrics(perDay).TotalClockMinutes), nil
}
