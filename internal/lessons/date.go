package lessons

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	idSeparator  = "-"
	bodyDateFmt  = "1/2/2006"
	maxYear      = 9999
	lessonIDSize = 3
)

// ParseDate parses a lesson id of the form YYYY-M-D into a UTC date.
// Ids that are not three numeric parts wrap ErrInvalidFormat, ids that do not
// name a real calendar day wrap ErrInvalidDate.
func ParseDate(lessonID string) (time.Time, error) {
	parts := strings.Split(lessonID, idSeparator)
	if len(parts) != lessonIDSize {
		return time.Time{}, fmt.Errorf("%w: %q has %d parts", ErrInvalidFormat, lessonID, len(parts))
	}

	var nums [lessonIDSize]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not a number", ErrInvalidFormat, p)
		}
		nums[i] = n
	}

	year, month, day := nums[0], nums[1], nums[2]
	if year < 1 || year > maxYear {
		return time.Time{}, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}

	// time.Date normalizes overflow (month 13, Feb 30), so compare back.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, lessonID)
	}

	return date, nil
}

func IsSunday(date time.Time) bool {
	return date.Weekday() == time.Sunday
}

// NewMessage builds the announcement for a lesson scheduled on date.
func NewMessage(lessonID string, date time.Time) Message {
	return Message{
		Title: Title,
		Body:  fmt.Sprintf("Lesson for %s is ready. Tap to study!", date.Format(bodyDateFmt)),
		Data: map[string]string{
			"click_action": ClickAction,
			"date":         lessonID,
		},
		Topic: Topic,
	}
}
