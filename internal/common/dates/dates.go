package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

const displayLayout = "Jan 2, 2006"

// Форматы без часового пояса интерпретируются в переданной локации.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func Parse(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("пустая дата")
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc), nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("неподдерживаемый формат даты: %q", value)
}

// DaysUntil считает разницу в календарных днях между полуночами date и now
// в локации loc. Отрицательное значение означает, что дата уже прошла.
func DaysUntil(date, now time.Time, loc *time.Location) int {
	return int(calendarDay(date, loc).Sub(calendarDay(now, loc)).Hours() / 24)
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func StatusAt(now, start, end time.Time) models.HackathonStatus {
	switch {
	case now.Before(start):
		return models.StatusUpcoming
	case now.After(end):
		return models.StatusCompleted
	default:
		return models.StatusOngoing
	}
}

func StatusLabel(status models.HackathonStatus) string {
	s := string(status)
	if s == "" {
		return ""
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func Format(t time.Time) string {
	return t.Format(displayLayout)
}
