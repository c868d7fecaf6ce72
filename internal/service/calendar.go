package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/central-university-dev/go-hackathon-tracker/internal/common/dates"
	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

const (
	calendarBaseURL  = "https://calendar.google.com/calendar/render"
	calendarLayout   = "20060102T150405Z"
	reminderLeadDays = 3
)

type CalendarLinks struct {
	EventURL    string `json:"eventUrl"`
	ReminderURL string `json:"reminderUrl"`
}

// Calendar строит ссылки Google Calendar: само событие хакатона и
// отсчёт последних трёх дней до дедлайна.
func (s *HackathonService) Calendar(ctx context.Context, id string) (*CalendarLinks, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	start, err := s.parseField("startDate", h.StartDate)
	if err != nil {
		return nil, err
	}

	end, err := s.parseField("endDate", h.EndDate)
	if err != nil {
		return nil, err
	}

	deadline, err := s.parseField("deadline", h.Deadline)
	if err != nil {
		return nil, err
	}

	return &CalendarLinks{
		EventURL:    EventURL(*h, start, end),
		ReminderURL: ReminderURL(*h, deadline),
	}, nil
}

func (s *HackathonService) parseField(field, value string) (time.Time, error) {
	t, err := dates.Parse(value, s.location)
	if err != nil {
		return time.Time{}, &domainerrors.ErrInvalidValue{FieldName: field, Value: value}
	}

	return t, nil
}

func EventURL(h models.Hackathon, start, end time.Time) string {
	details := make([]string, 0, 2)

	if h.Description != "" {
		details = append(details, h.Description)
	}

	details = append(details, "Hackathon: "+h.Link)

	return calendarURL(h.Name, start, end, strings.Join(details, "\n"))
}

func ReminderURL(h models.Hackathon, deadline time.Time) string {
	details := strings.Join([]string{
		"⚠️ DEADLINE: " + dates.Format(deadline),
		"",
		h.Description,
		"",
		"Link: " + h.Link,
	}, "\n")

	return calendarURL(fmt.Sprintf("⏰ %s — Deadline Countdown", h.Name), deadline.AddDate(0, 0, -reminderLeadDays), deadline, details)
}

func calendarURL(title string, start, end time.Time, details string) string {
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", title)
	params.Set("dates", start.UTC().Format(calendarLayout)+"/"+end.UTC().Format(calendarLayout))
	params.Set("details", details)
	params.Set("sf", "true")

	return calendarBaseURL + "?" + params.Encode()
}
