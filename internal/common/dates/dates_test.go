package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-hackathon-tracker/internal/common/dates"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

func TestParse_SupportedLayouts(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339", "2026-10-15T09:30:00Z", time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)},
		{"rfc3339 с миллисекундами", "2026-10-15T09:30:00.123Z", time.Date(2026, 10, 15, 9, 30, 0, 123000000, time.UTC)},
		{"datetime-local", "2026-10-15T09:30", time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)},
		{"только дата", "2026-10-15", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dates.Parse(tt.value, loc)

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "ожидалось %s, получено %s", tt.want, got)
		})
	}
}

func TestParse_ZonelessUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	got, err := dates.Parse("2026-10-15T00:30", loc)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 14, 21, 30, 0, 0, time.UTC), got.UTC())
}

func TestParse_Invalid(t *testing.T) {
	_, err := dates.Parse("next friday", time.UTC)
	require.Error(t, err)

	_, err = dates.Parse("  ", time.UTC)
	require.Error(t, err)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, dates.DaysUntil(time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC), now, time.UTC))
	assert.Equal(t, 1, dates.DaysUntil(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), now, time.UTC))
	assert.Equal(t, 3, dates.DaysUntil(time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC), now, time.UTC))
	assert.Equal(t, -1, dates.DaysUntil(time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC), now, time.UTC))
}

func TestDaysUntil_AcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata недоступна")
	}

	now := time.Date(2026, 10, 24, 12, 0, 0, 0, loc)
	deadline := time.Date(2026, 10, 26, 12, 0, 0, 0, loc)

	assert.Equal(t, 2, dates.DaysUntil(deadline, now, loc))
}

func TestStatusAt(t *testing.T) {
	start := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, models.StatusUpcoming, dates.StatusAt(start.Add(-time.Second), start, end))
	assert.Equal(t, models.StatusOngoing, dates.StatusAt(start, start, end))
	assert.Equal(t, models.StatusOngoing, dates.StatusAt(end, start, end))
	assert.Equal(t, models.StatusCompleted, dates.StatusAt(end.Add(time.Second), start, end))
}

func TestStatusLabelAndFormat(t *testing.T) {
	assert.Equal(t, "Upcoming", dates.StatusLabel(models.StatusUpcoming))
	assert.Equal(t, "Completed", dates.StatusLabel(models.StatusCompleted))
	assert.Equal(t, "Oct 5, 2026", dates.Format(time.Date(2026, 10, 5, 10, 0, 0, 0, time.UTC)))
}
