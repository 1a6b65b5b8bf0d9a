package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBlackoutRangeCovers(t *testing.T) {
	b := BlackoutRange{StartDate: date(2026, time.July, 10), EndDate: date(2026, time.July, 20)}

	assert.True(t, b.Covers(date(2026, time.July, 10)), "start boundary is covered")
	assert.True(t, b.Covers(date(2026, time.July, 20)), "end boundary is covered")
	assert.True(t, b.Covers(date(2026, time.July, 15)))
	assert.False(t, b.Covers(date(2026, time.July, 9)))
	assert.False(t, b.Covers(date(2026, time.July, 21)))
}

func TestDayOfWeekWeekday(t *testing.T) {
	wd, ok := DaySunday.Weekday()
	assert.True(t, ok)
	assert.Equal(t, time.Sunday, wd)

	wd, ok = DaySaturday.Weekday()
	assert.True(t, ok)
	assert.Equal(t, time.Saturday, wd)

	_, ok = DayMovable.Weekday()
	assert.False(t, ok, "movable templates have no fixed weekday")

	_, ok = DayOfWeek("NONSENSE").Weekday()
	assert.False(t, ok)
}
