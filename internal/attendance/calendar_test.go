package attendance

import (
	"testing"
	"time"

	attendanceerrors "go-attend/internal/attendance/errors"

	"github.com/stretchr/testify/assert"
)

func TestParseMonthParam(t *testing.T) {
	t.Run("valid month", func(t *testing.T) {
		info, err := parseMonthParam("2024-02")

		assert.NoError(t, err)
		assert.Equal(t, 2024, info.year)
		assert.Equal(t, 1, info.monthIndex)
		assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), info.start)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), info.end)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{"feb-2024", "2024-2", "2024/02", "202402", "", "2024-02-01"} {
			_, err := parseMonthParam(input)
			assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonthFormat, input)
		}
	})

	t.Run("rejects out of range month", func(t *testing.T) {
		_, err := parseMonthParam("2024-13")
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonthFormat)

		_, err = parseMonthParam("2024-00")
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonthFormat)
	})
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, daysInMonth(2024, 1)) // Feb kabisat
	assert.Equal(t, 28, daysInMonth(2023, 1))
	assert.Equal(t, 31, daysInMonth(2024, 0))
	assert.Equal(t, 30, daysInMonth(2024, 3))
	assert.Equal(t, 31, daysInMonth(2024, 11))
}

func TestComputeWorkingDaysByWeek(t *testing.T) {
	t.Run("february 2024", func(t *testing.T) {
		total, perWeek := computeWorkingDaysByWeek(2024, 1)

		assert.Equal(t, 21, total)
		assert.Equal(t, [4]int{5, 5, 5, 6}, perWeek)
	})

	t.Run("march 2024", func(t *testing.T) {
		total, perWeek := computeWorkingDaysByWeek(2024, 2)

		assert.Equal(t, 21, total)
		assert.Equal(t, [4]int{5, 5, 5, 6}, perWeek)
	})

	t.Run("buckets always sum to total", func(t *testing.T) {
		for month := 0; month < 12; month++ {
			total, perWeek := computeWorkingDaysByWeek(2024, month)
			assert.Equal(t, total, perWeek[0]+perWeek[1]+perWeek[2]+perWeek[3], "month %d", month)
		}
	})
}

func TestWeekBucket(t *testing.T) {
	assert.Equal(t, 0, weekBucket(1))
	assert.Equal(t, 0, weekBucket(7))
	assert.Equal(t, 1, weekBucket(8))
	assert.Equal(t, 1, weekBucket(14))
	assert.Equal(t, 2, weekBucket(15))
	assert.Equal(t, 2, weekBucket(21))
	assert.Equal(t, 3, weekBucket(22))
	assert.Equal(t, 3, weekBucket(31))
}

func TestMaxBackfillDay(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local)

	t.Run("past month covers whole month", func(t *testing.T) {
		assert.Equal(t, 29, maxBackfillDay(2024, 1, now))
		assert.Equal(t, 31, maxBackfillDay(2023, 11, now))
	})

	t.Run("current month stops at yesterday", func(t *testing.T) {
		assert.Equal(t, 14, maxBackfillDay(2024, 2, now))
	})

	t.Run("future month yields nothing", func(t *testing.T) {
		assert.Equal(t, 0, maxBackfillDay(2024, 3, now))
		assert.Equal(t, 0, maxBackfillDay(2025, 0, now))
	})

	t.Run("first of month backfills nothing yet", func(t *testing.T) {
		firstOfMonth := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.Local)
		assert.Equal(t, 0, maxBackfillDay(2024, 2, firstOfMonth))
	})
}
