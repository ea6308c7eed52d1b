package attendance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type staticResolver struct{}

func (staticResolver) URLFor(path string) string {
	return "https://cdn.example.com/file/attendance-photos/" + path
}

func TestFormatDays(t *testing.T) {
	userID := uuid.New()

	t.Run("full check-in record", func(t *testing.T) {
		rec := recordWithCheckIn(userID, localDay(2024, time.February, 5, 9), StatusPresent)
		out := localDay(2024, time.February, 5, 17)
		rec.CheckOut = &out
		lng, lat := 71.45657513924102, 33.97331944724137
		rec.Longitude = &lng
		rec.Latitude = &lat
		image := "attendance/1707123456789_user.jpeg"
		rec.Image = &image
		ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
		rec.UserAgent = &ua

		days := formatDays([]AttendanceRecord{rec}, staticResolver{})

		assert.Len(t, days, 1)
		day := days[0]
		assert.Equal(t, "2024-02-05", day.Date)
		assert.Equal(t, "Mon", day.Weekday)
		assert.Equal(t, "Present", day.Status)
		assert.NotNil(t, day.CheckIn)
		assert.NotNil(t, day.CheckOut)
		assert.Equal(t, "Office", *day.CheckInLocation)
		assert.Equal(t, "Office", *day.CheckOutLocation)
		assert.Equal(t, "https://cdn.example.com/file/attendance-photos/attendance/1707123456789_user.jpeg", day.ImageLabel)
		assert.Equal(t, "Mozilla/5.0", *day.Device)
	})

	t.Run("synthetic absent record", func(t *testing.T) {
		rec := AttendanceRecord{
			ID:        uuid.New(),
			UserID:    userID,
			Status:    StatusAbsent,
			CreatedAt: localDay(2024, time.February, 6, 0),
		}

		days := formatDays([]AttendanceRecord{rec}, staticResolver{})

		day := days[0]
		assert.Equal(t, "2024-02-06", day.Date)
		assert.Equal(t, "Tue", day.Weekday)
		assert.Equal(t, "Absent", day.Status)
		assert.Nil(t, day.CheckIn)
		assert.Nil(t, day.CheckOut)
		assert.Nil(t, day.CheckInLocation)
		assert.Nil(t, day.CheckOutLocation)
		assert.Equal(t, missingImagePlaceholder, day.ImageLabel)
		assert.Nil(t, day.Device)
	})

	t.Run("discord absent shares the absent label", func(t *testing.T) {
		rec := AttendanceRecord{
			ID:        uuid.New(),
			UserID:    userID,
			Status:    StatusDiscordAbsent,
			CreatedAt: localDay(2024, time.February, 7, 0),
		}

		days := formatDays([]AttendanceRecord{rec}, staticResolver{})
		assert.Equal(t, "Absent", days[0].Status)
	})

	t.Run("nil resolver keeps placeholder", func(t *testing.T) {
		rec := recordWithCheckIn(userID, localDay(2024, time.February, 5, 9), StatusPresent)
		image := "attendance/x.jpeg"
		rec.Image = &image

		days := formatDays([]AttendanceRecord{rec}, nil)
		assert.Equal(t, missingImagePlaceholder, days[0].ImageLabel)
	})
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Present", statusLabel(StatusPresent))
	assert.Equal(t, "Late", statusLabel(StatusLate))
	assert.Equal(t, "Absent", statusLabel(StatusAbsent))
	assert.Equal(t, "Absent", statusLabel(StatusDiscordAbsent))
	assert.Equal(t, "Unknown", statusLabel("holiday"))
}
