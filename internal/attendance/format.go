package attendance

import (
	"strings"
	"time"
)

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

const missingImagePlaceholder = "—"

// URLResolver menghasilkan URL publik untuk path foto yang tersimpan.
type URLResolver interface {
	URLFor(path string) string
}

// formatDays memetakan record hasil rekonsiliasi menjadi entri harian siap
// tampil. Tanggal diturunkan dalam local time supaya cocok dengan hari
// wall-clock saat check-in, bukan UTC.
func formatDays(records []AttendanceRecord, resolver URLResolver) []DayEntry {
	days := make([]DayEntry, 0, len(records))
	for i := range records {
		rec := &records[i]
		d := rec.EffectiveDate().In(time.Local)

		entry := DayEntry{
			Date:       d.Format(dateKeyLayout),
			Weekday:    weekdayLabels[int(d.Weekday())],
			Status:     statusLabel(rec.Status),
			ImageLabel: missingImagePlaceholder,
		}

		if rec.CheckIn != nil {
			v := rec.CheckIn.UTC().Format(time.RFC3339)
			entry.CheckIn = &v
		}
		if rec.CheckOut != nil {
			v := rec.CheckOut.UTC().Format(time.RFC3339)
			entry.CheckOut = &v
		}

		// Label lokasi berlaku untuk kedua slot sekaligus; lokasi hanya
		// direkam saat check-in.
		if rec.HasLocation() {
			office := "Office"
			entry.CheckInLocation = &office
			entry.CheckOutLocation = &office
		}

		if rec.Image != nil && *rec.Image != "" && resolver != nil {
			entry.ImageLabel = resolver.URLFor(*rec.Image)
		}

		if rec.UserAgent != nil {
			if fields := strings.Fields(*rec.UserAgent); len(fields) > 0 {
				entry.Device = &fields[0]
			}
		}

		days = append(days, entry)
	}
	return days
}

func statusLabel(status string) string {
	switch status {
	case StatusPresent:
		return "Present"
	case StatusLate:
		return "Late"
	case StatusAbsent, StatusDiscordAbsent:
		return "Absent"
	default:
		return "Unknown"
	}
}
