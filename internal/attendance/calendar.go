package attendance

import (
	"regexp"
	"strconv"
	"time"

	attendanceerrors "go-attend/internal/attendance/errors"
)

var monthParamPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// monthInfo hasil parse parameter bulan "YYYY-MM".
// monthIndex 0-based mengikuti kontrak API lama; start/end adalah batas bulan
// dalam UTC, end eksklusif.
type monthInfo struct {
	year       int
	monthIndex int
	start      time.Time
	end        time.Time
}

func parseMonthParam(s string) (monthInfo, error) {
	m := monthParamPattern.FindStringSubmatch(s)
	if m == nil {
		return monthInfo{}, attendanceerrors.ErrInvalidMonthFormat
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return monthInfo{}, attendanceerrors.ErrInvalidMonthFormat
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return monthInfo{
		year:       year,
		monthIndex: month - 1,
		start:      start,
		end:        start.AddDate(0, 1, 0),
	}, nil
}

func daysInMonth(year, monthIndex int) int {
	// Hari ke-0 bulan berikutnya = hari terakhir bulan ini
	return time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// weekBucket memetakan tanggal (1-based) ke salah satu dari empat bucket tetap:
// 1-7, 8-14, 15-21, 22-akhir bulan. Bucket terakhir bisa 7-10 hari.
func weekBucket(day int) int {
	switch {
	case day <= 7:
		return 0
	case day <= 14:
		return 1
	case day <= 21:
		return 2
	default:
		return 3
	}
}

// computeWorkingDaysByWeek menghitung jumlah hari kerja (Senin-Jumat) dalam
// satu bulan dan distribusinya per bucket minggu.
func computeWorkingDaysByWeek(year, monthIndex int) (totalWorkingDays int, workingDaysPerWeek [4]int) {
	lastDay := daysInMonth(year, monthIndex)

	for day := 1; day <= lastDay; day++ {
		date := time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, time.UTC)
		if isWeekend(date.Weekday()) {
			continue
		}
		workingDaysPerWeek[weekBucket(day)]++
		totalWorkingDays++
	}

	return totalWorkingDays, workingDaysPerWeek
}

// maxBackfillDay menentukan sampai tanggal berapa bulan target dianggap sudah
// lewat: seluruh bulan kalau bulan sudah berlalu, kemarin kalau bulan berjalan
// (hari ini tidak pernah di-backfill), nol kalau bulan masih di masa depan.
func maxBackfillDay(year, monthIndex int, now time.Time) int {
	nowYear, nowMonth, nowDay := now.Date()
	nowMonthIndex := int(nowMonth) - 1

	if year < nowYear || (year == nowYear && monthIndex < nowMonthIndex) {
		return daysInMonth(year, monthIndex)
	}
	if year == nowYear && monthIndex == nowMonthIndex {
		return nowDay - 1
	}
	return 0
}
