package attendance

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

const dateKeyLayout = "2006-01-02"

// displayDateLayout meniru format en-GB (dd/mm/yyyy) yang dipakai frontend.
const displayDateLayout = "02/01/2006"

// existingDayKeys mengumpulkan tanggal (local, YYYY-MM-DD) yang sudah punya
// record, dikunci dari effective date.
func existingDayKeys(records []AttendanceRecord) map[string]struct{} {
	keys := make(map[string]struct{}, len(records))
	for i := range records {
		d := records[i].EffectiveDate()
		keys[d.In(time.Local).Format(dateKeyLayout)] = struct{}{}
	}
	return keys
}

// buildBackfill mensintesis record "absent" untuk setiap hari kerja yang sudah
// lewat (1..maxDay) dan belum punya record sama sekali. Akhir pekan dilewati.
func buildBackfill(userID uuid.UUID, info monthInfo, maxDay int, existing map[string]struct{}) []AttendanceRecord {
	if maxDay <= 0 {
		return nil
	}

	var toInsert []AttendanceRecord
	for day := 1; day <= maxDay; day++ {
		date := time.Date(info.year, time.Month(info.monthIndex+1), day, 0, 0, 0, 0, time.Local)
		if isWeekend(date.Weekday()) {
			continue
		}

		key := date.Format(dateKeyLayout)
		if _, ok := existing[key]; ok {
			continue
		}

		toInsert = append(toInsert, AttendanceRecord{
			ID:          uuid.New(),
			UserID:      userID,
			DisplayDate: date.Format(displayDateLayout),
			Status:      StatusAbsent,
			CreatedAt:   date,
			UpdatedAt:   date,
		})
	}
	return toInsert
}

// filterToMonth menyaring record ke bulan target berdasarkan tanggal lokal
// effective date. Rentang query sengaja dilebihkan sehari di tiap sisi karena
// record sintetis berstempel tengah malam lokal, yang di zona timur UTC jatuh
// sebelum batas bulan UTC.
func filterToMonth(records []AttendanceRecord, info monthInfo) []AttendanceRecord {
	filtered := records[:0]
	for i := range records {
		d := records[i].EffectiveDate().In(time.Local)
		if d.Year() == info.year && int(d.Month())-1 == info.monthIndex {
			filtered = append(filtered, records[i])
		}
	}
	return filtered
}

func sortByEffectiveDate(records []AttendanceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EffectiveDate().Before(records[j].EffectiveDate())
	})
}

// reclassifyStaleCheckIns menandai record yang check-in tapi tidak pernah
// check-out pada hari kerja yang sudah lewat sebagai "late". Mutasi dilakukan
// in-place; ID yang berubah dikembalikan untuk update batch di storage.
//
// Catatan kontrak lama: "late" di sini dipakai ganda, baik untuk jam kerja
// kurang maupun lupa check-out.
func reclassifyStaleCheckIns(records []AttendanceRecord, maxDay int) []uuid.UUID {
	var lateIDs []uuid.UUID
	for i := range records {
		rec := &records[i]
		d := rec.EffectiveDate().In(time.Local)
		if d.Day() > maxDay {
			continue
		}
		if isWeekend(d.Weekday()) {
			continue
		}
		if rec.CheckIn == nil || rec.CheckOut != nil || rec.Status == StatusLate {
			continue
		}
		rec.Status = StatusLate
		lateIDs = append(lateIDs, rec.ID)
	}
	return lateIDs
}

// aggregate menghitung total status dan seri rasio kehadiran per bucket minggu.
// "absent" dan "discord-absent" digabung dalam satu angka absents.
func aggregate(records []AttendanceRecord, workingDaysPerWeek [4]int) (presents, lates, absents int, series [4]float64) {
	var discordAbsents int
	var presentLikePerWeek [4]int

	for i := range records {
		rec := &records[i]
		switch rec.Status {
		case StatusPresent:
			presents++
		case StatusLate:
			lates++
		case StatusAbsent:
			absents++
		case StatusDiscordAbsent:
			discordAbsents++
		}

		d := rec.EffectiveDate().In(time.Local)
		if isWeekend(d.Weekday()) {
			continue
		}
		if rec.Status == StatusPresent || rec.Status == StatusLate {
			presentLikePerWeek[weekBucket(d.Day())]++
		}
	}

	for i, workingDays := range workingDaysPerWeek {
		if workingDays == 0 {
			continue
		}
		series[i] = float64(presentLikePerWeek[i]) / float64(workingDays)
	}

	return presents, lates, absents + discordAbsents, series
}
