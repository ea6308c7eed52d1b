package attendance

type LocationPayload struct {
	Lat                      float64  `json:"lat" binding:"required"`
	Lng                      float64  `json:"lng" binding:"required"`
	DistanceFromOfficeMeters *float64 `json:"distanceFromOfficeMeters"`
}

type DevicePayload struct {
	UserAgent              string  `json:"userAgent" binding:"required"`
	SelectedCameraDeviceID *string `json:"selectedCameraDeviceId"`
}

type LogCheckInRequest struct {
	TimestampISO string          `json:"timestampIso" binding:"required"`
	DisplayTime  string          `json:"displayTime" binding:"required"`
	DisplayDate  string          `json:"displayDate" binding:"required"`
	Location     LocationPayload `json:"location" binding:"required"`
	Device       DevicePayload   `json:"device" binding:"required"`
	Photo        []byte          `json:"-"`
}

type LogCheckOutRequest struct {
	TimestampISO string `json:"timestampIso" binding:"required"`
	DisplayDate  string `json:"displayDate" binding:"required"`
}

type AttendanceResponse struct {
	ID                       string   `json:"id"`
	UserID                   string   `json:"user_id"`
	DisplayDate              string   `json:"display_date"`
	DisplayTime              *string  `json:"display_time,omitempty"`
	CheckIn                  *string  `json:"check_in,omitempty"`
	CheckOut                 *string  `json:"check_out,omitempty"`
	Status                   string   `json:"status"`
	Image                    *string  `json:"image,omitempty"`
	DistanceFromOfficeMeters *float64 `json:"distance_from_office_meters,omitempty"`
}

// DayEntry adalah satu baris hasil formatter untuk ledger bulanan.
type DayEntry struct {
	Date             string  `json:"date"`
	Weekday          string  `json:"weekday"`
	Status           string  `json:"status"`
	CheckIn          *string `json:"checkIn"`
	CheckOut         *string `json:"checkOut"`
	CheckInLocation  *string `json:"checkInLocation"`
	CheckOutLocation *string `json:"checkOutLocation"`
	ImageLabel       string  `json:"imageLabel"`
	Device           *string `json:"device"`
}

// MonthlyReport adalah keluaran rekonsiliasi satu user untuk satu bulan.
type MonthlyReport struct {
	Presents       int        `json:"presents"`
	Lates          int        `json:"lates"`
	Absents        int        `json:"absents"`
	DaysInMonth    int        `json:"daysInMonth"`
	PresenceSeries [4]float64 `json:"presenceSeries"`
	Days           []DayEntry `json:"days"`
}
