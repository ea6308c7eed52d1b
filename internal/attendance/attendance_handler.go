package attendance

import (
	"encoding/json"
	"io"
	"net/http"

	"go-attend/internal/shared/apperror"
	"go-attend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// CheckIn menerima multipart/form-data: field teks + satu file foto "media".
// location dan device dikirim sebagai string JSON oleh frontend.
func (h *Handler) CheckIn(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	req := LogCheckInRequest{
		TimestampISO: c.PostForm("timestampIso"),
		DisplayTime:  c.PostForm("displayTime"),
		DisplayDate:  c.PostForm("displayDate"),
	}

	// JSON location/device yang rusak dibiarkan; validator di bawah yang
	// menolak field kosongnya.
	_ = json.Unmarshal([]byte(c.PostForm("location")), &req.Location)
	_ = json.Unmarshal([]byte(c.PostForm("device")), &req.Device)

	if file, err := c.FormFile("media"); err == nil {
		f, openErr := file.Open()
		if openErr != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read the uploaded image", openErr.Error())
			return
		}
		defer f.Close()
		req.Photo, _ = io.ReadAll(f)
	}

	if err := binding.Validator.ValidateStruct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.LogCheckIn(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req LogCheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.LogCheckOut(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetMonthly mengembalikan ledger bulanan user yang sedang login.
func (h *Handler) GetMonthly(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	report, err := h.service.ReconcileMonth(c.Request.Context(), userID, c.Query("month"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report, nil)
}
