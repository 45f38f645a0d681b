package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// DateOnly is registered with the gin binding validator in main so payloads
// can declare binding:"dateonly" for YYYY-MM-DD fields.
var DateOnly validator.Func = func(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "id must be numeric")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service error codes onto HTTP statuses the way
// the UI expects them: validation 400, missing rows 404, state conflicts
// 409, everything else 500.
func respondServiceError(c *gin.Context, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "validation"):
		utils.JSONError(c, http.StatusBadRequest, "error.validation", msg)
	case strings.Contains(msg, "booking_not_found"),
		strings.Contains(msg, "guest_not_found"),
		strings.Contains(msg, "room_not_found"),
		strings.Contains(msg, "reservation_not_found"),
		strings.Contains(msg, "document_not_found"),
		strings.Contains(msg, "operator_not_found"):
		utils.JSONError(c, http.StatusNotFound, "error.notFound", msg)
	case strings.Contains(msg, "duplicate_charge"),
		strings.Contains(msg, "room_not_available"),
		strings.Contains(msg, "room_occupied"),
		strings.Contains(msg, "not_checked_in"),
		strings.Contains(msg, "booking_not_open"),
		strings.Contains(msg, "reservation_not_confirmed"),
		strings.Contains(msg, "invalid_status_transition"):
		utils.JSONError(c, http.StatusConflict, "error.conflict", msg)
	case strings.Contains(msg, "invoice_archive_failed"),
		strings.Contains(msg, "grc_archive_failed"),
		strings.Contains(msg, "checkout_close_failed"):
		utils.JSONError(c, http.StatusInternalServerError, "error.checkoutFailed", msg)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", msg)
	}
}
