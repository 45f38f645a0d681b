package controllers

import (
	"log"
	"net/http"
	"time"

	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type NightAuditController struct {
	AuditSvc *services.NightAuditService
}

func NewNightAuditController(svc *services.NightAuditService) *NightAuditController {
	return &NightAuditController{AuditSvc: svc}
}

// Run triggers the audit manually. Accepts an optional ?date=YYYY-MM-DD for
// catch-up runs; defaults to today. Safe to call repeatedly.
func (ctrl *NightAuditController) Run(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	summary, err := ctrl.AuditSvc.Run(day)
	if err != nil {
		log.Printf("night audit run error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.nightAuditFailed", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}
