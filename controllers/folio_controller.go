package controllers

import (
	"log"
	"net/http"
	"time"

	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type FolioController struct {
	FolioSvc *services.FolioService
}

func NewFolioController(svc *services.FolioService) *FolioController {
	return &FolioController{FolioSvc: svc}
}

type addChargePayload struct {
	ChargeDate  string `json:"charge_date" binding:"required,dateonly"`
	ChargeType  string `json:"charge_type" binding:"required,oneof=room_rent extra_bed early_checkin late_checkout miscellaneous"`
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

type addPaymentPayload struct {
	Amount string `json:"amount" binding:"required"`
	Mode   string `json:"mode" binding:"required,oneof=cash card upi bank_transfer"`
	Note   string `json:"note"`
}

func (ctrl *FolioController) AddCharge(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload addChargePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidAmount", "amount is not a valid amount")
		return
	}
	chargeDate, _ := time.Parse("2006-01-02", payload.ChargeDate)

	charge, err := ctrl.FolioSvc.AddCharge(id, chargeDate, payload.ChargeType, payload.Description, amount)
	if err != nil {
		log.Printf("AddCharge error for booking %d: %v", id, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, charge)
}

func (ctrl *FolioController) AddPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload addPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidAmount", "amount is not a valid amount")
		return
	}

	payment, err := ctrl.FolioSvc.AddPayment(id, amount, payload.Mode, payload.Note)
	if err != nil {
		log.Printf("AddPayment error for booking %d: %v", id, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (ctrl *FolioController) GetFolio(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	folio, err := ctrl.FolioSvc.GetFolio(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, folio)
}
